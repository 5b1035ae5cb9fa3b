package crc32_test

import (
	"encoding/binary"
	"testing"

	"github.com/flyhash/hashkit/crypto/crc32"
	"github.com/flyhash/hashkit/hasher"
)

func sum(msg string) uint32 {
	h := hasher.New(crc32.New())
	_ = h.Update([]byte(msg))
	d, err := h.Digest()
	if err != nil {
		panic(err)
	}
	return binary.BigEndian.Uint32(d)
}

func TestEmptyInputIsZero(t *testing.T) {
	if got := sum(""); got != 0 {
		t.Errorf("CRC32(\"\") = %08x, want 0", got)
	}
}

// The IEEE 802.3 CRC-32 "check" value for the ASCII digits "123456789" is
// the standard conformance vector for this polynomial.
func TestCheckVector(t *testing.T) {
	want := uint32(0xcbf43926)
	if got := sum("123456789"); got != want {
		t.Errorf("CRC32(\"123456789\") = %08x, want %08x", got, want)
	}
}

func TestBlockSizeIsOneByte(t *testing.T) {
	if crc32.New().BlockSize() != 1 {
		t.Fatalf("BlockSize() = %d, want 1", crc32.New().BlockSize())
	}
}

func TestByteAtATimeMatchesOneShot(t *testing.T) {
	msg := "the quick brown fox"
	whole := sum(msg)

	h := hasher.New(crc32.New())
	for i := 0; i < len(msg); i++ {
		_ = h.Update([]byte{msg[i]})
	}
	d, err := h.Digest()
	if err != nil {
		t.Fatal(err)
	}
	if binary.BigEndian.Uint32(d) != whole {
		t.Fatalf("byte-at-a-time CRC32 = %08x, want %08x", binary.BigEndian.Uint32(d), whole)
	}
}
