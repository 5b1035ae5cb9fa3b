package sha512_test

import (
	"encoding/hex"
	"testing"

	"github.com/flyhash/hashkit/core"
	"github.com/flyhash/hashkit/crypto/sha512"
	"github.com/flyhash/hashkit/hasher"
)

func sum512(msg string) string {
	h := hasher.New(sha512.New512())
	_ = h.Update([]byte(msg))
	d, err := h.Digest()
	if err != nil {
		panic(err)
	}
	return hex.EncodeToString(d)
}

func sum384(msg string) string {
	h := hasher.New(sha512.New384())
	_ = h.Update([]byte(msg))
	d, err := h.Digest()
	if err != nil {
		panic(err)
	}
	return hex.EncodeToString(d)
}

// FIPS 180-4 test vectors.
func TestSHA512Vectors(t *testing.T) {
	cases := []struct{ msg, want string }{
		{"", "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"},
		{"abc", "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
	}
	for _, c := range cases {
		if got := sum512(c.msg); got != c.want {
			t.Errorf("SHA512(%q) = %s, want %s", c.msg, got, c.want)
		}
	}
}

func TestSHA384Vectors(t *testing.T) {
	cases := []struct{ msg, want string }{
		{"", "38b060a751ac96384cd9327eb1b1e36a21fdb71114be07434c0cc7bf63f6e1da274edebfe76f65fbd51ad2f14898b95b"},
		{"abc", "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"},
	}
	for _, c := range cases {
		if got := sum384(c.msg); got != c.want {
			t.Errorf("SHA384(%q) = %s, want %s", c.msg, got, c.want)
		}
	}
}

func TestUsesFull128BitLengthField(t *testing.T) {
	if sha512.BlockSize != 128 {
		t.Fatalf("BlockSize = %d, want 128", sha512.BlockSize)
	}
	// The high half of the 128-bit length field is encoded: a counter that
	// differs only in Hi must change the digest.
	c := sha512.New512()
	if hex.EncodeToString(c.Finalize(nil, core.Counter{})) == hex.EncodeToString(c.Finalize(nil, core.Counter{Hi: 1})) {
		t.Fatal("Finalize ignores the high half of the length counter")
	}
	// A multi-block message digests without error.
	msg := make([]byte, 5000)
	h := hasher.New(sha512.New512())
	if err := h.Update(msg); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Digest(); err != nil {
		t.Fatal(err)
	}
}
