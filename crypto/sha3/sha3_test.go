package sha3_test

import (
	"encoding/hex"
	"testing"

	"github.com/flyhash/hashkit/core"
	"github.com/flyhash/hashkit/crypto/sha3"
	"github.com/flyhash/hashkit/hasher"
)

func sumOf(c core.Core, msg string) string {
	h := hasher.New(c)
	_ = h.Update([]byte(msg))
	d, err := h.Digest()
	if err != nil {
		panic(err)
	}
	return hex.EncodeToString(d)
}

// NIST FIPS 202 test vector.
func TestSHA3_256Empty(t *testing.T) {
	want := "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"
	if got := sumOf(sha3.New256(), ""); got != want {
		t.Errorf("SHA3-256(\"\") = %s, want %s", got, want)
	}
}

// Widely published Keccak-256 empty-input vector (the pre-standardization
// Keccak, as used by Ethereum's keccak256 of the empty string).
func TestKeccak256Empty(t *testing.T) {
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if got := sumOf(sha3.NewKeccak256(), ""); got != want {
		t.Errorf("Keccak256(\"\") = %s, want %s", got, want)
	}
}

func TestSHA3AndKeccakDifferOnSameWidth(t *testing.T) {
	// Same sponge, same output width, different pad10*1 domain byte: the
	// two families must never collide on the same input.
	if sumOf(sha3.New256(), "abc") == sumOf(sha3.NewKeccak256(), "abc") {
		t.Fatal("SHA3-256 and Keccak-256 produced the same digest for \"abc\"")
	}
}

func TestDigestSizesPerVariant(t *testing.T) {
	cases := []struct {
		name string
		c    core.Core
		want int
	}{
		{"sha3-224", sha3.New224(), 28},
		{"sha3-256", sha3.New256(), 32},
		{"sha3-384", sha3.New384(), 48},
		{"sha3-512", sha3.New512(), 64},
		{"keccak-224", sha3.NewKeccak224(), 28},
		{"keccak-256", sha3.NewKeccak256(), 32},
		{"keccak-384", sha3.NewKeccak384(), 48},
		{"keccak-512", sha3.NewKeccak512(), 64},
	}
	for _, c := range cases {
		if got := c.c.Size(); got != c.want {
			t.Errorf("%s Size() = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestChunkedUpdateMatchesOneShot(t *testing.T) {
	msg := make([]byte, 500)
	for i := range msg {
		msg[i] = byte(i * 7)
	}

	whole := hasher.New(sha3.New512())
	_ = whole.Update(msg)
	want, _ := whole.Digest()

	chunked := hasher.New(sha3.New512())
	for i := 0; i < len(msg); i += 37 {
		end := i + 37
		if end > len(msg) {
			end = len(msg)
		}
		_ = chunked.Update(msg[i:end])
	}
	got, err := chunked.Digest()
	if err != nil {
		t.Fatal(err)
	}
	if hex.EncodeToString(got) != hex.EncodeToString(want) {
		t.Fatalf("chunked SHA3-512 digest mismatch")
	}
}
