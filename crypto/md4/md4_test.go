package md4_test

import (
	"encoding/hex"
	"testing"

	"github.com/flyhash/hashkit/crypto/md4"
	"github.com/flyhash/hashkit/hasher"
)

func sum(msg string) string {
	h := hasher.New(md4.New())
	_ = h.Update([]byte(msg))
	d, err := h.Digest()
	if err != nil {
		panic(err)
	}
	return hex.EncodeToString(d)
}

// RFC 1320 test vectors.
func TestRFC1320Vectors(t *testing.T) {
	cases := []struct{ msg, want string }{
		{"", "31d6cfe0d16ae931b73c59d7e0c089c0"},
		{"a", "bde52cb31de33e46245e05fbdbd6fb24"},
		{"abc", "a448017aaf21d8525fc10ae87aa6729d"},
		{"message digest", "d9130a8164549fe818874806e1c7014b"},
	}
	for _, c := range cases {
		if got := sum(c.msg); got != c.want {
			t.Errorf("MD4(%q) = %s, want %s", c.msg, got, c.want)
		}
	}
}

func TestResetProducesSameDigest(t *testing.T) {
	c := md4.New()
	h := hasher.New(c)
	_ = h.Update([]byte("first message"))
	_, _ = h.Digest()

	h.Init()
	_ = h.Update([]byte("abc"))
	got, err := h.Digest()
	if err != nil {
		t.Fatal(err)
	}
	if hex.EncodeToString(got) != "a448017aaf21d8525fc10ae87aa6729d" {
		t.Fatalf("after Init+reuse: got %x", got)
	}
}

func TestBlockSizeAndDigestSize(t *testing.T) {
	c := md4.New()
	if c.BlockSize() != md4.BlockSize {
		t.Errorf("BlockSize() = %d, want %d", c.BlockSize(), md4.BlockSize)
	}
	if c.Size() != md4.DigestSize {
		t.Errorf("Size() = %d, want %d", c.Size(), md4.DigestSize)
	}
}
