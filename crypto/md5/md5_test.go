package md5_test

import (
	"encoding/hex"
	"testing"

	"github.com/flyhash/hashkit/crypto/md5"
	"github.com/flyhash/hashkit/hasher"
)

func sum(msg string) string {
	h := hasher.New(md5.New())
	_ = h.Update([]byte(msg))
	d, err := h.Digest()
	if err != nil {
		panic(err)
	}
	return hex.EncodeToString(d)
}

// RFC 1321 test vectors.
func TestRFC1321Vectors(t *testing.T) {
	cases := []struct{ msg, want string }{
		{"", "d41d8cd98f00b204e9800998ecf8427e"},
		{"a", "0cc175b9c0f1b6a831c399e269772661"},
		{"abc", "900150983cd24fb0d6963f7d28e17f72"},
		{"message digest", "f96b697d7cb7938d525a2f31aaf161d0"},
		{"abcdefghijklmnopqrstuvwxyz", "c3fcd3d76192e4007dfb496cca67e13b"},
	}
	for _, c := range cases {
		if got := sum(c.msg); got != c.want {
			t.Errorf("MD5(%q) = %s, want %s", c.msg, got, c.want)
		}
	}
}

func TestChunkedUpdateMatchesOneShot(t *testing.T) {
	msg := "the quick brown fox jumps over the lazy dog, twice over for good measure"
	h1 := hasher.New(md5.New())
	_ = h1.Update([]byte(msg))
	want, _ := h1.Digest()

	h2 := hasher.New(md5.New())
	for i := 0; i < len(msg); i += 7 {
		end := i + 7
		if end > len(msg) {
			end = len(msg)
		}
		_ = h2.Update([]byte(msg[i:end]))
	}
	got, err := h2.Digest()
	if err != nil {
		t.Fatal(err)
	}
	if hex.EncodeToString(got) != hex.EncodeToString(want) {
		t.Fatalf("chunked digest = %x, want %x", got, want)
	}
}
