package hashkit_test

import (
	"testing"

	"github.com/flyhash/hashkit"
)

func TestLookupKnownAlgorithm(t *testing.T) {
	a, err := hashkit.Lookup("sha256")
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != "sha256" || !a.SupportsHMAC {
		t.Fatalf("Lookup(sha256) = %+v", a)
	}
}

func TestLookupUnknownAlgorithm(t *testing.T) {
	if _, err := hashkit.Lookup("not-a-real-algorithm"); err == nil {
		t.Fatal("Lookup of an unknown name should fail")
	}
}

func TestCRC32DoesNotSupportHMAC(t *testing.T) {
	a, err := hashkit.Lookup("crc32")
	if err != nil {
		t.Fatal(err)
	}
	if a.SupportsHMAC {
		t.Fatal("crc32 must not support HMAC")
	}
}

func TestOneShotDispatchVectors(t *testing.T) {
	cases := []struct {
		name string
		fn   func([]byte) (string, error)
		msg  string
		want string
	}{
		{"md5", hashkit.MD5, "", "d41d8cd98f00b204e9800998ecf8427e"},
		{"sha1", hashkit.SHA1, "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"sha256", hashkit.SHA256, "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"keccak256", hashkit.Keccak256, "", "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
	}
	for _, c := range cases {
		got, err := c.fn([]byte(c.msg))
		if err != nil {
			t.Fatalf("%s(%q): %v", c.name, c.msg, err)
		}
		if got != c.want {
			t.Errorf("%s(%q) = %s, want %s", c.name, c.msg, got, c.want)
		}
	}
}

func TestSharedPoolIsReentrantAcrossCalls(t *testing.T) {
	// The one-shot dispatch functions reuse a single pooled hasher per
	// algorithm; repeated calls must not leak state between each other.
	first, err := hashkit.SHA256([]byte("first"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := hashkit.SHA256([]byte("second"))
	if err != nil {
		t.Fatal(err)
	}
	again, err := hashkit.SHA256([]byte("first"))
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("different inputs produced the same pooled digest")
	}
	if first != again {
		t.Fatal("repeating the same input through the pool produced a different digest")
	}
}

func TestNewHasherIsIndependentOfSharedPool(t *testing.T) {
	h, err := hashkit.NewHasher("sha256")
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Update([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	// The pooled dispatch path must still work concurrently while an
	// independent hasher from NewHasher is mid-stream.
	if _, err := hashkit.SHA256([]byte("unrelated")); err != nil {
		t.Fatal(err)
	}
	digest, err := h.Digest()
	if err != nil {
		t.Fatal(err)
	}
	want, err := hashkit.SHA256([]byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	if hexEncode(digest) != want {
		t.Fatalf("independent hasher digest = %x, want %s", digest, want)
	}
}

func TestNewHasherUnknownAlgorithm(t *testing.T) {
	if _, err := hashkit.NewHasher("not-a-real-algorithm"); err == nil {
		t.Fatal("NewHasher of an unknown name should fail")
	}
}

func TestBLAKE2bDefaultOutputSize(t *testing.T) {
	got, err := hashkit.BLAKE2b([]byte("abc"), nil, nil, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 128 { // 64 bytes hex-encoded
		t.Errorf("BLAKE2b default output = %d hex chars, want 128", len(got))
	}
}

func TestXXHash64SeedAssembly(t *testing.T) {
	a, err := hashkit.XXHash64([]byte("abc"), 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := hashkit.XXHash64([]byte("abc"), 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("swapping the low/high seed halves should change the 64-bit seed and thus the digest")
	}
}

func TestHMACSumRejectsUnsupportedAlgorithm(t *testing.T) {
	if _, err := hashkit.HMACSum("crc32", []byte("k"), []byte("m")); err == nil {
		t.Fatal("HMACSum over crc32 should return UnsupportedError")
	}
}

func TestHMACSumMatchesKnownVector(t *testing.T) {
	got, err := hashkit.HMACSum("sha256", []byte{
		0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b,
		0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b,
	}, []byte("Hi There"))
	if err != nil {
		t.Fatal(err)
	}
	want := "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7"
	if got != want {
		t.Errorf("HMACSum(sha256) = %s, want %s", got, want)
	}
}

func TestPBKDF2SumRejectsUnsupportedAlgorithm(t *testing.T) {
	if _, err := hashkit.PBKDF2Sum("crc32", []byte("p"), []byte("s"), 1, 20); err == nil {
		t.Fatal("PBKDF2Sum over crc32 should return UnsupportedError")
	}
}

func TestPBKDF2SumMatchesRFC6070(t *testing.T) {
	got, err := hashkit.PBKDF2Sum("sha1", []byte("password"), []byte("salt"), 1, 20)
	if err != nil {
		t.Fatal(err)
	}
	want := "0c60c80f961f0e71f3a9b524af6012062fe037a6"
	if got != want {
		t.Errorf("PBKDF2Sum(sha1) = %s, want %s", got, want)
	}
}

func hexEncode(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexDigits[v>>4]
		out[i*2+1] = hexDigits[v&0x0f]
	}
	return string(out)
}
