package pbkdf2_test

import (
	"encoding/hex"
	"testing"

	"github.com/flyhash/hashkit/core"
	"github.com/flyhash/hashkit/crypto/sha1"
	"github.com/flyhash/hashkit/pbkdf2"
)

func sha1Core() core.Core { return sha1.New() }

// RFC 6070 test vectors for PBKDF2-HMAC-SHA1.
func TestRFC6070Vectors(t *testing.T) {
	cases := []struct {
		password, salt string
		iter, dkLen    int
		want           string
	}{
		{"password", "salt", 1, 20, "0c60c80f961f0e71f3a9b524af6012062fe037a6"},
		{"password", "salt", 2, 20, "ea6c014dc72d6f8ccd1ed92ace1d41f0d8de8957"},
		{"password", "salt", 4096, 20, "4b007901b765489abead49d926f721d065a429c1"},
		{"passwordPASSWORDpassword", "saltSALTsaltSALTsaltSALTsaltSALTsalt", 4096, 25,
			"3d2eec4fe41c849b80c8d83662c0e44a8b291a964cf2f07038"},
	}
	for _, c := range cases {
		dk, err := pbkdf2.Key(sha1Core, []byte(c.password), []byte(c.salt), c.iter, c.dkLen)
		if err != nil {
			t.Fatalf("Key(%q, %q, %d, %d): %v", c.password, c.salt, c.iter, c.dkLen, err)
		}
		if got := hex.EncodeToString(dk); got != c.want {
			t.Errorf("Key(%q, %q, %d, %d) = %s, want %s", c.password, c.salt, c.iter, c.dkLen, got, c.want)
		}
	}
}

func TestNonPositiveIterationRejected(t *testing.T) {
	if _, err := pbkdf2.Key(sha1Core, []byte("p"), []byte("s"), 0, 20); err == nil {
		t.Error("iter=0 should be rejected")
	}
	if _, err := pbkdf2.Key(sha1Core, []byte("p"), []byte("s"), -1, 20); err == nil {
		t.Error("iter=-1 should be rejected")
	}
}

func TestNonPositiveKeyLengthRejected(t *testing.T) {
	if _, err := pbkdf2.Key(sha1Core, []byte("p"), []byte("s"), 1, 0); err == nil {
		t.Error("dkLen=0 should be rejected")
	}
}

func TestDerivedKeyLengthMatchesRequest(t *testing.T) {
	for _, dkLen := range []int{1, 19, 20, 21, 41, 100} {
		dk, err := pbkdf2.Key(sha1Core, []byte("password"), []byte("salt"), 2, dkLen)
		if err != nil {
			t.Fatalf("dkLen=%d: %v", dkLen, err)
		}
		if len(dk) != dkLen {
			t.Errorf("dkLen=%d: got %d bytes", dkLen, len(dk))
		}
	}
}

func TestLongerKeyExtendsShorterKeyAsAPrefix(t *testing.T) {
	// PBKDF2 blocks are independent per counter: a longer derived key must
	// extend the shorter one as a byte-for-byte prefix.
	short, err := pbkdf2.Key(sha1Core, []byte("password"), []byte("salt"), 1, 20)
	if err != nil {
		t.Fatal(err)
	}
	long, err := pbkdf2.Key(sha1Core, []byte("password"), []byte("salt"), 1, 40)
	if err != nil {
		t.Fatal(err)
	}
	if hex.EncodeToString(long[:20]) != hex.EncodeToString(short) {
		t.Fatal("longer derived key did not extend the shorter one as a prefix")
	}
}

func TestDifferentSaltsProduceDifferentKeys(t *testing.T) {
	a, err := pbkdf2.Key(sha1Core, []byte("password"), []byte("salt-a"), 2, 20)
	if err != nil {
		t.Fatal(err)
	}
	b, err := pbkdf2.Key(sha1Core, []byte("password"), []byte("salt-b"), 2, 20)
	if err != nil {
		t.Fatal(err)
	}
	if hex.EncodeToString(a) == hex.EncodeToString(b) {
		t.Fatal("different salts produced the same derived key")
	}
}

func TestParameterSetDerive(t *testing.T) {
	ps := pbkdf2.ParameterSet{
		Name:       "test-sha1",
		NewCore:    sha1Core,
		Iterations: 4096,
		SaltLength: 16,
		KeyLength:  20,
	}
	dk, err := ps.Derive([]byte("password"), []byte("salt"))
	if err != nil {
		t.Fatal(err)
	}
	want := "4b007901b765489abead49d926f721d065a429c1"
	if got := hex.EncodeToString(dk); got != want {
		t.Errorf("ParameterSet.Derive = %s, want %s", got, want)
	}
}
