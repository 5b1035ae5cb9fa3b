package blake2b_test

import (
	"encoding/hex"
	"testing"

	"github.com/flyhash/hashkit/crypto/blake2b"
	"github.com/flyhash/hashkit/hasher"
)

func sumUnkeyed(msg string, outputSize int) string {
	c, err := blake2b.New(outputSize)
	if err != nil {
		panic(err)
	}
	h := hasher.New(c)
	_ = h.Update([]byte(msg))
	d, err := h.Digest()
	if err != nil {
		panic(err)
	}
	return hex.EncodeToString(d)
}

// RFC 7693 appendix A test vector: BLAKE2b-512 of the empty string.
func TestEmptyInput512(t *testing.T) {
	want := "786a02f742015903c6c6fd852552d272912f4740e15847618a86e217f71f5419d25e1031afee585313896444934eb04b903a685b1448b755d56f701afe9be2ce"
	if got := sumUnkeyed("", blake2b.MaxOutput); got != want {
		t.Errorf("BLAKE2b-512(\"\") = %s, want %s", got, want)
	}
}

func TestOutputSizeIsRespected(t *testing.T) {
	for _, size := range []int{1, 16, 20, 32, 48, 64} {
		c, err := blake2b.New(size)
		if err != nil {
			t.Fatalf("New(%d): %v", size, err)
		}
		if c.Size() != size {
			t.Errorf("New(%d).Size() = %d, want %d", size, c.Size(), size)
		}
	}
}

func TestOutputSizeOutOfRangeRejected(t *testing.T) {
	if _, err := blake2b.New(0); err == nil {
		t.Error("New(0) should fail")
	}
	if _, err := blake2b.New(65); err == nil {
		t.Error("New(65) should fail")
	}
}

func TestKeyTooLongRejected(t *testing.T) {
	key := make([]byte, blake2b.MaxKeyLength+1)
	if _, err := blake2b.NewKeyed(key, nil, nil, blake2b.MaxOutput); err == nil {
		t.Error("NewKeyed with an over-length key should fail")
	}
}

func TestSaltAndPersonalizationTooLongRejected(t *testing.T) {
	salt := make([]byte, blake2b.SaltLength+1)
	if _, err := blake2b.NewKeyed(nil, salt, nil, blake2b.MaxOutput); err == nil {
		t.Error("NewKeyed with an over-length salt should fail")
	}
	personal := make([]byte, blake2b.SeparatorLength+1)
	if _, err := blake2b.NewKeyed(nil, nil, personal, blake2b.MaxOutput); err == nil {
		t.Error("NewKeyed with an over-length personalization should fail")
	}
}

func TestKeyedOutputDiffersFromUnkeyed(t *testing.T) {
	unkeyed, err := blake2b.NewKeyed(nil, nil, nil, blake2b.MaxOutput)
	if err != nil {
		t.Fatal(err)
	}
	keyed, err := blake2b.NewKeyed([]byte("secret key"), nil, nil, blake2b.MaxOutput)
	if err != nil {
		t.Fatal(err)
	}

	h1 := hasher.New(unkeyed)
	_ = h1.Update([]byte("message"))
	d1, _ := h1.Digest()

	h2 := hasher.New(keyed)
	_ = h2.Update([]byte("message"))
	d2, _ := h2.Digest()

	if hex.EncodeToString(d1) == hex.EncodeToString(d2) {
		t.Fatal("keyed and unkeyed BLAKE2b produced the same digest")
	}
}

func TestSaltChangesOutput(t *testing.T) {
	a, err := blake2b.NewKeyed(nil, []byte("0123456789abcdef"), nil, blake2b.MaxOutput)
	if err != nil {
		t.Fatal(err)
	}
	b, err := blake2b.NewKeyed(nil, []byte("fedcba9876543210"), nil, blake2b.MaxOutput)
	if err != nil {
		t.Fatal(err)
	}
	ha := hasher.New(a)
	_ = ha.Update([]byte("message"))
	da, _ := ha.Digest()

	hb := hasher.New(b)
	_ = hb.Update([]byte("message"))
	db, _ := hb.Digest()

	if hex.EncodeToString(da) == hex.EncodeToString(db) {
		t.Fatal("differing salts produced the same digest")
	}
}

func TestChunkedUpdateMatchesOneShot(t *testing.T) {
	msg := make([]byte, 400)
	for i := range msg {
		msg[i] = byte(i * 11)
	}

	whole, err := blake2b.New(blake2b.MaxOutput)
	if err != nil {
		t.Fatal(err)
	}
	hWhole := hasher.New(whole)
	_ = hWhole.Update(msg)
	want, _ := hWhole.Digest()

	chunked, err := blake2b.New(blake2b.MaxOutput)
	if err != nil {
		t.Fatal(err)
	}
	hChunked := hasher.New(chunked)
	for i := 0; i < len(msg); i += 47 {
		end := i + 47
		if end > len(msg) {
			end = len(msg)
		}
		_ = hChunked.Update(msg[i:end])
	}
	got, err := hChunked.Digest()
	if err != nil {
		t.Fatal(err)
	}
	if hex.EncodeToString(got) != hex.EncodeToString(want) {
		t.Fatal("chunked BLAKE2b digest does not match one-shot digest")
	}
}
