package hasher_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/flyhash/hashkit/core"
	"github.com/flyhash/hashkit/crypto/sha256"
	"github.com/flyhash/hashkit/hasher"
)

func TestUpdateChunkingInvariance(t *testing.T) {
	msg := bytes.Repeat([]byte("abcdefghij"), 20) // 200 bytes, spans several 64-byte blocks

	whole := hasher.New(sha256.New256())
	if err := whole.Update(msg); err != nil {
		t.Fatal(err)
	}
	wantDigest, err := whole.Digest()
	if err != nil {
		t.Fatal(err)
	}

	for _, split := range []int{0, 1, 31, 64, 65, 127, 128, 199, 200} {
		h := hasher.New(sha256.New256())
		if err := h.Update(msg[:split]); err != nil {
			t.Fatalf("split=%d: %v", split, err)
		}
		if err := h.Update(msg[split:]); err != nil {
			t.Fatalf("split=%d: %v", split, err)
		}
		got, err := h.Digest()
		if err != nil {
			t.Fatalf("split=%d: %v", split, err)
		}
		if !bytes.Equal(got, wantDigest) {
			t.Fatalf("split=%d: got %x, want %x", split, got, wantDigest)
		}
	}
}

func TestUpdateByteAtATime(t *testing.T) {
	msg := []byte("the quick brown fox jumps over the lazy dog")

	whole := hasher.New(sha256.New256())
	_ = whole.Update(msg)
	want, _ := whole.Digest()

	piecewise := hasher.New(sha256.New256())
	for _, b := range msg {
		if err := piecewise.Update([]byte{b}); err != nil {
			t.Fatal(err)
		}
	}
	got, err := piecewise.Digest()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("byte-at-a-time digest = %x, want %x", got, want)
	}
}

func TestEmptyInput(t *testing.T) {
	h := hasher.New(sha256.New256())
	digest, err := h.Digest()
	if err != nil {
		t.Fatal(err)
	}
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if hex.EncodeToString(digest) != want {
		t.Fatalf("SHA-256(\"\") = %x, want %s", digest, want)
	}
}

func TestInitResetsRegardlessOfPhase(t *testing.T) {
	h := hasher.New(sha256.New256())
	_ = h.Update([]byte("some data"))
	if _, err := h.Digest(); err != nil {
		t.Fatal(err)
	}

	h.Init()
	_ = h.Update([]byte("abc"))
	got, err := h.Digest()
	if err != nil {
		t.Fatal(err)
	}

	fresh := hasher.New(sha256.New256())
	_ = fresh.Update([]byte("abc"))
	want, _ := fresh.Digest()

	if !bytes.Equal(got, want) {
		t.Fatalf("after Init+reuse: got %x, want %x", got, want)
	}
}

func TestDigestNotIdempotent(t *testing.T) {
	h := hasher.New(sha256.New256())
	if _, err := h.Digest(); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Digest(); err == nil {
		t.Fatal("second Digest() call should fail with a UsageError")
	}
}

func TestUpdateAfterDigestFails(t *testing.T) {
	h := hasher.New(sha256.New256())
	if _, err := h.Digest(); err != nil {
		t.Fatal(err)
	}
	if err := h.Update([]byte("x")); err == nil {
		t.Fatal("Update() after Digest() should fail with a UsageError")
	}
}

// withholdingCore is a minimal core.Core used to exercise the facade's
// lag-one-block buffering path (spec.md §4.1's BLAKE2b bullet) without
// depending on the real blake2b implementation.
type withholdingCore struct {
	compressed [][]byte
	finalTail  []byte
}

func (c *withholdingCore) BlockSize() int { return 4 }
func (c *withholdingCore) Size() int      { return 4 }
func (c *withholdingCore) Reset()         { c.compressed = nil; c.finalTail = nil }
func (c *withholdingCore) Withhold() bool { return true }

func (c *withholdingCore) Compress(block []byte) {
	cp := append([]byte(nil), block...)
	c.compressed = append(c.compressed, cp)
}

func (c *withholdingCore) Finalize(tail []byte, total core.Counter) []byte {
	c.finalTail = append([]byte(nil), tail...)
	out := make([]byte, 4)
	out[0] = byte(len(c.compressed))
	out[1] = byte(len(tail))
	out[2] = byte(total.Lo)
	return out
}

func TestWithholdingCoreLagsOneBlock(t *testing.T) {
	c := &withholdingCore{}
	h := hasher.New(c)

	// Exactly one block's worth of input: must NOT be compressed yet,
	// since the facade can't tell this apart from an intermediate block.
	if err := h.Update([]byte("abcd")); err != nil {
		t.Fatal(err)
	}
	if len(c.compressed) != 0 {
		t.Fatalf("exact-fit block compressed early: got %d compressed blocks, want 0", len(c.compressed))
	}

	digest, err := h.Digest()
	if err != nil {
		t.Fatal(err)
	}
	if len(c.compressed) != 0 {
		t.Fatalf("compressed blocks = %d, want 0 (the single block should reach Finalize as tail)", len(c.compressed))
	}
	if !bytes.Equal(c.finalTail, []byte("abcd")) {
		t.Fatalf("finalTail = %q, want %q", c.finalTail, "abcd")
	}
	if digest[1] != 4 {
		t.Fatalf("tail length reported to Finalize = %d, want 4", digest[1])
	}
}

func TestWithholdingCoreCompressesOnceMoreInputArrives(t *testing.T) {
	c := &withholdingCore{}
	h := hasher.New(c)

	if err := h.Update([]byte("abcdE")); err != nil {
		t.Fatal(err)
	}
	if len(c.compressed) != 1 {
		t.Fatalf("compressed blocks = %d, want 1 once a 5th byte arrives", len(c.compressed))
	}
	if _, err := h.Digest(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(c.finalTail, []byte("E")) {
		t.Fatalf("finalTail = %q, want %q", c.finalTail, "E")
	}
}

// cloneableCore is a fake Cloner used to test Hasher.Clone independent of
// any real HMAC-capable algorithm.
type cloneableCore struct {
	state byte
}

func (c *cloneableCore) BlockSize() int { return 4 }
func (c *cloneableCore) Size() int      { return 1 }
func (c *cloneableCore) Reset()         { c.state = 0 }
func (c *cloneableCore) Withhold() bool { return false }
func (c *cloneableCore) Compress(block []byte) {
	for _, b := range block {
		c.state ^= b
	}
}
func (c *cloneableCore) Finalize(tail []byte, total core.Counter) []byte {
	s := c.state
	for _, b := range tail {
		s ^= b
	}
	return []byte{s}
}
func (c *cloneableCore) Clone() core.Core {
	dup := *c
	return &dup
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	h := hasher.New(&cloneableCore{})
	if err := h.Update([]byte("ab")); err != nil {
		t.Fatal(err)
	}

	clone := h.Clone()
	if err := h.Update([]byte("XYZW")); err != nil {
		t.Fatal(err)
	}
	if err := clone.Update([]byte("cd")); err != nil {
		t.Fatal(err)
	}

	originalDigest, err := h.Digest()
	if err != nil {
		t.Fatal(err)
	}
	cloneDigest, err := clone.Digest()
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(originalDigest, cloneDigest) {
		t.Fatalf("clone and original produced the same digest after diverging updates: %x", originalDigest)
	}
}

func TestCloneOfNonClonerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Clone() over a non-Cloner Core should panic")
		}
	}()
	h := hasher.New(&withholdingCore{})
	h.Clone()
}
