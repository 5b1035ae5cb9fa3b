// Package hmac implements the HMAC construction (spec.md §4.3) generically
// over any hashkit algorithm whose core.Core also implements core.Cloner.
// The inner/outer pad digestion is done once per key at construction time
// and cached as template Hasher states; Init (and New) clone those templates
// instead of re-absorbing the key pads for every message.
package hmac

import (
	"github.com/flyhash/hashkit/common"
	"github.com/flyhash/hashkit/core"
	"github.com/flyhash/hashkit/hasher"
)

// HMAC is a keyed message authentication code over one hashkit algorithm.
type HMAC struct {
	innerTemplate *hasher.Hasher
	outerTemplate *hasher.Hasher
	inner         *hasher.Hasher
	outer         *hasher.Hasher
	size          int
}

// New constructs an HMAC over the algorithm produced by newCore, keyed with
// key. Callers are responsible for only invoking this with an HMAC-capable
// algorithm (spec.md §4.3: BLAKE2b, CRC32, xxHash32/64 are rejected at the
// dispatch layer with UnsupportedError before reaching here).
func New(newCore func() core.Core, key []byte) *HMAC {
	probe := newCore()
	blockSize := probe.BlockSize()
	digestSize := probe.Size()

	ownsKey := false
	if len(key) > blockSize {
		kh := hasher.New(newCore())
		_ = kh.Update(key)
		digested, _ := kh.Digest()
		key = digested
		ownsKey = true
	}

	keyPad := common.RightPadBytes(key, blockSize)

	ipad := make([]byte, blockSize)
	opad := make([]byte, blockSize)
	for i := 0; i < blockSize; i++ {
		ipad[i] = keyPad[i] ^ 0x36
		opad[i] = keyPad[i] ^ 0x5c
	}

	innerTemplate := hasher.New(newCore())
	_ = innerTemplate.Update(ipad)
	outerTemplate := hasher.New(newCore())
	_ = outerTemplate.Update(opad)

	// Wipe the pads and any padded or hashed key copy once absorbed; a
	// caller-owned key is left untouched.
	for i := range ipad {
		ipad[i], opad[i] = 0, 0
	}
	if len(key) < blockSize || ownsKey {
		for i := range keyPad {
			keyPad[i] = 0
		}
	}

	h := &HMAC{innerTemplate: innerTemplate, outerTemplate: outerTemplate, size: digestSize}
	h.Init()
	return h
}

// Init resets the HMAC to its just-keyed state, ready to authenticate a new
// message, without re-deriving the key pads.
func (h *HMAC) Init() {
	h.inner = h.innerTemplate.Clone()
	h.outer = h.outerTemplate.Clone()
}

// Size returns the MAC length in bytes.
func (h *HMAC) Size() int { return h.size }

// Write appends to the message being authenticated.
func (h *HMAC) Write(p []byte) error { return h.inner.Update(p) }

// Sum finalizes the inner hash, feeds its digest into the outer hash, and
// returns the MAC. Like Hasher.Digest, it is not idempotent; call Init
// before reusing this HMAC for another message.
func (h *HMAC) Sum() ([]byte, error) {
	innerDigest, err := h.inner.Digest()
	if err != nil {
		return nil, err
	}
	if err := h.outer.Update(innerDigest); err != nil {
		return nil, err
	}
	return h.outer.Digest()
}

// Close zeroes the cached inner/outer template states (resetting each
// underlying Core to its IV, discarding the key-derived chaining value) and
// drops the live working hashers. After Close, h must not be reused.
func (h *HMAC) Close() {
	for _, hh := range []*hasher.Hasher{h.innerTemplate, h.outerTemplate, h.inner, h.outer} {
		if hh != nil {
			hh.Init() // overwrites the Core's working registers in place via Reset
		}
	}
	h.innerTemplate = nil
	h.outerTemplate = nil
	h.inner = nil
	h.outer = nil
}
