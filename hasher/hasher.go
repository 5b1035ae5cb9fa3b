// Package hasher is the generic streaming facade of spec.md §4.2: it
// normalizes heterogeneous block sizes, buffering, and finalization rules
// behind one init/update/digest contract, for any algorithm implementing
// core.Core.
//
// Buffering strategy is eager: a full block is compressed as soon as one
// accumulates, keeping the §3 invariant "during absorbing, |buffer| <
// block_size_bytes" for every algorithm except those whose Core reports
// Withhold() == true (only BLAKE2b), which instead lag one block behind so
// Finalize can tell the true last block apart from an intermediate one.
package hasher

import (
	"errors"

	"github.com/flyhash/hashkit/core"
)

// Phase is the hasher's position in the fresh/absorbing/finalized state
// machine of spec.md §4.6.
type Phase int

const (
	Fresh Phase = iota
	Absorbing
	Finalized
)

// ErrFinalized is wrapped into a *UsageError when Update or Digest is called
// on a hasher that has already produced its digest.
var ErrFinalized = errors.New("hasher: operation called after digest in finalized phase")

// UsageError reports an operation called in a forbidden phase (spec.md §6).
type UsageError struct {
	Op  string
	Err error
}

func (e *UsageError) Error() string { return "hasher: " + e.Op + ": " + e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// Hasher wraps a core.Core with the buffering and phase discipline common
// to every algorithm in this module.
type Hasher struct {
	c     core.Core
	buf   []byte // pending partial block, len in [0, blockSize) normally
	total core.Counter
	phase Phase
}

// New constructs a Hasher already in the absorbing phase over an IV'd Core,
// matching spec.md's lifecycle note that a hasher is usable immediately
// after construction without a separate Init call.
func New(c core.Core) *Hasher {
	h := &Hasher{c: c, buf: make([]byte, 0, c.BlockSize())}
	h.phase = Absorbing
	return h
}

// Clone returns an independent copy of h, including its pending buffer and
// byte counter, without re-absorbing any input. hmac uses this to snapshot
// the inner/outer template states once per key (spec.md §4.3 step 4: "Store
// these as template states... Fresh HMAC init resets both hasher copies to
// these templates, avoiding the per-message re-hashing of the key"). The
// underlying core.Core must implement core.Cloner; every HMAC-capable
// algorithm in this module does.
func (h *Hasher) Clone() *Hasher {
	cloner, ok := h.c.(core.Cloner)
	if !ok {
		panic("hasher: Clone called on a Core that does not implement core.Cloner")
	}
	buf := make([]byte, len(h.buf), cap(h.buf))
	copy(buf, h.buf)
	return &Hasher{
		c:     cloner.Clone(),
		buf:   buf,
		total: h.total,
		phase: h.phase,
	}
}

// Init resets the hasher to the absorbing phase regardless of prior phase
// (spec.md §3: "init resets any state to absorbing, regardless of prior
// phase").
func (h *Hasher) Init() {
	h.c.Reset()
	h.buf = h.buf[:0]
	h.total = core.Counter{}
	h.phase = Absorbing
}

// BlockSize returns the algorithm's input block width.
func (h *Hasher) BlockSize() int { return h.c.BlockSize() }

// DigestSize returns the algorithm's fixed output length.
func (h *Hasher) DigestSize() int { return h.c.Size() }

// Update appends p to the logical input. It may be called any number of
// times with any slice lengths, including zero, and
// Update(a); Update(b) must equal Update(a||b) (spec.md §5's central
// testable property).
func (h *Hasher) Update(p []byte) error {
	if h.phase == Finalized {
		return &UsageError{Op: "Update", Err: ErrFinalized}
	}
	h.phase = Absorbing

	bs := h.c.BlockSize()
	withhold := h.c.Withhold()
	h.total.Add(uint64(len(p)))

	if len(h.buf) > 0 {
		n := copy(h.buf[len(h.buf):cap(h.buf)], p)
		h.buf = h.buf[:len(h.buf)+n]
		p = p[n:]
		if len(h.buf) == bs && (len(p) > 0 || !withhold) {
			h.c.Compress(h.buf)
			h.buf = h.buf[:0]
		}
	}

	for len(p) >= bs && (len(p) > bs || !withhold) {
		h.c.Compress(p[:bs])
		p = p[bs:]
	}

	h.buf = append(h.buf, p...)
	return nil
}

// Digest finalizes the hasher (padding, length encoding, and emitting the
// output), transitions it to finalized, and returns DigestSize raw bytes.
// It is not idempotent: a second call without an intervening Init fails.
func (h *Hasher) Digest() ([]byte, error) {
	if h.phase == Finalized {
		return nil, &UsageError{Op: "Digest", Err: ErrFinalized}
	}
	out := h.c.Finalize(h.buf, h.total)
	h.phase = Finalized
	return out, nil
}
