// Package core defines the contract that every primitive hash algorithm in
// hashkit implements. It has no dependents outside hashkit itself: the
// facade in package hasher is the only caller of Core, exactly as spec.md
// §4.1 describes ("The facade (§4.2) is the only caller").
package core

// Core is the per-algorithm contract: reset to IV, compress one full block,
// and finalize (pad + encode length + emit digest) a trailing partial block.
//
// Compress is only ever called with a slice of exactly BlockSize() bytes
// that the facade has already decided is not part of the final block.
// Finalize receives whatever is left over when Digest is called: anywhere
// from 0 to BlockSize()-1 bytes normally, or up to a full BlockSize() bytes
// for algorithms that report Withhold() == true (see below).
type Core interface {
	// BlockSize is the input block width the compression function consumes.
	BlockSize() int

	// Size is the final digest length in bytes.
	Size() int

	// Reset restores the IV and any other per-instance working state.
	Reset()

	// Compress absorbs one full block into the working state.
	Compress(block []byte)

	// Finalize pads tail (len(tail) < BlockSize, or == BlockSize when
	// Withhold is true), folds in total, and returns the digest. It must
	// not mutate any state the receiver depends on afterwards; hasher.Hasher
	// operates on a scratch copy of the Core so Digest can be followed by
	// further Update calls only via Init, never by continuing to write.
	Finalize(tail []byte, total Counter) []byte

	// Withhold reports whether the facade must hold back one full block
	// (never compressing an exact-fit buffer until more input or Digest
	// arrives) because Finalize needs to distinguish the true final block
	// from an intermediate one. Only BLAKE2b answers true; see spec.md
	// §4.1's BLAKE2b bullet.
	Withhold() bool
}

// Cloner is implemented by Core values that can produce an independent copy
// of their working state without going through Reset. hmac uses this to
// snapshot the inner/outer template states once per key instead of
// replaying the key-derived prefix on every message (spec.md §4.3 step 4).
type Cloner interface {
	Clone() Core
}
