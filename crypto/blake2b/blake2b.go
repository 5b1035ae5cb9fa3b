// Package blake2b implements BLAKE2b (RFC 7693) as a hashkit core.Core, with
// optional keying, salt and personalization. Block size 128 bytes, digest
// size 1..64 bytes chosen at construction. Ported from the teacher pack's
// gtank-blake2/blake2b compression core, adapted from a hash.Hash shape to
// core.Core: the parameter-block IV fold, keyed first block, and G-function
// round schedule are kept; buffering and the fresh/absorbing/finalized
// lifecycle move to the shared hasher facade.
package blake2b

import (
	"encoding/binary"

	"github.com/flyhash/hashkit/core"
)

const (
	BlockSize       = 128
	MaxOutput       = 64
	MaxKeyLength    = 64
	SaltLength      = 16
	SeparatorLength = 16
)

const (
	iv0 uint64 = 0x6a09e667f3bcc908
	iv1 uint64 = 0xbb67ae8584caa73b
	iv2 uint64 = 0x3c6ef372fe94f82b
	iv3 uint64 = 0xa54ff53a5f1d36f1
	iv4 uint64 = 0x510e527fade682d1
	iv5 uint64 = 0x9b05688c2b3e6c1f
	iv6 uint64 = 0x1f83d9abfb41bd6b
	iv7 uint64 = 0x5be0cd19137e2179
)

// digest is the BLAKE2b core.Core. Unlike the Merkle-Damgard family it keeps
// its own running byte counter (t0/t1) rather than relying on the facade's
// total, since the parameter-block IV fold and the keyed first block must be
// compressed before the facade ever learns the message length.
type digest struct {
	h          [8]uint64
	t0, t1     uint64
	outputSize int
}

func u64le(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

// New constructs an unkeyed BLAKE2b core.Core producing outputSize bytes
// (1..64).
func New(outputSize int) (core.Core, error) {
	return NewKeyed(nil, nil, nil, outputSize)
}

// NewKeyed constructs a BLAKE2b core.Core with an optional key (<=64
// bytes), salt (<=16 bytes) and personalization string (<=16 bytes). A
// non-empty key is absorbed as the hash's first, zero-padded block, per
// spec.md's "if keyed, the first block is the key zero-padded to 128 bytes
// and counted in the input length".
func NewKeyed(key, salt, personalization []byte, outputSize int) (core.Core, error) {
	if outputSize <= 0 || outputSize > MaxOutput {
		return nil, &core.ParameterError{Param: "outputSize", Reason: "must be in (0, 64] bytes"}
	}
	if len(key) > MaxKeyLength {
		return nil, &core.ParameterError{Param: "key", Reason: "exceeds 64 bytes"}
	}
	if len(salt) > SaltLength {
		return nil, &core.ParameterError{Param: "salt", Reason: "exceeds 16 bytes"}
	}
	if len(personalization) > SeparatorLength {
		return nil, &core.ParameterError{Param: "personalization", Reason: "exceeds 16 bytes"}
	}

	var param [64]byte
	param[0] = byte(outputSize)
	param[1] = byte(len(key))
	param[2] = 1 // fanout
	param[3] = 1 // depth
	copy(param[32:48], salt)
	copy(param[48:64], personalization)

	d := &digest{outputSize: outputSize}
	d.h[0] = iv0 ^ u64le(param[0:8])
	d.h[1] = iv1 ^ u64le(param[8:16])
	d.h[2] = iv2 ^ u64le(param[16:24])
	d.h[3] = iv3 ^ u64le(param[24:32])
	d.h[4] = iv4 ^ u64le(param[32:40])
	d.h[5] = iv5 ^ u64le(param[40:48])
	d.h[6] = iv6 ^ u64le(param[48:56])
	d.h[7] = iv7 ^ u64le(param[56:64])

	if len(key) > 0 {
		var keyBlock [BlockSize]byte
		copy(keyBlock[:], key)
		d.Compress(keyBlock[:])
		for i := range keyBlock {
			keyBlock[i] = 0
		}
	}

	return d, nil
}

func (d *digest) BlockSize() int { return BlockSize }
func (d *digest) Size() int      { return d.outputSize }
func (d *digest) Withhold() bool { return true }

func (d *digest) Reset() {
	panic("blake2b: core cannot be reset without re-supplying key/salt/personalization; construct a new instance via New or NewKeyed")
}

func rotr64(x uint64, n uint) uint64 { return x>>n | x<<(64-n) }

func g(a, b, c, d, m0, m1 uint64) (uint64, uint64, uint64, uint64) {
	a = a + b + m0
	d = rotr64(d^a, 32)
	c = c + d
	b = rotr64(b^c, 24)
	a = a + b + m1
	d = rotr64(d^a, 16)
	c = c + d
	b = rotr64(b^c, 63)
	return a, b, c, d
}

// sigma is BLAKE2b's 12-round message word permutation schedule (rounds 10
// and 11 repeat rounds 0 and 1).
var sigma = [12][16]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
}

// compress runs the 12-round BLAKE2b permutation over the given block,
// mixing in the chaining value and the (t0, t1, f0, f1) tweak. f0 non-zero
// marks the final block.
func (d *digest) compress(block []byte, f0 uint64) {
	var m [16]uint64
	for i := range m {
		m[i] = u64le(block[i*8:])
	}

	v0, v1, v2, v3 := d.h[0], d.h[1], d.h[2], d.h[3]
	v4, v5, v6, v7 := d.h[4], d.h[5], d.h[6], d.h[7]
	v8, v9, v10, v11 := iv0, iv1, iv2, iv3
	v12 := iv4 ^ d.t0
	v13 := iv5 ^ d.t1
	v14 := iv6 ^ f0
	v15 := iv7

	for _, s := range sigma {
		v0, v4, v8, v12 = g(v0, v4, v8, v12, m[s[0]], m[s[1]])
		v1, v5, v9, v13 = g(v1, v5, v9, v13, m[s[2]], m[s[3]])
		v2, v6, v10, v14 = g(v2, v6, v10, v14, m[s[4]], m[s[5]])
		v3, v7, v11, v15 = g(v3, v7, v11, v15, m[s[6]], m[s[7]])

		v0, v5, v10, v15 = g(v0, v5, v10, v15, m[s[8]], m[s[9]])
		v1, v6, v11, v12 = g(v1, v6, v11, v12, m[s[10]], m[s[11]])
		v2, v7, v8, v13 = g(v2, v7, v8, v13, m[s[12]], m[s[13]])
		v3, v4, v9, v14 = g(v3, v4, v9, v14, m[s[14]], m[s[15]])
	}

	d.h[0] ^= v0 ^ v8
	d.h[1] ^= v1 ^ v9
	d.h[2] ^= v2 ^ v10
	d.h[3] ^= v3 ^ v11
	d.h[4] ^= v4 ^ v12
	d.h[5] ^= v5 ^ v13
	d.h[6] ^= v6 ^ v14
	d.h[7] ^= v7 ^ v15
}

// Compress absorbs one intermediate (non-final) block.
func (d *digest) Compress(block []byte) {
	d.t0 += BlockSize
	if d.t0 < BlockSize {
		d.t1++
	}
	d.compress(block, 0)
}

// Finalize zero-pads tail to a full block, marks it final, and squeezes
// outputSize bytes from the resulting state.
func (d *digest) Finalize(tail []byte, _ core.Counter) []byte {
	dup := *d
	var block [BlockSize]byte
	copy(block[:], tail)

	dup.t0 += uint64(len(tail))
	if dup.t0 < uint64(len(tail)) {
		dup.t1++
	}
	dup.compress(block[:], ^uint64(0))

	var full [64]byte
	for i, v := range dup.h {
		binary.LittleEndian.PutUint64(full[i*8:], v)
	}
	return full[:dup.outputSize]
}
