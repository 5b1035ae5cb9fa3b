// Package xxhash implements xxHash32 and xxHash64, seeded non-cryptographic
// hashes, as hashkit core.Core values. Grounded on the one-shot xxHash64
// reference in the pack's Substrate storage-key helper, restructured here
// into a streaming stripe accumulator (core.Core.Compress absorbs one
// full stripe at a time) so it fits the same init/update/digest facade as
// every cryptographic algorithm in this module.
package xxhash

import (
	"encoding/binary"
	"math/bits"

	"github.com/flyhash/hashkit/core"
)

const (
	prime32_1 uint32 = 2654435761
	prime32_2 uint32 = 2246822519
	prime32_3 uint32 = 3266489917
	prime32_4 uint32 = 668265263
	prime32_5 uint32 = 374761393
)

const (
	prime64_1 uint64 = 11400714785074694791
	prime64_2 uint64 = 14029467366897019727
	prime64_3 uint64 = 1609587929392839161
	prime64_4 uint64 = 9650029242287828579
	prime64_5 uint64 = 2870177450012600261
)

// --- xxHash32 ---

const BlockSize32 = 16

type digest32 struct {
	seed       uint32
	v1, v2, v3, v4 uint32
	seenStripe bool
}

// New32 constructs an xxHash32 core.Core with the given seed.
func New32(seed uint32) core.Core {
	d := &digest32{seed: seed}
	d.Reset()
	return d
}

func (d *digest32) BlockSize() int { return BlockSize32 }
func (d *digest32) Size() int      { return 4 }
func (d *digest32) Withhold() bool { return false }

func (d *digest32) Reset() {
	d.v1 = d.seed + prime32_1 + prime32_2
	d.v2 = d.seed + prime32_2
	d.v3 = d.seed
	d.v4 = d.seed - prime32_1
	d.seenStripe = false
}

func round32(acc, input uint32) uint32 {
	acc += input * prime32_2
	acc = bits.RotateLeft32(acc, 13)
	acc *= prime32_1
	return acc
}

func (d *digest32) Compress(block []byte) {
	d.seenStripe = true
	d.v1 = round32(d.v1, binary.LittleEndian.Uint32(block[0:4]))
	d.v2 = round32(d.v2, binary.LittleEndian.Uint32(block[4:8]))
	d.v3 = round32(d.v3, binary.LittleEndian.Uint32(block[8:12]))
	d.v4 = round32(d.v4, binary.LittleEndian.Uint32(block[12:16]))
}

func (d *digest32) Finalize(tail []byte, total core.Counter) []byte {
	var h uint32
	if d.seenStripe {
		h = bits.RotateLeft32(d.v1, 1) + bits.RotateLeft32(d.v2, 7) +
			bits.RotateLeft32(d.v3, 12) + bits.RotateLeft32(d.v4, 18)
	} else {
		h = d.seed + prime32_5
	}
	h += uint32(total.Lo)

	for len(tail) >= 4 {
		h += binary.LittleEndian.Uint32(tail[:4]) * prime32_3
		h = bits.RotateLeft32(h, 17) * prime32_4
		tail = tail[4:]
	}
	for _, b := range tail {
		h += uint32(b) * prime32_5
		h = bits.RotateLeft32(h, 11) * prime32_1
	}

	h ^= h >> 15
	h *= prime32_2
	h ^= h >> 13
	h *= prime32_3
	h ^= h >> 16

	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, h)
	return out
}

// --- xxHash64 ---

const BlockSize64 = 32

type digest64 struct {
	seed           uint64
	v1, v2, v3, v4 uint64
	seenStripe     bool
}

// New64 constructs an xxHash64 core.Core with the given seed, assembled
// from its low and high 32-bit halves per spec.md's "xxHash64 takes the
// seed as two 32-bit halves assembled little-endian into the 64-bit seed".
func New64(seedLo, seedHi uint32) core.Core {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], seedLo)
	binary.LittleEndian.PutUint32(buf[4:8], seedHi)
	d := &digest64{seed: binary.LittleEndian.Uint64(buf[:])}
	d.Reset()
	return d
}

func (d *digest64) BlockSize() int { return BlockSize64 }
func (d *digest64) Size() int      { return 8 }
func (d *digest64) Withhold() bool { return false }

func (d *digest64) Reset() {
	d.v1 = d.seed + prime64_1 + prime64_2
	d.v2 = d.seed + prime64_2
	d.v3 = d.seed
	d.v4 = d.seed - prime64_1
	d.seenStripe = false
}

func round64(acc, input uint64) uint64 {
	acc += input * prime64_2
	acc = bits.RotateLeft64(acc, 31)
	acc *= prime64_1
	return acc
}

func mergeRound64(acc, val uint64) uint64 {
	val = round64(0, val)
	acc ^= val
	acc = acc*prime64_1 + prime64_4
	return acc
}

func (d *digest64) Compress(block []byte) {
	d.seenStripe = true
	d.v1 = round64(d.v1, binary.LittleEndian.Uint64(block[0:8]))
	d.v2 = round64(d.v2, binary.LittleEndian.Uint64(block[8:16]))
	d.v3 = round64(d.v3, binary.LittleEndian.Uint64(block[16:24]))
	d.v4 = round64(d.v4, binary.LittleEndian.Uint64(block[24:32]))
}

func (d *digest64) Finalize(tail []byte, total core.Counter) []byte {
	var h uint64
	if d.seenStripe {
		h = bits.RotateLeft64(d.v1, 1) + bits.RotateLeft64(d.v2, 7) +
			bits.RotateLeft64(d.v3, 12) + bits.RotateLeft64(d.v4, 18)
		h = mergeRound64(h, d.v1)
		h = mergeRound64(h, d.v2)
		h = mergeRound64(h, d.v3)
		h = mergeRound64(h, d.v4)
	} else {
		h = d.seed + prime64_5
	}
	h += total.Lo

	for len(tail) >= 8 {
		k1 := round64(0, binary.LittleEndian.Uint64(tail[:8]))
		h ^= k1
		h = bits.RotateLeft64(h, 27)*prime64_1 + prime64_4
		tail = tail[8:]
	}
	if len(tail) >= 4 {
		h ^= uint64(binary.LittleEndian.Uint32(tail[:4])) * prime64_1
		h = bits.RotateLeft64(h, 23)*prime64_2 + prime64_3
		tail = tail[4:]
	}
	for _, b := range tail {
		h ^= uint64(b) * prime64_5
		h = bits.RotateLeft64(h, 11) * prime64_1
	}

	h ^= h >> 33
	h *= prime64_2
	h ^= h >> 29
	h *= prime64_3
	h ^= h >> 32

	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, h)
	return out
}
