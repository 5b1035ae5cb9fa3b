// Package sha256 implements SHA-256 and, via truncation of the same
// compression function with a distinct IV, SHA-224 (FIPS 180-4). Block size
// 64 bytes, big-endian words and length field.
package sha256

import (
	"encoding/binary"

	"github.com/flyhash/hashkit/core"
)

const BlockSize = 64

const (
	Size224 = 28
	Size256 = 32
)

var iv256 = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var iv224 = [8]uint32{
	0xc1059ed8, 0x367cd507, 0x3070dd17, 0xf70e5939,
	0xffc00b31, 0x68581511, 0x64f98fa7, 0xbefa4fa4,
}

var k = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

type digest struct {
	h    [8]uint32
	iv   [8]uint32
	size int
}

// New256 returns a fresh SHA-256 core.Core.
func New256() core.Core { return newDigest(iv256, Size256) }

// New224 returns a fresh SHA-224 core.Core (SHA-256 compression, truncated
// output, distinct IV).
func New224() core.Core { return newDigest(iv224, Size224) }

func newDigest(iv [8]uint32, size int) core.Core {
	d := &digest{iv: iv, size: size}
	d.Reset()
	return d
}

func (d *digest) BlockSize() int { return BlockSize }
func (d *digest) Size() int      { return d.size }
func (d *digest) Withhold() bool { return false }
func (d *digest) Reset()         { d.h = d.iv }

// Clone returns an independent copy of d's working state, used by hmac to
// snapshot the inner/outer pad digestion once per key.
func (d *digest) Clone() core.Core {
	dup := *d
	return &dup
}

func rotr32(x uint32, n uint32) uint32 { return x>>n | x<<(32-n) }

func (d *digest) Compress(block []byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 64; i++ {
		s0 := rotr32(w[i-15], 7) ^ rotr32(w[i-15], 18) ^ (w[i-15] >> 3)
		s1 := rotr32(w[i-2], 17) ^ rotr32(w[i-2], 19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, dd, e, f, g, h := d.h[0], d.h[1], d.h[2], d.h[3], d.h[4], d.h[5], d.h[6], d.h[7]

	for i := 0; i < 64; i++ {
		s1 := rotr32(e, 6) ^ rotr32(e, 11) ^ rotr32(e, 25)
		ch := (e & f) ^ (^e & g)
		temp1 := h + s1 + ch + k[i] + w[i]
		s0 := rotr32(a, 2) ^ rotr32(a, 13) ^ rotr32(a, 22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		temp2 := s0 + maj

		h = g
		g = f
		f = e
		e = dd + temp1
		dd = c
		c = b
		b = a
		a = temp1 + temp2
	}

	d.h[0] += a
	d.h[1] += b
	d.h[2] += c
	d.h[3] += dd
	d.h[4] += e
	d.h[5] += f
	d.h[6] += g
	d.h[7] += h
}

func (d *digest) Finalize(tail []byte, total core.Counter) []byte {
	dup := *d
	padded := pad(tail, total)
	for len(padded) > 0 {
		dup.Compress(padded[:BlockSize])
		padded = padded[BlockSize:]
	}
	full := make([]byte, 32)
	for i, v := range dup.h {
		binary.BigEndian.PutUint32(full[i*4:], v)
	}
	return full[:d.size]
}

func pad(tail []byte, total core.Counter) []byte {
	bits := total.Bits()
	buf := make([]byte, 0, 2*BlockSize)
	buf = append(buf, tail...)
	buf = append(buf, 0x80)
	for len(buf)%BlockSize != BlockSize-8 {
		buf = append(buf, 0)
	}
	var lenField [8]byte
	binary.BigEndian.PutUint64(lenField[:], bits.Lo)
	buf = append(buf, lenField[:]...)
	return buf
}
