// Package ripemd160 implements the RIPEMD-160 message digest (ISO/IEC
// 10118-3) as a hashkit core.Core: block size 64 bytes, digest size 20
// bytes, little-endian words and length field. Unlike the MD4/MD5/SHA-1
// family, each block runs two independent parallel lines whose results are
// combined into the new chaining value.
package ripemd160

import (
	"encoding/binary"

	"github.com/flyhash/hashkit/core"
)

const (
	BlockSize  = 64
	DigestSize = 20
)

var iv = [5]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0}

// Message word selection order, left and right lines, rounds 1..5.
var nL = [80]uint {
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	7, 4, 13, 1, 10, 6, 15, 3, 12, 0, 9, 5, 2, 14, 11, 8,
	3, 10, 14, 4, 9, 15, 8, 1, 2, 7, 0, 6, 13, 11, 5, 12,
	1, 9, 11, 10, 0, 8, 12, 4, 13, 3, 7, 15, 14, 5, 6, 2,
	4, 0, 5, 9, 7, 12, 2, 10, 14, 1, 3, 8, 11, 6, 15, 13,
}

var nR = [80]uint {
	5, 14, 7, 0, 9, 2, 11, 4, 13, 6, 15, 8, 1, 10, 3, 12,
	6, 11, 3, 7, 0, 13, 5, 10, 14, 15, 8, 12, 4, 9, 1, 2,
	15, 5, 1, 3, 7, 14, 6, 9, 11, 8, 12, 2, 10, 0, 4, 13,
	8, 6, 4, 1, 3, 11, 15, 0, 5, 12, 2, 13, 9, 7, 10, 14,
	12, 15, 10, 4, 1, 5, 8, 7, 6, 2, 13, 14, 0, 3, 9, 11,
}

// Rotation amounts, left and right lines.
var rL = [80]uint32{
	11, 14, 15, 12, 5, 8, 7, 9, 11, 13, 14, 15, 6, 7, 9, 8,
	7, 6, 8, 13, 11, 9, 7, 15, 7, 12, 15, 9, 11, 7, 13, 12,
	11, 13, 6, 7, 14, 9, 13, 15, 14, 8, 13, 6, 5, 12, 7, 5,
	11, 12, 14, 15, 14, 15, 9, 8, 9, 14, 5, 6, 8, 6, 5, 12,
	9, 15, 5, 11, 6, 8, 13, 12, 5, 12, 13, 14, 11, 8, 5, 6,
}

var rR = [80]uint32{
	8, 9, 9, 11, 13, 15, 15, 5, 7, 7, 8, 11, 14, 14, 12, 6,
	9, 13, 15, 7, 12, 8, 9, 11, 7, 7, 12, 7, 6, 15, 13, 11,
	9, 7, 15, 11, 8, 6, 6, 14, 12, 13, 5, 14, 13, 13, 7, 5,
	15, 5, 8, 11, 14, 14, 6, 14, 6, 9, 12, 9, 12, 5, 15, 8,
	8, 5, 12, 9, 12, 5, 14, 6, 8, 13, 6, 5, 15, 13, 11, 11,
}

// Additive round constants, left and right lines.
var kL = [5]uint32{0x00000000, 0x5a827999, 0x6ed9eba1, 0x8f1bbcdc, 0xa953fd4e}
var kR = [5]uint32{0x50a28be6, 0x5c4dd124, 0x6d703ef3, 0x7a6d76e9, 0x00000000}

type digest struct {
	h [5]uint32
}

// New returns a fresh RIPEMD-160 core.Core.
func New() core.Core {
	d := &digest{}
	d.Reset()
	return d
}

func (d *digest) BlockSize() int { return BlockSize }
func (d *digest) Size() int      { return DigestSize }
func (d *digest) Withhold() bool { return false }
func (d *digest) Reset()         { d.h = iv }

// Clone returns an independent copy of d's working state, used by hmac to
// snapshot the inner/outer pad digestion once per key.
func (d *digest) Clone() core.Core {
	dup := *d
	return &dup
}

func rotl32(x uint32, n uint32) uint32 { return x<<n | x>>(32-n) }

func fRound(j int, x, y, z uint32) uint32 {
	switch {
	case j < 16:
		return x ^ y ^ z
	case j < 32:
		return (x & y) | (^x & z)
	case j < 48:
		return (x | ^y) ^ z
	case j < 64:
		return (x & z) | (y & ^z)
	default:
		return x ^ (y | ^z)
	}
}

func (d *digest) Compress(block []byte) {
	var m [16]uint32
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(block[i*4:])
	}

	al, bl, cl, dl, el := d.h[0], d.h[1], d.h[2], d.h[3], d.h[4]
	ar, br, cr, dr, er := d.h[0], d.h[1], d.h[2], d.h[3], d.h[4]

	for j := 0; j < 80; j++ {
		t := rotl32(al+fRound(j, bl, cl, dl)+m[nL[j]]+kL[j/16], rL[j]) + el
		al, el, dl, cl, bl = el, dl, rotl32(cl, 10), bl, t

		t = rotl32(ar+fRound(79-j, br, cr, dr)+m[nR[j]]+kR[j/16], rR[j]) + er
		ar, er, dr, cr, br = er, dr, rotl32(cr, 10), br, t
	}

	t := d.h[1] + cl + dr
	d.h[1] = d.h[2] + dl + er
	d.h[2] = d.h[3] + el + ar
	d.h[3] = d.h[4] + al + br
	d.h[4] = d.h[0] + bl + cr
	d.h[0] = t
}

func (d *digest) Finalize(tail []byte, total core.Counter) []byte {
	dup := *d
	padded := pad(tail, total)
	for len(padded) > 0 {
		dup.Compress(padded[:BlockSize])
		padded = padded[BlockSize:]
	}
	out := make([]byte, DigestSize)
	for i, v := range dup.h {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out
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
	binary.LittleEndian.PutUint64(lenField[:], bits.Lo)
	buf = append(buf, lenField[:]...)
	return buf
}
