// Package md4 implements the MD4 message digest (RFC 1320) as a hashkit
// core.Core: block size 64 bytes, digest size 16 bytes, little-endian words
// and length field.
package md4

import (
	"encoding/binary"

	"github.com/flyhash/hashkit/core"
)

const (
	BlockSize  = 64
	DigestSize = 16
)

var iv = [4]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476}

var round2Order = [16]int{0, 4, 8, 12, 1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15}
var round3Order = [16]int{0, 8, 4, 12, 2, 10, 6, 14, 1, 9, 5, 13, 3, 11, 7, 15}

var shift1 = [4]uint32{3, 7, 11, 19}
var shift2 = [4]uint32{3, 5, 9, 13}
var shift3 = [4]uint32{3, 9, 11, 15}

const (
	k2 uint32 = 0x5a827999
	k3 uint32 = 0x6ed9eba1
)

type digest struct {
	h [4]uint32
}

// New returns a fresh MD4 core.Core.
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

func fF(x, y, z uint32) uint32 { return (x & y) | (^x & z) }
func fG(x, y, z uint32) uint32 { return (x & y) | (x & z) | (y & z) }
func fH(x, y, z uint32) uint32 { return x ^ y ^ z }

func (d *digest) Compress(block []byte) {
	var m [16]uint32
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(block[i*4:])
	}

	a, b, c, dd := d.h[0], d.h[1], d.h[2], d.h[3]

	for i := 0; i < 16; i++ {
		a = rotl32(a+fF(b, c, dd)+m[i], shift1[i%4])
		a, b, c, dd = dd, a, b, c
	}
	for i := 0; i < 16; i++ {
		a = rotl32(a+fG(b, c, dd)+m[round2Order[i]]+k2, shift2[i%4])
		a, b, c, dd = dd, a, b, c
	}
	for i := 0; i < 16; i++ {
		a = rotl32(a+fH(b, c, dd)+m[round3Order[i]]+k3, shift3[i%4])
		a, b, c, dd = dd, a, b, c
	}

	d.h[0] += a
	d.h[1] += b
	d.h[2] += c
	d.h[3] += dd
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
