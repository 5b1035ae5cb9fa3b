// Package md5 implements the MD5 message digest (RFC 1321) as a hashkit
// core.Core: block size 64 bytes, digest size 16 bytes, little-endian words
// and length field.
package md5

import (
	"encoding/binary"

	"github.com/flyhash/hashkit/core"
)

const (
	BlockSize  = 64
	DigestSize = 16
)

var iv = [4]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476}

// s specifies the per-round left-rotation amount.
var s = [64]uint32{
	7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22,
	5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20,
	4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23,
	6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21,
}

// k is floor(abs(sin(i+1)) * 2^32) for i in [0,64).
var k = [64]uint32{
	0xd76aa478, 0xe8c7b756, 0x242070db, 0xc1bdceee,
	0xf57c0faf, 0x4787c62a, 0xa8304613, 0xfd469501,
	0x698098d8, 0x8b44f7af, 0xffff5bb1, 0x895cd7be,
	0x6b901122, 0xfd987193, 0xa679438e, 0x49b40821,
	0xf61e2562, 0xc040b340, 0x265e5a51, 0xe9b6c7aa,
	0xd62f105d, 0x02441453, 0xd8a1e681, 0xe7d3fbc8,
	0x21e1cde6, 0xc33707d6, 0xf4d50d87, 0x455a14ed,
	0xa9e3e905, 0xfcefa3f8, 0x676f02d9, 0x8d2a4c8a,
	0xfffa3942, 0x8771f681, 0x6d9d6122, 0xfde5380c,
	0xa4beea44, 0x4bdecfa9, 0xf6bb4b60, 0xbebfbc70,
	0x289b7ec6, 0xeaa127fa, 0xd4ef3085, 0x04881d05,
	0xd9d4d039, 0xe6db99e5, 0x1fa27cf8, 0xc4ac5665,
	0xf4292244, 0x432aff97, 0xab9423a7, 0xfc93a039,
	0x655b59c3, 0x8f0ccc92, 0xffeff47d, 0x85845dd1,
	0x6fa87e4f, 0xfe2ce6e0, 0xa3014314, 0x4e0811a1,
	0xf7537e82, 0xbd3af235, 0x2ad7d2bb, 0xeb86d391,
}

type digest struct {
	h [4]uint32
}

// New returns a fresh MD5 core.Core.
func New() core.Core {
	d := &digest{}
	d.Reset()
	return d
}

func (d *digest) BlockSize() int { return BlockSize }
func (d *digest) Size() int      { return DigestSize }
func (d *digest) Withhold() bool { return false }

func (d *digest) Reset() { d.h = iv }

// Clone returns an independent copy of d's working state, used by hmac to
// snapshot the inner/outer pad digestion once per key.
func (d *digest) Clone() core.Core {
	dup := *d
	return &dup
}

func rotl32(x uint32, n uint32) uint32 { return x<<n | x>>(32-n) }

func (d *digest) Compress(block []byte) {
	var m [16]uint32
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(block[i*4:])
	}

	a, b, c, dd := d.h[0], d.h[1], d.h[2], d.h[3]
	for i := 0; i < 64; i++ {
		var f uint32
		var g int
		switch {
		case i < 16:
			f = (b & c) | (^b & dd)
			g = i
		case i < 32:
			f = (dd & b) | (^dd & c)
			g = (5*i + 1) % 16
		case i < 48:
			f = b ^ c ^ dd
			g = (3*i + 5) % 16
		default:
			f = c ^ (b | ^dd)
			g = (7 * i) % 16
		}
		f = f + a + k[i] + m[g]
		a, dd, c = dd, c, b
		b = b + rotl32(f, s[i])
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

// pad appends MD5's 0x80-then-zeros-then-little-endian-bit-length padding to
// tail, returning one or two full blocks ready to compress.
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
