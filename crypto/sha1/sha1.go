// Package sha1 implements the SHA-1 message digest (FIPS 180-4) as a
// hashkit core.Core: block size 64 bytes, digest size 20 bytes, big-endian
// words and length field.
package sha1

import (
	"encoding/binary"

	"github.com/flyhash/hashkit/core"
)

const (
	BlockSize  = 64
	DigestSize = 20
)

var iv = [5]uint32{0x67452301, 0xEFCDAB89, 0x98BADCFE, 0x10325476, 0xC3D2E1F0}

type digest struct {
	h [5]uint32
}

// New returns a fresh SHA-1 core.Core.
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

func (d *digest) Compress(block []byte) {
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 80; i++ {
		w[i] = rotl32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, dd, e := d.h[0], d.h[1], d.h[2], d.h[3], d.h[4]

	for i := 0; i < 80; i++ {
		var f, k uint32
		switch {
		case i < 20:
			f = (b & c) | (^b & dd)
			k = 0x5A827999
		case i < 40:
			f = b ^ c ^ dd
			k = 0x6ED9EBA1
		case i < 60:
			f = (b & c) | (b & dd) | (c & dd)
			k = 0x8F1BBCDC
		default:
			f = b ^ c ^ dd
			k = 0xCA62C1D6
		}
		temp := rotl32(a, 5) + f + e + k + w[i]
		e = dd
		dd = c
		c = rotl32(b, 30)
		b = a
		a = temp
	}

	d.h[0] += a
	d.h[1] += b
	d.h[2] += c
	d.h[3] += dd
	d.h[4] += e
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
		binary.BigEndian.PutUint32(out[i*4:], v)
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
	binary.BigEndian.PutUint64(lenField[:], bits.Lo)
	buf = append(buf, lenField[:]...)
	return buf
}
