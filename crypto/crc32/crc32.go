// Package crc32 implements the IEEE 802.3 CRC-32 checksum (reflected
// polynomial 0xEDB88320) as a hashkit core.Core. Unlike the cryptographic
// families this module otherwise implements, CRC-32 has no natural block
// size larger than one byte, so BlockSize is 1 and every byte is its own
// Compress call; Finalize only applies the final complement.
package crc32

import (
	"encoding/binary"

	"github.com/flyhash/hashkit/core"
)

const polyIEEE uint32 = 0xedb88320

var table [256]uint32

func init() {
	for i := range table {
		crc := uint32(i)
		for j := 0; j < 8; j++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ polyIEEE
			} else {
				crc >>= 1
			}
		}
		table[i] = crc
	}
}

type digest struct {
	crc uint32
}

// New returns a fresh CRC-32 (IEEE) core.Core.
func New() core.Core {
	d := &digest{}
	d.Reset()
	return d
}

func (d *digest) BlockSize() int { return 1 }
func (d *digest) Size() int      { return 4 }
func (d *digest) Withhold() bool { return false }
func (d *digest) Reset()         { d.crc = 0xffffffff }

func (d *digest) Compress(block []byte) {
	d.crc = table[byte(d.crc)^block[0]] ^ (d.crc >> 8)
}

func (d *digest) Finalize(tail []byte, _ core.Counter) []byte {
	crc := d.crc
	for _, b := range tail {
		crc = table[byte(crc)^b] ^ (crc >> 8)
	}
	crc ^= 0xffffffff

	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, crc)
	return out
}
