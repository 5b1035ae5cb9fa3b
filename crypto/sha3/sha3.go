// Package sha3 implements the Keccak-f[1600] sponge construction underlying
// both the original Keccak submission (NewKeccak224..512) and the NIST
// SHA3-224..512 standard (New224..512), distinguished only by their
// pad10*1 domain-separation byte. Grounded on the sponge/lane-state shape of
// the teacher's crypto/sha3 package, with the keccakF1600 permutation itself
// (missing from that retrieved fork) supplied in the same style from the
// wider Keccak example corpus.
package sha3

import (
	"encoding/binary"

	"github.com/flyhash/hashkit/core"
)

const stateLanes = 25

const (
	domainKeccak = 0x01
	domainSHA3   = 0x06
)

var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082,
	0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001,
	0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088,
	0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b,
	0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080,
	0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080,
	0x0000000080000001, 0x8000000080008008,
}

var rotationConstants = [24]uint{
	1, 3, 6, 10, 15, 21, 28, 36,
	45, 55, 2, 14, 27, 41, 56, 8,
	25, 43, 62, 18, 39, 61, 20, 44,
}

var piLane = [24]uint{
	10, 7, 11, 17, 18, 3, 5, 16,
	8, 21, 24, 4, 15, 23, 19, 13,
	12, 2, 20, 14, 22, 9, 6, 1,
}

func rotl64(x uint64, n uint) uint64 { return x<<n | x>>(64-n) }

// keccakF1600 is the 24-round Keccak permutation over the 5x5 lane state.
func keccakF1600(a *[stateLanes]uint64) {
	var bc [5]uint64
	for r := 0; r < 24; r++ {
		for i := range bc {
			bc[i] = a[i] ^ a[5+i] ^ a[10+i] ^ a[15+i] ^ a[20+i]
		}
		for i := range bc {
			t := bc[(i+4)%5] ^ rotl64(bc[(i+1)%5], 1)
			for j := 0; j < stateLanes; j += 5 {
				a[i+j] ^= t
			}
		}

		temp := a[1]
		for i, j := range piLane {
			temp2 := a[j]
			a[j] = rotl64(temp, rotationConstants[i])
			temp = temp2
		}

		for j := 0; j < stateLanes; j += 5 {
			for i := range bc {
				bc[i] = a[j+i]
			}
			for i := range bc {
				a[j+i] ^= (^bc[(i+1)%5]) & bc[(i+2)%5]
			}
		}

		a[0] ^= roundConstants[r]
	}
}

type digest struct {
	a          [stateLanes]uint64
	rate       int
	outputSize int
	domain     byte
}

func newDigest(outputSize int, domain byte) core.Core {
	d := &digest{
		rate:       200 - 2*outputSize,
		outputSize: outputSize,
		domain:     domain,
	}
	return d
}

// NewKeccak224, NewKeccak256, NewKeccak384 and NewKeccak512 construct the
// pre-standardization Keccak variants (domain byte 0x01), as used for
// Ethereum-style Keccak-256 digests.
func NewKeccak224() core.Core { return newDigest(224/8, domainKeccak) }
func NewKeccak256() core.Core { return newDigest(256/8, domainKeccak) }
func NewKeccak384() core.Core { return newDigest(384/8, domainKeccak) }
func NewKeccak512() core.Core { return newDigest(512/8, domainKeccak) }

// New224, New256, New384 and New512 construct the NIST FIPS 202 SHA3
// variants (domain byte 0x06).
func New224() core.Core { return newDigest(224/8, domainSHA3) }
func New256() core.Core { return newDigest(256/8, domainSHA3) }
func New384() core.Core { return newDigest(384/8, domainSHA3) }
func New512() core.Core { return newDigest(512/8, domainSHA3) }

func (d *digest) BlockSize() int { return d.rate }
func (d *digest) Size() int      { return d.outputSize }
func (d *digest) Withhold() bool { return false }

func (d *digest) Reset() {
	for i := range d.a {
		d.a[i] = 0
	}
}

// Clone returns an independent copy of d's working state, used by hmac to
// snapshot the inner/outer pad digestion once per key.
func (d *digest) Clone() core.Core {
	dup := *d
	return &dup
}

// Compress XORs one rate-sized block into the lane state and applies the
// Keccak-f[1600] permutation, the sponge's absorb step.
func (d *digest) Compress(block []byte) {
	for i := 0; i < d.rate/8; i++ {
		d.a[i] ^= binary.LittleEndian.Uint64(block[i*8:])
	}
	keccakF1600(&d.a)
}

// Finalize applies pad10*1 (with the variant's domain-separation bit folded
// into the first pad byte, per FIPS 202 §5.1) to the trailing partial block,
// absorbs it, and squeezes outputSize bytes from the resulting state.
func (d *digest) Finalize(tail []byte, _ core.Counter) []byte {
	dup := *d
	padded := make([]byte, dup.rate)
	copy(padded, tail)
	padded[len(tail)] ^= dup.domain
	padded[dup.rate-1] ^= 0x80
	dup.Compress(padded)

	out := make([]byte, 0, dup.outputSize)
	for len(out) < dup.outputSize {
		buf := make([]byte, dup.rate)
		for i := 0; i < dup.rate/8; i++ {
			binary.LittleEndian.PutUint64(buf[i*8:], dup.a[i])
		}
		need := dup.outputSize - len(out)
		if need > dup.rate {
			need = dup.rate
		}
		out = append(out, buf[:need]...)
		if len(out) < dup.outputSize {
			keccakF1600(&dup.a)
		}
	}
	return out
}
