// Package pbkdf2 implements PBKDF2-HMAC (spec.md §4.4) key derivation on top
// of package hmac, reusing a single HMAC instance's cached inner/outer
// templates across every U_1..U_c inner call of every block instead of
// re-deriving the key pads per iteration. The iteration loop itself follows
// the shape of the reference pack's jack0liu-pbkdf2 implementation; the
// named ParameterSet constructors are grounded on justincranford-cryptoutil's
// hash_parameter_sets.go.
package pbkdf2

import (
	"encoding/binary"

	"github.com/flyhash/hashkit/core"
	"github.com/flyhash/hashkit/hmac"
)

const maxBlocks = 1<<32 - 1

// Key derives a dkLen-byte key from password and salt using iter rounds of
// HMAC over the algorithm produced by newCore.
func Key(newCore func() core.Core, password, salt []byte, iter, dkLen int) ([]byte, error) {
	if iter <= 0 {
		return nil, &core.ParameterError{Param: "iter", Reason: "must be positive"}
	}
	if dkLen <= 0 {
		return nil, &core.ParameterError{Param: "dkLen", Reason: "must be positive"}
	}

	prf := hmac.New(newCore, password)
	defer prf.Close()

	hLen := prf.Size()
	if dkLen > maxBlocks*hLen {
		return nil, &core.ParameterError{Param: "dkLen", Reason: "exceeds (2^32-1) * hash length"}
	}
	numBlocks := (dkLen + hLen - 1) / hLen

	dk := make([]byte, 0, numBlocks*hLen)
	var blockIndex [4]byte

	for block := 1; block <= numBlocks; block++ {
		binary.BigEndian.PutUint32(blockIndex[:], uint32(block))

		prf.Init()
		_ = prf.Write(salt)
		_ = prf.Write(blockIndex[:])
		u, err := prf.Sum()
		if err != nil {
			return nil, err
		}
		t := append([]byte(nil), u...)

		for n := 2; n <= iter; n++ {
			prf.Init()
			_ = prf.Write(u)
			u, err = prf.Sum()
			if err != nil {
				return nil, err
			}
			for x := range t {
				t[x] ^= u[x]
			}
		}

		dk = append(dk, t...)
	}

	return dk[:dkLen], nil
}

// ParameterSet bundles an iteration count, salt length and derived-key
// length for a named PBKDF2-HMAC configuration, so callers do not hand-roll
// iteration counts (SPEC_FULL.md §3 item 6).
type ParameterSet struct {
	Name       string
	NewCore    func() core.Core
	Iterations int
	SaltLength int
	KeyLength  int
}

// Derive runs Key using the parameter set's iteration count and key length.
func (p ParameterSet) Derive(password, salt []byte) ([]byte, error) {
	return Key(p.NewCore, password, salt, p.Iterations, p.KeyLength)
}
