package randentropy

import (
	crand "crypto/rand"
	"io"

	"github.com/flyhash/hashkit/crypto/sha3"
	"github.com/flyhash/hashkit/hasher"
)

var Reader io.Reader = &randEntropy{}

type randEntropy struct {
}

func (* randEntropy) Read(bytes []byte) (n int, err error) {
	readBytes := GetEntropyCSPRNG(len(bytes))
	copy(bytes, readBytes)
	return len(bytes), nil
}

// Sha3 returns the Keccak-256 digest of data, dogfooding this module's own
// sha3 package instead of an external implementation.
func Sha3(data []byte) []byte {
	h := hasher.New(sha3.NewKeccak256())
	_ = h.Update(data)
	d, err := h.Digest()
	if err != nil {
		panic(err)
	}
	return d
}

func GetEntropyCSPRNG(n int) []byte {
	mainBuff := make([]byte, n)
	_, err := io.ReadFull(crand.Reader, mainBuff)
	if err != nil {
		panic("reading from crypto/rand failed: " + err.Error())
	}
	return mainBuff
}