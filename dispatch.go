package hashkit

import (
	"encoding/hex"

	"github.com/flyhash/hashkit/crypto/blake2b"
	"github.com/flyhash/hashkit/crypto/xxhash"
	"github.com/flyhash/hashkit/hasher"
	"github.com/flyhash/hashkit/hmac"
	"github.com/flyhash/hashkit/pbkdf2"
)

// sumHex is the short-form dispatch shape from spec.md §4.5: init -> update
// -> digest -> hex, on the shared pooled instance for name.
func sumHex(name string, data []byte) (string, error) {
	d, err := sum(name, data)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(d), nil
}

func MD4(data []byte) (string, error)       { return sumHex("md4", data) }
func MD5(data []byte) (string, error)       { return sumHex("md5", data) }
func SHA1(data []byte) (string, error)      { return sumHex("sha1", data) }
func SHA224(data []byte) (string, error)    { return sumHex("sha224", data) }
func SHA256(data []byte) (string, error)    { return sumHex("sha256", data) }
func SHA384(data []byte) (string, error)    { return sumHex("sha384", data) }
func SHA512(data []byte) (string, error)    { return sumHex("sha512", data) }
func RIPEMD160(data []byte) (string, error) { return sumHex("ripemd160", data) }

func SHA3_224(data []byte) (string, error) { return sumHex("sha3-224", data) }
func SHA3_256(data []byte) (string, error) { return sumHex("sha3-256", data) }
func SHA3_384(data []byte) (string, error) { return sumHex("sha3-384", data) }
func SHA3_512(data []byte) (string, error) { return sumHex("sha3-512", data) }

func Keccak224(data []byte) (string, error) { return sumHex("keccak-224", data) }
func Keccak256(data []byte) (string, error) { return sumHex("keccak-256", data) }
func Keccak384(data []byte) (string, error) { return sumHex("keccak-384", data) }
func Keccak512(data []byte) (string, error) { return sumHex("keccak-512", data) }

func CRC32(data []byte) (string, error) { return sumHex("crc32", data) }

// XXHash32 hashes data with the given 32-bit seed. xxHash32 is parameterized
// per call (spec.md §6), so it bypasses the shared pool and builds a fresh
// digest; its Compress cost is cheap enough that this is not a bottleneck.
func XXHash32(data []byte, seed uint32) (string, error) {
	h := hasher.New(xxhash.New32(seed))
	if err := h.Update(data); err != nil {
		return "", err
	}
	d, err := h.Digest()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(d), nil
}

// XXHash64 hashes data with a 64-bit seed assembled from seedLow and
// seedHigh (spec.md §6: "64-bit seed = (low | high<<32)").
func XXHash64(data []byte, seedLow, seedHigh uint32) (string, error) {
	h := hasher.New(xxhash.New64(seedLow, seedHigh))
	if err := h.Update(data); err != nil {
		return "", err
	}
	d, err := h.Digest()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(d), nil
}

// BLAKE2b hashes data with the given optional key, salt, personalization and
// output size (1..64 bytes; 64 if outputSize is 0). Like xxHash, BLAKE2b is
// parameterized per call and so is never pooled: a keyed instance's state is
// secret-dependent and must not be shared across callers.
func BLAKE2b(data, key, salt, personalization []byte, outputSize int) (string, error) {
	if outputSize == 0 {
		outputSize = blake2b.MaxOutput
	}
	c, err := blake2b.NewKeyed(key, salt, personalization, outputSize)
	if err != nil {
		return "", err
	}
	h := hasher.New(c)
	if err := h.Update(data); err != nil {
		return "", err
	}
	d, err := h.Digest()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(d), nil
}

// parameterizedNames are the per-call parameterized algorithms, which sit
// outside the registry and support neither HMAC nor PBKDF2.
var parameterizedNames = map[string]bool{"blake2b": true, "xxhash32": true, "xxhash64": true}

// HMACSum computes HMAC(key, data) using the named algorithm, hex-encoded.
// It returns UnsupportedError for algorithm names whose SupportsHMAC is
// false, and for BLAKE2b/xxHash32/xxHash64, which are not in the fixed-shape
// registry at all (spec.md §4.3).
func HMACSum(name string, key, data []byte) (string, error) {
	if parameterizedNames[name] {
		return "", &UnsupportedError{Algorithm: name, Operation: "HMAC"}
	}
	a, err := Lookup(name)
	if err != nil {
		return "", err
	}
	if !a.SupportsHMAC {
		return "", &UnsupportedError{Algorithm: name, Operation: "HMAC"}
	}
	h := hmac.New(a.NewCore, key)
	defer h.Close()
	if err := h.Write(data); err != nil {
		return "", err
	}
	d, err := h.Sum()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(d), nil
}

// PBKDF2Sum derives a dkLen-byte key from password and salt over iter
// rounds of HMAC-name, hex-encoded. It returns UnsupportedError under the
// same conditions as HMACSum.
func PBKDF2Sum(name string, password, salt []byte, iter, dkLen int) (string, error) {
	if parameterizedNames[name] {
		return "", &UnsupportedError{Algorithm: name, Operation: "PBKDF2"}
	}
	a, err := Lookup(name)
	if err != nil {
		return "", err
	}
	if !a.SupportsHMAC {
		return "", &UnsupportedError{Algorithm: name, Operation: "PBKDF2"}
	}
	dk, err := pbkdf2.Key(a.NewCore, password, salt, iter, dkLen)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(dk), nil
}
