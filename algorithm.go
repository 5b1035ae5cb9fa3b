package hashkit

import (
	"sync"

	"github.com/flyhash/hashkit/core"
	"github.com/flyhash/hashkit/crypto/crc32"
	"github.com/flyhash/hashkit/crypto/md4"
	"github.com/flyhash/hashkit/crypto/md5"
	"github.com/flyhash/hashkit/crypto/ripemd160"
	"github.com/flyhash/hashkit/crypto/sha1"
	"github.com/flyhash/hashkit/crypto/sha256"
	"github.com/flyhash/hashkit/crypto/sha3"
	"github.com/flyhash/hashkit/crypto/sha512"
	"github.com/flyhash/hashkit/hasher"
)

// Algorithm describes one fixed-shape hash variant: its name, a constructor
// for a fresh core.Core, and whether HMAC/PBKDF2 may be built over it
// (spec.md §3, "hash algorithm descriptor"). BLAKE2b and xxHash32/64 are not
// registered here because their shape depends on per-call parameters (key,
// salt, personalization, output size, seed) rather than being fixed per
// name; they are dispatched directly by their own functions in dispatch.go.
type Algorithm struct {
	Name         string
	NewCore      func() core.Core
	SupportsHMAC bool
}

// registry lists every fixed-shape algorithm by name, matching spec.md §6's
// external-interface table.
var registry = map[string]Algorithm{
	"md4":         {"md4", md4.New, true},
	"md5":         {"md5", md5.New, true},
	"sha1":        {"sha1", sha1.New, true},
	"sha224":      {"sha224", func() core.Core { return sha256.New224() }, true},
	"sha256":      {"sha256", func() core.Core { return sha256.New256() }, true},
	"sha384":      {"sha384", func() core.Core { return sha512.New384() }, true},
	"sha512":      {"sha512", func() core.Core { return sha512.New512() }, true},
	"ripemd160":   {"ripemd160", ripemd160.New, true},
	"sha3-224":    {"sha3-224", sha3.New224, true},
	"sha3-256":    {"sha3-256", sha3.New256, true},
	"sha3-384":    {"sha3-384", sha3.New384, true},
	"sha3-512":    {"sha3-512", sha3.New512, true},
	"keccak-224":  {"keccak-224", sha3.NewKeccak224, true},
	"keccak-256":  {"keccak-256", sha3.NewKeccak256, true},
	"keccak-384":  {"keccak-384", sha3.NewKeccak384, true},
	"keccak-512":  {"keccak-512", sha3.NewKeccak512, true},
	"crc32":       {"crc32", crc32.New, false},
}

// Lookup returns the registered Algorithm for name, or a ParameterError if
// name is not one of the fixed-shape algorithms above (BLAKE2b, xxHash32 and
// xxHash64 are parameterized and are never found here; use their dedicated
// functions instead).
func Lookup(name string) (Algorithm, error) {
	a, ok := registry[name]
	if !ok {
		return Algorithm{}, &core.ParameterError{Param: "algorithm", Reason: "unknown algorithm name " + name}
	}
	return a, nil
}

// NewHasher returns an independent streaming hasher.Hasher for name, for
// concurrent or interleaved use (spec.md §4.5: the shared pooled instance
// used by the one-shot dispatch functions is single-threaded and must not be
// used concurrently; callers who need that must build their own instance
// here instead).
func NewHasher(name string) (*hasher.Hasher, error) {
	a, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return hasher.New(a.NewCore()), nil
}

// sharedPool caches one single-threaded hasher.Hasher per fixed-shape
// algorithm variant, reused across one-shot dispatch calls (spec.md §4.5,
// §5). Concurrent one-shot calls against the same algorithm serialize on
// entry.mu rather than each allocating a fresh Core.
type sharedEntry struct {
	mu sync.Mutex
	h  *hasher.Hasher
}

var sharedPool = map[string]*sharedEntry{}

func init() {
	for name, a := range registry {
		sharedPool[name] = &sharedEntry{h: hasher.New(a.NewCore())}
	}
}

// sum runs data through name's shared pooled hasher and returns the raw
// digest bytes.
func sum(name string, data []byte) ([]byte, error) {
	entry, ok := sharedPool[name]
	if !ok {
		return nil, &core.ParameterError{Param: "algorithm", Reason: "unknown algorithm name " + name}
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.h.Init()
	if err := entry.h.Update(data); err != nil {
		return nil, err
	}
	return entry.h.Digest()
}
