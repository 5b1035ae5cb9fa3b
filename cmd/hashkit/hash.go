package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/flyhash/hashkit"
	"github.com/flyhash/hashkit/common"
)

// fixedShapeHashes dispatches the algorithms whose shape does not depend on
// per-call parameters; BLAKE2b, xxHash32 and xxHash64 are handled separately
// below because they take a key/salt/personalization or seed.
var fixedShapeHashes = map[string]func([]byte) (string, error){
	"md4":        hashkit.MD4,
	"md5":        hashkit.MD5,
	"sha1":       hashkit.SHA1,
	"sha224":     hashkit.SHA224,
	"sha256":     hashkit.SHA256,
	"sha384":     hashkit.SHA384,
	"sha512":     hashkit.SHA512,
	"ripemd160":  hashkit.RIPEMD160,
	"sha3-224":   hashkit.SHA3_224,
	"sha3-256":   hashkit.SHA3_256,
	"sha3-384":   hashkit.SHA3_384,
	"sha3-512":   hashkit.SHA3_512,
	"keccak-224": hashkit.Keccak224,
	"keccak-256": hashkit.Keccak256,
	"keccak-384": hashkit.Keccak384,
	"keccak-512": hashkit.Keccak512,
	"crc32":      hashkit.CRC32,
}

func runHash(args []string) error {
	fs := flag.NewFlagSet("hash", flag.ExitOnError)
	in := fs.String("in", "-", "input file, - for stdin")
	seed := fs.Uint("seed", 0, "xxHash32 seed, or xxHash64 low seed half")
	seedHi := fs.Uint("seed-hi", 0, "xxHash64 high seed half")
	key := fs.String("key", "", "BLAKE2b key, hex-encoded")
	salt := fs.String("salt", "", "BLAKE2b salt, hex-encoded")
	personal := fs.String("personal", "", "BLAKE2b personalization, hex-encoded")
	outSize := fs.Int("size", 64, "BLAKE2b output size in bytes (1..64)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: hashkit hash <algorithm> [flags]")
	}
	algo := rest[0]

	data, err := readInput(*in)
	if err != nil {
		return err
	}

	var out string
	switch algo {
	case "xxhash32":
		out, err = hashkit.XXHash32(data, uint32(*seed))
	case "xxhash64":
		out, err = hashkit.XXHash64(data, uint32(*seed), uint32(*seedHi))
	case "blake2b":
		var k, s, p []byte
		if k, err = decodeHexFlag(*key); err != nil {
			return fmt.Errorf("invalid -key: %w", err)
		}
		if s, err = decodeHexFlag(*salt); err != nil {
			return fmt.Errorf("invalid -salt: %w", err)
		}
		if p, err = decodeHexFlag(*personal); err != nil {
			return fmt.Errorf("invalid -personal: %w", err)
		}
		out, err = hashkit.BLAKE2b(data, k, s, p, *outSize)
	default:
		fn, ok := fixedShapeHashes[algo]
		if !ok {
			return fmt.Errorf("unknown algorithm %q", algo)
		}
		out, err = fn(data)
	}
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	if !common.FileExist(path) {
		return nil, fmt.Errorf("input file %q does not exist", path)
	}
	return os.ReadFile(path)
}

func decodeHexFlag(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}
