// Command hashkit is a CLI front-end exercising the dispatch layer: one
// subcommand per component (one-shot hashing, HMAC, PBKDF2, CSPRNG key
// generation, and two worker-pool fan-out commands). Modeled on the
// teacher's small flag.FlagSet-driven cmd/* convention (see also
// gtank-blake2s/cmd/blake2s/main.go in the reference pack).
package main

import (
	"fmt"
	"os"

	"github.com/flyhash/hashkit/common"
)

// version is stamped by the release process; it stays "dev" in local builds.
var version = "dev"

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: %s <hash|hmac|pbkdf2|genkey|bench|batch|version> [flags]", args[0])
	}
	sub, rest := args[1], args[2:]
	switch sub {
	case "hash":
		return runHash(rest)
	case "hmac":
		return runHMAC(rest)
	case "pbkdf2":
		return runPBKDF2(rest)
	case "genkey":
		return runGenkey(rest)
	case "bench":
		return runBench(rest)
	case "batch":
		return runBatch(rest)
	case "version":
		fmt.Println(common.MakeName("hashkit", version))
		return nil
	default:
		return fmt.Errorf("unknown subcommand %q", sub)
	}
}
