package main

import (
	"encoding/hex"
	"flag"
	"fmt"

	"github.com/flyhash/hashkit/crypto/randentropy"
)

func runGenkey(args []string) error {
	fs := flag.NewFlagSet("genkey", flag.ExitOnError)
	n := fs.Int("n", 32, "number of random bytes to generate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *n <= 0 {
		return fmt.Errorf("-n must be positive")
	}
	fmt.Println(hex.EncodeToString(randentropy.GetEntropyCSPRNG(*n)))
	return nil
}
