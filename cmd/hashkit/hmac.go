package main

import (
	"encoding/hex"
	"flag"
	"fmt"

	"github.com/flyhash/hashkit"
)

func runHMAC(args []string) error {
	fs := flag.NewFlagSet("hmac", flag.ExitOnError)
	keyHex := fs.String("key", "", "hex-encoded key")
	in := fs.String("in", "-", "input file, - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("usage: hashkit hmac <algorithm> -key <hex> [flags]")
	}
	algo := rest[0]

	key, err := hex.DecodeString(*keyHex)
	if err != nil {
		return fmt.Errorf("invalid -key: %w", err)
	}
	data, err := readInput(*in)
	if err != nil {
		return err
	}

	out, err := hashkit.HMACSum(algo, key, data)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
