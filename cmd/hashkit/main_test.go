package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/docker/docker/pkg/reexec"
	"github.com/flyhash/hashkit/internal/cmdtest"
)

// TestMain registers this binary as its own reexec target, grounded on the
// devp2p/ethcmd_test.go pattern in the reference pack: the compiled test
// binary re-execs itself under the "hashkit-test" argv[0] to drive the CLI
// as a real subprocess instead of calling run() in-process.
func TestMain(m *testing.M) {
	reexec.Register("hashkit-test", func() {
		if err := run(os.Args); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	})
	if reexec.Init() {
		return
	}
	os.Exit(m.Run())
}

type testHashkit struct {
	*cmdtest.TestCmd
}

func runHashkit(t *testing.T, args ...string) *testHashkit {
	tt := &testHashkit{cmdtest.NewTestCmd(t, nil)}
	tt.Run("hashkit-test", args...)
	return tt
}

func TestHashMD5Empty(t *testing.T) {
	tt := runHashkit(t, "hash", "md5", "-in", "-")
	tt.CloseStdin()
	tt.Expect("d41d8cd98f00b204e9800998ecf8427e\n")
	tt.ExpectExit()
}

func TestHashFileSHA256ABC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abc.txt")
	if err := os.WriteFile(path, []byte("abc"), 0o600); err != nil {
		t.Fatal(err)
	}

	tt := runHashkit(t, "hash", "sha256", "-in", path)
	tt.Expect("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad\n")
	tt.ExpectExit()
}

func TestHMACSHA256EmptyKeyAndMessage(t *testing.T) {
	tt := runHashkit(t, "hmac", "sha256", "-key", "", "-in", "-")
	tt.CloseStdin()
	tt.Expect("b613679a0814d9ec772f95d778c35fc5ff1697c493715653c6c712144292c5ad\n")
	tt.ExpectExit()
}

func TestPBKDF2SHA1RFC6070Case1(t *testing.T) {
	saltHex := "73616c74" // "salt"
	tt := runHashkit(t, "pbkdf2", "sha1",
		"-password", "password",
		"-salt", saltHex,
		"-iter", "1",
		"-keylen", "20",
	)
	tt.Expect("0c60c80f961f0e71f3a9b524af6012062fe037a6\n")
	tt.ExpectExit()
}

func TestHashUnknownAlgorithm(t *testing.T) {
	tt := runHashkit(t, "hash", "not-an-algorithm", "-in", "-")
	tt.CloseStdin()
	tt.WaitExit()
	if tt.ExitStatus() == 0 {
		t.Fatal("expected a non-zero exit status for an unknown algorithm")
	}
}
