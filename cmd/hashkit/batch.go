package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/flyhash/hashkit"
	"github.com/flyhash/hashkit/common"
	"github.com/flyhash/hashkit/event"
	"github.com/flyhash/hashkit/hasher"
)

// runBatch reads one file path per line from stdin and hashes each with
// -algo, fanning the work out across -workers worker-owned hasher.Hasher
// instances and publishing a FileDone event per completed file.
func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	algo := fs.String("algo", "sha256", "algorithm to hash each listed file with")
	workers := fs.Int("workers", 4, "number of concurrent workers")
	dir := fs.String("dir", "", "base directory that relative paths on stdin are resolved against")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *workers <= 0 {
		return fmt.Errorf("-workers must be positive")
	}

	var feed event.FeedOf[FileDone]
	events := make(chan FileDone, *workers)
	sub := feed.Subscribe(events)
	defer sub.Unsubscribe()

	var printWG sync.WaitGroup
	printWG.Add(1)
	go func() {
		defer printWG.Done()
		for evt := range events {
			fmt.Printf("%s  %s\n", evt.Digest, evt.Path)
		}
	}()

	paths := make(chan string)
	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		h, err := hashkit.NewHasher(*algo)
		if err != nil {
			close(paths)
			wg.Wait()
			close(events)
			printWG.Wait()
			return err
		}
		wg.Add(1)
		go func(h *hasher.Hasher) {
			defer wg.Done()
			for path := range paths {
				if *dir != "" {
					path = common.AbsolutePath(*dir, path)
				}
				if !common.FileExist(path) {
					fmt.Fprintf(os.Stderr, "%s: no such file\n", path)
					continue
				}
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
					continue
				}
				h.Init()
				if err := h.Update(data); err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
					continue
				}
				digest, err := h.Digest()
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
					continue
				}
				feed.Send(FileDone{Path: path, Algorithm: *algo, Digest: hex.EncodeToString(digest)})
			}
		}(h)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		paths <- scanner.Text()
	}
	close(paths)
	wg.Wait()
	close(events)
	printWG.Wait()
	return scanner.Err()
}
