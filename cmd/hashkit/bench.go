package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"sync"
	"time"

	"github.com/flyhash/hashkit"
	"github.com/flyhash/hashkit/common"
	"github.com/flyhash/hashkit/event"
	"github.com/flyhash/hashkit/hasher"
	"github.com/flyhash/hashkit/log"
)

// runBench fans a fixed-size payload out across -workers worker-owned
// hasher.Hasher instances (spec.md §5: callers needing parallelism must
// obtain their own hasher instances), publishing a JobDone event per
// completed job over an event.FeedOf.
func runBench(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	algo := fs.String("algo", "sha256", "algorithm to benchmark")
	size := fs.Int("size", 1<<20, "payload size in bytes per job")
	jobs := fs.Int("jobs", 100, "number of jobs to run")
	workers := fs.Int("workers", 4, "number of concurrent workers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *jobs <= 0 || *workers <= 0 || *size <= 0 {
		return fmt.Errorf("-jobs, -workers and -size must be positive")
	}

	payload := make([]byte, *size)
	logger := log.New("cmd", "bench", "algo", *algo)

	var feed event.FeedOf[JobDone]
	events := make(chan JobDone, *workers)
	sub := feed.Subscribe(events)
	defer sub.Unsubscribe()

	var logWG sync.WaitGroup
	logWG.Add(1)
	go func() {
		defer logWG.Done()
		for evt := range events {
			logger.Info("job done", "digest", evt.Digest, "elapsed", common.PrettyDuration(evt.Elapsed))
		}
	}()

	jobCh := make(chan struct{}, *jobs)
	for i := 0; i < *jobs; i++ {
		jobCh <- struct{}{}
	}
	close(jobCh)

	var wg sync.WaitGroup
	start := time.Now()
	for w := 0; w < *workers; w++ {
		h, err := hashkit.NewHasher(*algo)
		if err != nil {
			return err
		}
		wg.Add(1)
		go func(h *hasher.Hasher) {
			defer wg.Done()
			for range jobCh {
				jobStart := time.Now()
				h.Init()
				if err := h.Update(payload); err != nil {
					logger.Error("update failed", "err", err)
					continue
				}
				digest, err := h.Digest()
				if err != nil {
					logger.Error("digest failed", "err", err)
					continue
				}
				feed.Send(JobDone{
					Algorithm: *algo,
					Digest:    hex.EncodeToString(digest),
					Elapsed:   time.Since(jobStart),
				})
			}
		}(h)
	}
	wg.Wait()
	close(events)
	logWG.Wait()

	elapsed := time.Since(start)
	totalBytes := int64(*jobs) * int64(*size)
	throughput := float64(totalBytes) / elapsed.Seconds() / 1e6
	fmt.Printf("%d jobs, %d bytes total, %s elapsed, %.2f MB/s\n",
		*jobs, totalBytes, common.PrettyDuration(elapsed), throughput)
	return nil
}
