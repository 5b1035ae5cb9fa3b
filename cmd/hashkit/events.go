package main

import "time"

// JobDone is published once per completed hashing job by the bench
// subcommand (SPEC_FULL.md §3 item 3), one per worker-owned hasher.Hasher.
type JobDone struct {
	Algorithm string
	Digest    string
	Elapsed   time.Duration
}

// FileDone is published once per completed file hash by the batch
// subcommand.
type FileDone struct {
	Path      string
	Algorithm string
	Digest    string
}
