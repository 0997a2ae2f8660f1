// Package journal implements reel's in-memory sequenced log engine.
//
// # Overview
//
// A journal holds two committed collections indexed by dense 1-based
// sequence IDs: transactions (individual payload entries) and commits
// (groups of transactions sealed together). Both collections live in
// ordered in-memory B-trees keyed by sequence ID, so range lookups are
// ordered scans rather than searches.
//
// Log is the batched engine: Append stages entries in an uncommitted
// buffer, and Commit atomically assigns the next commit ID plus a
// contiguous run of transaction IDs to everything buffered. SimpleLog is
// the immediate-commit sibling: every Append is numbered on the spot and
// there is no buffer or commit step.
//
// API surface (internal)
//
//	l := journal.New[[]byte]()
//	_ = l.Open()
//	_ = l.Append([]byte("foo"))
//	_ = l.Append([]byte("bar"))
//	c, _ := l.Commit() // c.TransactionIDs == [1 2]
//
//	// Resolve ranges by stable sequence ID (finish 0 means end-of-log)
//	txns, _ := l.SeqRangeTransactions(1, 0)
//	infos, _ := l.SeqRangeCommits(1, 0)
//	_, _ = txns, infos
//
//	// Replay committed payloads in order, optionally paced to the
//	// original inter-append gaps
//	_ = l.Replay(ctx, func(p []byte) { fmt.Println(string(p)) },
//	    journal.ReplayOptions{SimulateTime: true})
//
// # Concurrency
//
// The engine is single-writer by contract: callers serialize mutating
// operations. A single RWMutex makes Commit's compound update atomic with
// respect to concurrent readers; replay pacing sleeps outside the lock.
// Lifecycle hooks fire synchronously on the calling goroutine, after the
// engine lock is released.
package journal
