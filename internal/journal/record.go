package journal

import "time"

// Transaction is a single payload entry. It is immutable once created and
// is identified by its 1-based position in the committed-transactions
// sequence; the ID is never stored on the record itself.
type Transaction[T any] struct {
	Time time.Time
	Data T
}

// Commit groups transactions sealed together. TransactionIDs holds the
// global 1-based IDs of the grouped transactions, a contiguous run in
// append order. Like transactions, commits are numbered by position.
type Commit struct {
	Time           time.Time
	TransactionIDs []uint64
}

// CommitInfo is the caller-facing view of a commit: its own sequence ID
// plus the referenced transactions resolved in the recorded order.
type CommitInfo[T any] struct {
	ID           uint64
	Time         time.Time
	Transactions []Transaction[T]
}

// Hooks carries optional lifecycle callbacks. Nil entries are skipped.
// Hooks fire synchronously on the goroutine that performed the triggering
// operation, after the engine lock is released; their return values are
// not consumed. OnCommit never fires for SimpleLog.
type Hooks[T any] struct {
	OnOpen   func()
	OnClose  func()
	OnClear  func()
	OnAppend func(data T)
	OnCommit func(c Commit)
}
