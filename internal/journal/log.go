package journal

import (
	"fmt"

	"github.com/tidwall/btree"
)

// commitEntry pairs a commit with its assigned sequence ID inside the
// committed index.
type commitEntry struct {
	seq    uint64
	commit Commit
}

func newCommitTree() *btree.BTreeG[commitEntry] {
	return btree.NewBTreeG(func(a, b commitEntry) bool { return a.seq < b.seq })
}

// Log is the batched sequenced log engine. Append stages entries in an
// uncommitted buffer; Commit seals the buffer into a numbered commit. A
// new Log starts Closed.
type Log[T any] struct {
	core[T]
	lastCommit uint64
	commits    *btree.BTreeG[commitEntry]
	buffer     []Transaction[T]
}

// New builds a batched journal. It starts Closed; call Open before use.
func New[T any](opts ...Option[T]) *Log[T] {
	return &Log[T]{
		core:    newCore(applyOptions(opts)),
		commits: newCommitTree(),
	}
}

// Append stamps data with the current timestamp and stages it in the
// buffer. No sequence ID is assigned until Commit. Fires OnAppend.
func (l *Log[T]) Append(data T) error {
	l.mu.Lock()
	if !l.open {
		l.mu.Unlock()
		return ErrLogClosed
	}
	l.buffer = append(l.buffer, Transaction[T]{Time: l.clock.Now(), Data: data})
	l.mu.Unlock()
	if l.hooks.OnAppend != nil {
		l.hooks.OnAppend(data)
	}
	return nil
}

// Commit seals the buffer: the commit takes the next commit ID, buffered
// transactions take the next contiguous run of global transaction IDs in
// append order, and the buffer empties. The compound update happens in one
// critical section, so readers never observe a partially applied commit.
// Fires OnCommit with the created record, which is also returned.
func (l *Log[T]) Commit() (Commit, error) {
	l.mu.Lock()
	if !l.open {
		l.mu.Unlock()
		return Commit{}, ErrLogClosed
	}
	if len(l.buffer) == 0 {
		l.mu.Unlock()
		return Commit{}, ErrEmptyBuffer
	}
	ids := make([]uint64, len(l.buffer))
	for i, txn := range l.buffer {
		l.lastTxn++
		l.txns.Set(txnEntry[T]{seq: l.lastTxn, txn: txn})
		ids[i] = l.lastTxn
	}
	c := Commit{Time: l.clock.Now(), TransactionIDs: ids}
	l.lastCommit++
	l.commits.Set(commitEntry{seq: l.lastCommit, commit: c})
	l.buffer = nil
	l.mu.Unlock()
	if l.hooks.OnCommit != nil {
		l.hooks.OnCommit(c)
	}
	return c, nil
}

// Clear resets commits, transactions, and buffer while Closed.
func (l *Log[T]) Clear() error {
	return l.clear(func() {
		l.commits = newCommitTree()
		l.lastCommit = 0
		l.buffer = nil
	})
}

// CountCommits returns the committed-commit count.
func (l *Log[T]) CountCommits() (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.open {
		return 0, ErrLogClosed
	}
	return l.lastCommit, nil
}

// SeqRangeCommits returns CommitInfo records for commit IDs in
// [start, finish], transactions resolved in the order recorded on each
// commit. finish 0 means end-of-log; the same start/finish rules as
// SeqRangeTransactions apply.
func (l *Log[T]) SeqRangeCommits(start, finish uint64) ([]CommitInfo[T], error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.open {
		return nil, ErrLogClosed
	}
	if start < 1 {
		return nil, fmt.Errorf("%w: start %d", ErrInvalidSequenceID, start)
	}
	if finish == 0 || finish > l.lastCommit {
		finish = l.lastCommit
	}
	out := []CommitInfo[T]{}
	var resolveErr error
	l.commits.Ascend(commitEntry{seq: start}, func(e commitEntry) bool {
		if e.seq > finish {
			return false
		}
		info := CommitInfo[T]{
			ID:           e.seq,
			Time:         e.commit.Time,
			Transactions: make([]Transaction[T], 0, len(e.commit.TransactionIDs)),
		}
		for _, id := range e.commit.TransactionIDs {
			te, ok := l.txns.Get(txnEntry[T]{seq: id})
			if !ok {
				resolveErr = fmt.Errorf("%w: commit %d references missing transaction %d", ErrInvalidCommit, e.seq, id)
				return false
			}
			info.Transactions = append(info.Transactions, te.txn)
		}
		out = append(out, info)
		return true
	})
	if resolveErr != nil {
		return nil, resolveErr
	}
	return out, nil
}
