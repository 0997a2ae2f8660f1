package journal

import "errors"

// Every failure is a local precondition violation: the requested operation
// aborts with no state change, and nothing is logged or swallowed here.
var (
	// ErrAlreadyOpen is returned by Open on an open journal.
	ErrAlreadyOpen = errors.New("journal: already open")
	// ErrAlreadyClosed is returned by Close on a closed journal.
	ErrAlreadyClosed = errors.New("journal: already closed")
	// ErrLogOpen is returned by Clear while the journal is open.
	ErrLogOpen = errors.New("journal: open; close before clearing")
	// ErrLogClosed is returned by every read or write on a closed journal.
	ErrLogClosed = errors.New("journal: closed")
	// ErrInvalidSequenceID is returned when a range start is below 1.
	ErrInvalidSequenceID = errors.New("journal: invalid sequence id")
	// ErrEmptyBuffer is returned by Commit when nothing is buffered.
	ErrEmptyBuffer = errors.New("journal: empty buffer")
	// ErrInvalidCommit reports an internal resolution failure; unreachable
	// while the numbering invariants hold.
	ErrInvalidCommit = errors.New("journal: commit resolution failed")
)
