package journal

import (
	"errors"
	"testing"
)

func newOpenLog(t *testing.T, opts ...Option[string]) *Log[string] {
	t.Helper()
	l := New(opts...)
	if err := l.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	return l
}

func mustCommit(t *testing.T, l *Log[string]) Commit {
	t.Helper()
	c, err := l.Commit()
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return c
}

func TestStateMachine(t *testing.T) {
	l := New[string]()
	if l.IsOpen() {
		t.Fatalf("new journal should start closed")
	}
	if err := l.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	if !l.IsOpen() {
		t.Fatalf("expected open after Open")
	}
	if err := l.Open(); !errors.Is(err, ErrAlreadyOpen) {
		t.Fatalf("second open: want ErrAlreadyOpen, got %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if l.IsOpen() {
		t.Fatalf("expected closed after Close")
	}
	if err := l.Close(); !errors.Is(err, ErrAlreadyClosed) {
		t.Fatalf("second close: want ErrAlreadyClosed, got %v", err)
	}
}

func TestAppendBuffersUntilCommit(t *testing.T) {
	l := newOpenLog(t)
	if err := l.Append("foo"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := l.Append("bar"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if n, _ := l.CountTransactions(); n != 0 {
		t.Fatalf("buffered entries must not count as committed, got %d", n)
	}
	if n, _ := l.CountCommits(); n != 0 {
		t.Fatalf("expected 0 commits before Commit, got %d", n)
	}

	c := mustCommit(t, l)
	if len(c.TransactionIDs) != 2 || c.TransactionIDs[0] != 1 || c.TransactionIDs[1] != 2 {
		t.Fatalf("expected ids [1 2], got %v", c.TransactionIDs)
	}
	if n, _ := l.CountTransactions(); n != 2 {
		t.Fatalf("expected 2 committed transactions, got %d", n)
	}
	if n, _ := l.CountCommits(); n != 1 {
		t.Fatalf("expected 1 commit, got %d", n)
	}
}

func TestCommitAssignsContiguousRuns(t *testing.T) {
	l := newOpenLog(t)
	for _, d := range []string{"a", "b"} {
		if err := l.Append(d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	mustCommit(t, l)
	for _, d := range []string{"c", "d", "e"} {
		if err := l.Append(d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	c := mustCommit(t, l)
	want := []uint64{3, 4, 5}
	if len(c.TransactionIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, c.TransactionIDs)
	}
	for i, id := range want {
		if c.TransactionIDs[i] != id {
			t.Fatalf("expected %v, got %v", want, c.TransactionIDs)
		}
	}
}

func TestCommitEmptyBufferFails(t *testing.T) {
	l := newOpenLog(t)
	if _, err := l.Commit(); !errors.Is(err, ErrEmptyBuffer) {
		t.Fatalf("want ErrEmptyBuffer, got %v", err)
	}
	if n, _ := l.CountCommits(); n != 0 {
		t.Fatalf("failed commit must not change state, got %d commits", n)
	}
	if n, _ := l.CountTransactions(); n != 0 {
		t.Fatalf("failed commit must not change state, got %d transactions", n)
	}
}

func TestClearRequiresClosedAndRenumbers(t *testing.T) {
	l := newOpenLog(t)
	_ = l.Append("foo")
	mustCommit(t, l)

	if err := l.Clear(); !errors.Is(err, ErrLogOpen) {
		t.Fatalf("clear while open: want ErrLogOpen, got %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := l.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if l.IsOpen() {
		t.Fatalf("clear must leave the journal closed")
	}

	if err := l.Open(); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if n, _ := l.CountTransactions(); n != 0 {
		t.Fatalf("expected empty after clear, got %d", n)
	}
	_ = l.Append("fresh")
	c := mustCommit(t, l)
	if len(c.TransactionIDs) != 1 || c.TransactionIDs[0] != 1 {
		t.Fatalf("numbering must restart at 1, got %v", c.TransactionIDs)
	}
	if n, _ := l.CountCommits(); n != 1 {
		t.Fatalf("commit numbering must restart, got %d", n)
	}
}

func TestOperationsOnClosedFail(t *testing.T) {
	l := New[string]()
	if err := l.Append("x"); !errors.Is(err, ErrLogClosed) {
		t.Fatalf("append: want ErrLogClosed, got %v", err)
	}
	if _, err := l.Commit(); !errors.Is(err, ErrLogClosed) {
		t.Fatalf("commit: want ErrLogClosed, got %v", err)
	}
	if _, err := l.CountCommits(); !errors.Is(err, ErrLogClosed) {
		t.Fatalf("countCommits: want ErrLogClosed, got %v", err)
	}
	if _, err := l.CountTransactions(); !errors.Is(err, ErrLogClosed) {
		t.Fatalf("countTransactions: want ErrLogClosed, got %v", err)
	}
	if _, err := l.SeqRangeTransactions(1, 0); !errors.Is(err, ErrLogClosed) {
		t.Fatalf("rangeTransactions: want ErrLogClosed, got %v", err)
	}
	if _, err := l.SeqRangeCommits(1, 0); !errors.Is(err, ErrLogClosed) {
		t.Fatalf("rangeCommits: want ErrLogClosed, got %v", err)
	}
}

func TestHooksFire(t *testing.T) {
	var opened, closed, cleared int
	var appended []string
	var committed []Commit
	h := Hooks[string]{
		OnOpen:   func() { opened++ },
		OnClose:  func() { closed++ },
		OnClear:  func() { cleared++ },
		OnAppend: func(d string) { appended = append(appended, d) },
		OnCommit: func(c Commit) { committed = append(committed, c) },
	}
	l := New(WithHooks(h))
	if err := l.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	_ = l.Append("foo")
	_ = l.Append("bar")
	mustCommit(t, l)
	_ = l.Close()
	_ = l.Clear()

	if opened != 1 || closed != 1 || cleared != 1 {
		t.Fatalf("lifecycle hooks: open=%d close=%d clear=%d", opened, closed, cleared)
	}
	if len(appended) != 2 || appended[0] != "foo" || appended[1] != "bar" {
		t.Fatalf("onappend payloads: %v", appended)
	}
	if len(committed) != 1 || len(committed[0].TransactionIDs) != 2 {
		t.Fatalf("oncommit records: %+v", committed)
	}
}

func TestInstancesAreIndependent(t *testing.T) {
	a := newOpenLog(t)
	b := newOpenLog(t)
	_ = a.Append("only-a")
	mustCommit(t, a)
	if n, _ := b.CountTransactions(); n != 0 {
		t.Fatalf("instance b saw instance a's writes: %d", n)
	}
}
