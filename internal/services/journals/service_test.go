package journalsvc

import (
	"context"
	"errors"
	"testing"

	cfgpkg "github.com/rzbill/reel/internal/config"
	"github.com/rzbill/reel/internal/journal"
	"github.com/rzbill/reel/internal/runtime"
)

func newTestService(t *testing.T, cfg cfgpkg.Config) *Service {
	t.Helper()
	rt, err := runtime.Open(runtime.Options{Config: cfg})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	return New(rt)
}

func appendAndCommit(t *testing.T, s *Service, name string, payloads ...string) {
	t.Helper()
	ctx := context.Background()
	for _, p := range payloads {
		if err := s.Append(ctx, name, []byte(p)); err != nil {
			t.Fatalf("append %q: %v", p, err)
		}
	}
	if _, err := s.Commit(ctx, name); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestAppendCommitCounts(t *testing.T) {
	s := newTestService(t, cfgpkg.Default())
	appendAndCommit(t, s, "orders", "foo", "bar")
	counts, err := s.GetCounts(context.Background(), "orders")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.Commits != 1 || counts.Transactions != 2 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestPayloadLimitEnforced(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.JournalDefaults.PayloadMaxBytes = 4
	s := newTestService(t, cfg)
	err := s.Append(context.Background(), "orders", []byte("too big"))
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("want ErrPayloadTooLarge, got %v", err)
	}
	// Rejected payloads never reach the buffer.
	if err := s.Append(context.Background(), "orders", []byte("ok")); err != nil {
		t.Fatalf("append: %v", err)
	}
	c, err := s.Commit(context.Background(), "orders")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(c.TransactionIDs) != 1 {
		t.Fatalf("expected one buffered entry, got %v", c.TransactionIDs)
	}
}

func TestRangeTransactionsSequencesAndFilters(t *testing.T) {
	s := newTestService(t, cfgpkg.Default())
	appendAndCommit(t, s, "orders", "foo", "bar", "baz")

	all, err := s.RangeTransactions(context.Background(), "orders", 1, 0, "")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(all) != 3 || all[0].Seq != 1 || all[2].Seq != 3 {
		t.Fatalf("unexpected messages: %+v", all)
	}

	only, err := s.RangeTransactions(context.Background(), "orders", 1, 0, `text == "bar"`)
	if err != nil {
		t.Fatalf("filtered range: %v", err)
	}
	if len(only) != 1 || string(only[0].Payload) != "bar" || only[0].Seq != 2 {
		t.Fatalf("filter mismatch: %+v", only)
	}
}

func TestRangeTransactionsJSONFilter(t *testing.T) {
	s := newTestService(t, cfgpkg.Default())
	appendAndCommit(t, s, "events",
		`{"level":"info","msg":"a"}`,
		`{"level":"error","msg":"b"}`)
	got, err := s.RangeTransactions(context.Background(), "events", 1, 0, `json.level == "error"`)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(got) != 1 || got[0].Seq != 2 {
		t.Fatalf("json filter mismatch: %+v", got)
	}
}

func TestRangeTransactionsBadFilter(t *testing.T) {
	s := newTestService(t, cfgpkg.Default())
	appendAndCommit(t, s, "orders", "foo")
	if _, err := s.RangeTransactions(context.Background(), "orders", 1, 0, "not a valid ((("); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestRangeCommitsResolves(t *testing.T) {
	s := newTestService(t, cfgpkg.Default())
	appendAndCommit(t, s, "orders", "foo", "bar")
	appendAndCommit(t, s, "orders", "baz")
	infos, err := s.RangeCommits(context.Background(), "orders", 2, 2)
	if err != nil {
		t.Fatalf("range commits: %v", err)
	}
	if len(infos) != 1 || infos[0].ID != 2 || len(infos[0].Transactions) != 1 {
		t.Fatalf("unexpected commits: %+v", infos)
	}
	if string(infos[0].Transactions[0].Data) != "baz" {
		t.Fatalf("resolved data mismatch: %+v", infos[0].Transactions)
	}
}

func TestReplayFiltersAndOrders(t *testing.T) {
	s := newTestService(t, cfgpkg.Default())
	appendAndCommit(t, s, "orders", "keep-1", "drop", "keep-2")
	var got []Message
	err := s.Replay(context.Background(), "orders", `text.startsWith("keep")`, journal.ReplayOptions{}, func(m Message) {
		got = append(got, m)
	})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(got) != 2 || got[0].Seq != 1 || got[1].Seq != 3 {
		t.Fatalf("unexpected replay: %+v", got)
	}
	if string(got[0].Payload) != "keep-1" || string(got[1].Payload) != "keep-2" {
		t.Fatalf("unexpected payloads: %+v", got)
	}
}

func TestCommitEmptyBufferSurfacesEngineError(t *testing.T) {
	s := newTestService(t, cfgpkg.Default())
	if _, err := s.Commit(context.Background(), "orders"); !errors.Is(err, journal.ErrEmptyBuffer) {
		t.Fatalf("want ErrEmptyBuffer, got %v", err)
	}
}
