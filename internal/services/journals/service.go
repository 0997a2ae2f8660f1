package journalsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rzbill/reel/internal/journal"
	"github.com/rzbill/reel/internal/runtime"
	logpkg "github.com/rzbill/reel/pkg/log"
)

// ErrPayloadTooLarge is returned when an append exceeds the configured
// payload limit.
var ErrPayloadTooLarge = errors.New("journals: payload too large")

// Message is a committed entry decorated with its global sequence ID.
type Message struct {
	Seq     uint64
	Time    time.Time
	Payload []byte
}

// Counts reports the committed collection sizes of one journal.
type Counts struct {
	Commits      uint64
	Transactions uint64
}

// Service provides append/commit/query/replay operations on named
// journals.
type Service struct {
	rt     *runtime.Runtime
	logger logpkg.Logger
}

// New returns a Service using a default logger.
func New(rt *runtime.Runtime) *Service {
	return NewWithLogger(rt, nil)
}

// NewWithLogger constructs the service with an injected logger.
func NewWithLogger(rt *runtime.Runtime, logger logpkg.Logger) *Service {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("journals"))
	}
	return &Service{rt: rt, logger: logger}
}

// Append stages payload on the named journal's buffer, creating the
// journal on first use. Payloads over the configured limit are rejected
// before touching the engine.
func (s *Service) Append(ctx context.Context, name string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if limit := s.rt.Config().JournalDefaults.PayloadMaxBytes; limit > 0 && len(payload) > limit {
		return fmt.Errorf("%w: %d > %d bytes", ErrPayloadTooLarge, len(payload), limit)
	}
	j, err := s.rt.EnsureJournal(name)
	if err != nil {
		return err
	}
	return j.Append(payload)
}

// Commit seals the named journal's buffer into a numbered commit.
func (s *Service) Commit(ctx context.Context, name string) (journal.Commit, error) {
	if err := ctx.Err(); err != nil {
		return journal.Commit{}, err
	}
	j, err := s.rt.EnsureJournal(name)
	if err != nil {
		return journal.Commit{}, err
	}
	c, err := j.Commit()
	if err != nil {
		return journal.Commit{}, err
	}
	s.logger.Info("commit sealed",
		logpkg.Str("journal", name),
		logpkg.Int("transactions", len(c.TransactionIDs)))
	return c, nil
}

// GetCounts returns the committed collection sizes of the named journal.
func (s *Service) GetCounts(ctx context.Context, name string) (Counts, error) {
	if err := ctx.Err(); err != nil {
		return Counts{}, err
	}
	j, err := s.rt.EnsureJournal(name)
	if err != nil {
		return Counts{}, err
	}
	commits, err := j.CountCommits()
	if err != nil {
		return Counts{}, err
	}
	txns, err := j.CountTransactions()
	if err != nil {
		return Counts{}, err
	}
	return Counts{Commits: commits, Transactions: txns}, nil
}

// RangeTransactions returns committed entries with sequence ID in
// [start, finish] (finish 0 meaning end-of-log), optionally narrowed by a
// CEL filter expression.
func (s *Service) RangeTransactions(ctx context.Context, name string, start, finish uint64, filter string) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := newCELFilter(filter)
	if err != nil {
		return nil, err
	}
	j, err := s.rt.EnsureJournal(name)
	if err != nil {
		return nil, err
	}
	txns, err := j.SeqRangeTransactions(start, finish)
	if err != nil {
		return nil, err
	}
	out := make([]Message, 0, len(txns))
	for i, txn := range txns {
		// IDs are dense, so positions map straight back to sequence IDs.
		seq := start + uint64(i)
		if !f.Eval(seq, txn.Time, txn.Data) {
			continue
		}
		out = append(out, Message{Seq: seq, Time: txn.Time, Payload: txn.Data})
	}
	return out, nil
}

// RangeCommits returns resolved commit records with ID in [start, finish]
// (finish 0 meaning end-of-log).
func (s *Service) RangeCommits(ctx context.Context, name string, start, finish uint64) ([]journal.CommitInfo[[]byte], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	j, err := s.rt.EnsureJournal(name)
	if err != nil {
		return nil, err
	}
	return j.SeqRangeCommits(start, finish)
}

// Replay visits every committed entry of the named journal in order,
// optionally paced to the original append timing and narrowed by a CEL
// filter. The configured replay gap cap applies when opts.GapCap is zero.
func (s *Service) Replay(ctx context.Context, name, filter string, opts journal.ReplayOptions, visit func(Message)) error {
	f, err := newCELFilter(filter)
	if err != nil {
		return err
	}
	j, err := s.rt.EnsureJournal(name)
	if err != nil {
		return err
	}
	if opts.GapCap == 0 {
		opts.GapCap = time.Duration(s.rt.Config().JournalDefaults.ReplayGapCapMs) * time.Millisecond
	}
	// Snapshot timestamps up front; replay itself only yields payloads.
	txns, err := j.SeqRangeTransactions(1, 0)
	if err != nil {
		return err
	}
	var seq uint64
	return j.Replay(ctx, func(payload []byte) {
		seq++
		var ts time.Time
		if int(seq) <= len(txns) {
			ts = txns[seq-1].Time
		}
		if !f.Eval(seq, ts, payload) {
			return
		}
		visit(Message{Seq: seq, Time: ts, Payload: payload})
	}, opts)
}
