package journal

import (
	"context"
	"time"
)

// ReplayOptions controls pacing of a replay traversal.
type ReplayOptions struct {
	// SimulateTime pauses between consecutive transactions for roughly the
	// original inter-append gap, minus the time the visitor itself took.
	// Gaps that come out negative are treated as zero. No pause follows
	// the final transaction.
	SimulateTime bool
	// GapCap bounds a single simulated pause. Zero means uncapped.
	GapCap time.Duration
}

// Replay visits every committed payload once, in commit order. The
// traversal runs over a snapshot taken at call time, so a commit landing
// mid-replay is not observed. It is one-shot: run to completion or abandon
// it by cancelling ctx, which aborts between visits and mid-pause.
func (c *core[T]) Replay(ctx context.Context, visit func(data T), opts ReplayOptions) error {
	c.mu.RLock()
	if !c.open {
		c.mu.RUnlock()
		return ErrLogClosed
	}
	txns := c.snapshotTxns()
	c.mu.RUnlock()

	for i, txn := range txns {
		if err := ctx.Err(); err != nil {
			return err
		}
		visitStart := time.Now()
		visit(txn.Data)
		if !opts.SimulateTime || i == len(txns)-1 {
			continue
		}
		gap := txns[i+1].Time.Sub(txn.Time) - time.Since(visitStart)
		if gap <= 0 {
			continue
		}
		if opts.GapCap > 0 && gap > opts.GapCap {
			gap = opts.GapCap
		}
		timer := time.NewTimer(gap)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
