package journal

import (
	"fmt"
	"sync"

	"github.com/tidwall/btree"

	"github.com/rzbill/reel/pkg/clock"
)

// txnEntry pairs a transaction with its assigned global sequence ID inside
// the committed index.
type txnEntry[T any] struct {
	seq uint64
	txn Transaction[T]
}

func newTxnTree[T any]() *btree.BTreeG[txnEntry[T]] {
	return btree.NewBTreeG(func(a, b txnEntry[T]) bool { return a.seq < b.seq })
}

// core holds the state shared by both engine variants: the open flag, the
// committed-transaction index, and the dense transaction numbering.
type core[T any] struct {
	mu      sync.RWMutex
	open    bool
	txns    *btree.BTreeG[txnEntry[T]]
	lastTxn uint64
	clock   clock.Clock
	hooks   Hooks[T]
}

func newCore[T any](s settings[T]) core[T] {
	return core[T]{
		txns:  newTxnTree[T](),
		clock: s.clock,
		hooks: s.hooks,
	}
}

// settings collects construction options shared by both variants.
type settings[T any] struct {
	clock clock.Clock
	hooks Hooks[T]
}

func applyOptions[T any](opts []Option[T]) settings[T] {
	s := settings[T]{clock: clock.System()}
	for _, opt := range opts {
		opt(&s)
	}
	if s.clock == nil {
		s.clock = clock.System()
	}
	return s
}

// Option configures a Log or SimpleLog at construction time.
type Option[T any] func(*settings[T])

// WithClock overrides the timestamp source, mainly for tests.
func WithClock[T any](c clock.Clock) Option[T] {
	return func(s *settings[T]) { s.clock = c }
}

// WithHooks installs the lifecycle callbacks.
func WithHooks[T any](h Hooks[T]) Option[T] {
	return func(s *settings[T]) { s.hooks = h }
}

// IsOpen reports the current open flag. Legal in any state.
func (c *core[T]) IsOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.open
}

// Open transitions Closed -> Open and fires OnOpen.
func (c *core[T]) Open() error {
	c.mu.Lock()
	if c.open {
		c.mu.Unlock()
		return ErrAlreadyOpen
	}
	c.open = true
	c.mu.Unlock()
	if c.hooks.OnOpen != nil {
		c.hooks.OnOpen()
	}
	return nil
}

// Close transitions Open -> Closed and fires OnClose.
func (c *core[T]) Close() error {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return ErrAlreadyClosed
	}
	c.open = false
	c.mu.Unlock()
	if c.hooks.OnClose != nil {
		c.hooks.OnClose()
	}
	return nil
}

// clear resets the committed-transaction index while Closed, running the
// variant-specific reset under the same lock, then fires OnClear. Sequence
// numbering restarts at 1 on the next write.
func (c *core[T]) clear(reset func()) error {
	c.mu.Lock()
	if c.open {
		c.mu.Unlock()
		return ErrLogOpen
	}
	c.txns = newTxnTree[T]()
	c.lastTxn = 0
	if reset != nil {
		reset()
	}
	c.mu.Unlock()
	if c.hooks.OnClear != nil {
		c.hooks.OnClear()
	}
	return nil
}

// CountTransactions returns the committed-transaction count. The buffer is
// excluded by construction: buffered entries carry no sequence ID.
func (c *core[T]) CountTransactions() (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.open {
		return 0, ErrLogClosed
	}
	return c.lastTxn, nil
}

// SeqRangeTransactions returns committed transactions with global ID in
// [start, finish] in ID order. finish 0 means end-of-log, and a finish
// past the end clamps silently. A start past the end yields an empty
// result rather than an error.
func (c *core[T]) SeqRangeTransactions(start, finish uint64) ([]Transaction[T], error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.open {
		return nil, ErrLogClosed
	}
	return c.rangeTxnsLocked(start, finish)
}

func (c *core[T]) rangeTxnsLocked(start, finish uint64) ([]Transaction[T], error) {
	if start < 1 {
		return nil, fmt.Errorf("%w: start %d", ErrInvalidSequenceID, start)
	}
	if finish == 0 || finish > c.lastTxn {
		finish = c.lastTxn
	}
	out := []Transaction[T]{}
	c.txns.Ascend(txnEntry[T]{seq: start}, func(e txnEntry[T]) bool {
		if e.seq > finish {
			return false
		}
		out = append(out, e.txn)
		return true
	})
	return out, nil
}

// snapshotTxns copies every committed transaction in ID order.
func (c *core[T]) snapshotTxns() []Transaction[T] {
	out := make([]Transaction[T], 0, c.txns.Len())
	c.txns.Ascend(txnEntry[T]{seq: 1}, func(e txnEntry[T]) bool {
		out = append(out, e.txn)
		return true
	})
	return out
}
