package journal

// SimpleLog is the immediate-commit variant: every Append is assigned the
// next global transaction ID on the spot. There is no buffer, no commit
// step, and OnCommit never fires. Everything else (state machine, counts,
// ranges, replay) behaves exactly as on Log.
type SimpleLog[T any] struct {
	core[T]
}

// NewSimple builds an immediate-commit journal. It starts Closed.
func NewSimple[T any](opts ...Option[T]) *SimpleLog[T] {
	return &SimpleLog[T]{core: newCore(applyOptions(opts))}
}

// Append stamps data with the current timestamp and commits it directly
// into the transaction sequence. Fires OnAppend.
func (s *SimpleLog[T]) Append(data T) error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrLogClosed
	}
	s.lastTxn++
	s.txns.Set(txnEntry[T]{seq: s.lastTxn, txn: Transaction[T]{Time: s.clock.Now(), Data: data}})
	s.mu.Unlock()
	if s.hooks.OnAppend != nil {
		s.hooks.OnAppend(data)
	}
	return nil
}

// Clear resets the transaction sequence while Closed.
func (s *SimpleLog[T]) Clear() error {
	return s.clear(nil)
}
