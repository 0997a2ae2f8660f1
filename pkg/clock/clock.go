package clock

import (
	"sync"
	"time"
)

// Clock supplies timestamps for journal records. Implementations must be
// safe for concurrent use and must never yield a reading that sorts before
// an earlier one from the same instance.
type Clock interface {
	Now() time.Time
}

// System returns a Clock backed by the process monotonic clock. Readings
// carry Go's monotonic component, so differences are immune to wall-clock
// adjustments and have sub-millisecond resolution.
func System() Clock { return systemClock{} }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Manual is a hand-advanced Clock for tests. It never ticks on its own;
// callers move it forward with Advance. A zero Manual starts at the Unix
// epoch; use NewManual to pick a different origin.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock positioned at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the clock's current position.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d. Negative values are ignored so the
// clock keeps its monotonic contract even under misuse.
func (m *Manual) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
