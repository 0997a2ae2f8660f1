// Package clock provides the timestamp source used for journal records.
//
// # Overview
//
// Journal ordering depends on timestamps that never move backward, so the
// package hands out readings from Go's monotonic clock rather than raw wall
// time. System() is the production source; Manual is a hand-advanced clock
// for deterministic tests, following the same inject-the-time-source idiom
// used across the codebase.
//
// Quick start
//
//	c := clock.System()
//	t0 := c.Now()
//	// ... later ...
//	elapsed := c.Now().Sub(t0) // monotonic difference
package clock
