package testutil

import "sync/atomic"

// DeterministicClock is a monotonic logical clock for trace sequencing.
//
// Scenario runs stamp trace events with sequence numbers from this clock so
// that the same scenario produces byte-identical golden snapshots across
// runs. Safe for concurrent use; fulfillment events may be stamped from the
// worker goroutine while the orchestrator stamps lifecycle events.
type DeterministicClock struct {
	seq atomic.Int64
}

// NewDeterministicClock creates a clock starting at 0; the first Next
// returns 1.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{}
}

// Next increments and returns the next sequence number.
func (c *DeterministicClock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the latest issued sequence number without incrementing.
func (c *DeterministicClock) Current() int64 {
	return c.seq.Load()
}
