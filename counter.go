package fataltest

import "sync/atomic"

// counter is the fulfillment counter for one harness invocation.
//
// The interception handler increments it from the worker goroutine while
// the orchestrating goroutine later reads it; atomic operations are the
// only synchronization the pair needs.
//
// The value only increases during the invocation's active window and is
// never decremented. Each invocation owns a fresh counter.
type counter struct {
	n atomic.Int64
}

// increment atomically adds one fulfillment.
func (c *counter) increment() {
	c.n.Add(1)
}

// read returns an atomic snapshot of the count. Never blocks, never
// negative.
func (c *counter) read() int64 {
	return c.n.Load()
}
