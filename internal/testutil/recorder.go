// Package testutil provides deterministic helpers for testing the harness
// itself.
package testutil

import (
	"fmt"
	"sync"
)

// Recorder is an in-memory fataltest.Reporter. Tests of the harness's
// reporting path use it in place of *testing.T so that expected verdict
// failures do not fail the real test.
//
// Thread-safety: all methods are safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	failures []string
	helper   int
}

// Helper counts Helper calls; it exists to satisfy the Reporter interface.
func (r *Recorder) Helper() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.helper++
}

// Errorf records a formatted failure.
func (r *Recorder) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

// Failures returns a copy of the recorded failures.
func (r *Recorder) Failures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.failures))
	copy(out, r.failures)
	return out
}

// Failed reports whether any failure was recorded.
func (r *Recorder) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.failures) > 0
}
