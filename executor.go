package fataltest

import (
	"context"
	"log/slog"
	"time"
)

// executor runs exactly one candidate operation off the orchestrating
// goroutine. Isolation matters twice over: the operation may park forever in
// the never-return path, and a late real assertion in an abandoned worker
// must not take down the process.
type executor struct {
	logger *slog.Logger
	label  string // isolation-boundary name derived from the registration token
}

func newExecutor(logger *slog.Logger, label string) *executor {
	return &executor{logger: logger, label: label}
}

// runSync schedules op on an independent worker goroutine, then sleeps the
// full wall-clock timeout. There is no cancellation signal a plain func can
// observe; a worker still running at the deadline is simply abandoned.
//
// The timeout is the sole termination signal. An operation that returns
// early does not shorten the wait: the harness trades speed for a
// deterministic verdict window.
func (e *executor) runSync(op func(), timeout time.Duration) {
	go func() {
		defer e.guard()
		op()
	}()

	time.Sleep(timeout)
}

// runAsync schedules op as a cancellable task, sleeps the full timeout, then
// issues a cooperative cancellation. Cancellation is advisory: an operation
// already parked in a non-cancellable region ignores it and is abandoned.
//
// The cancel is issued only after the full wait, never earlier, so a late
// fulfillment inside the window is not missed.
func (e *executor) runAsync(op func(context.Context), timeout time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		defer e.guard()
		op(ctx)
	}()

	time.Sleep(timeout)
	cancel()
}

// guard keeps a panicking worker from aborting the test process. A worker
// that fires the real (uninstalled) assertion after teardown lands here.
func (e *executor) guard() {
	if rec := recover(); rec != nil {
		e.logger.Warn("worker panicked",
			"worker", e.label,
			"panic", rec,
		)
	}
}
