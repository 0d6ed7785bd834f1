package fataltest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/roach88/fataltest/precondition"
)

// Reporter is the test-reporting collaborator. *testing.T satisfies it.
//
// Verdict failures are delivered through Errorf so that a failed
// verification marks the test failed without halting it; the harness never
// throws.
type Reporter interface {
	Helper()
	Errorf(format string, args ...any)
}

// Report is the recorded outcome of one harness invocation.
type Report struct {
	// Verdict classifies the invocation by fulfillment count.
	Verdict Verdict

	// Fulfillments is the final counter value observed at teardown.
	Fulfillments int64

	// Message is the caller-supplied context for failure attribution.
	Message string

	// File and Line identify the verification call site.
	File string
	Line int

	// Failures lists every recorded failure: the verdict diagnostic when
	// the verdict is not satisfied, plus one entry per validation mismatch.
	Failures []string
}

// Satisfied reports whether the failure path fired exactly once and no
// validation mismatch was recorded.
func (r *Report) Satisfied() bool {
	return r.Verdict == VerdictSatisfied && len(r.Failures) == 0
}

// config holds per-invocation settings.
type config struct {
	timeout  time.Duration
	message  string
	validate func(message string) error
	logger   *slog.Logger
}

// Option configures a single harness invocation.
type Option func(*config)

// WithTimeout sets the wall-clock budget the harness waits before teardown.
// The default is one second. The harness always waits the full duration.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithMessage supplies a context message attached to reported failures.
func WithMessage(msg string) Option {
	return func(c *config) { c.message = msg }
}

// WithValidation supplies a callback invoked with the failure message before
// each fulfillment is counted. A non-nil error is recorded as a distinct
// failure, in addition to the fulfillment-count verdict.
func WithValidation(fn func(message string) error) Option {
	return func(c *config) { c.validate = fn }
}

// WithLogger sets the logger for harness diagnostics (state transitions,
// recovered worker panics). The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

func newConfig(opts []Option) *config {
	cfg := &config{
		timeout: time.Second,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// phase is the harness invocation state machine. Transitions are strictly
// ordered: install precedes launch, launch precedes the wait, teardown
// follows the full wait, and the verdict read follows teardown.
type phase int

const (
	phaseIdle phase = iota
	phaseInstalled
	phaseRunning
	phaseTornDown
	phaseVerdicted
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseInstalled:
		return "installed"
	case phaseRunning:
		return "running"
	case phaseTornDown:
		return "torn_down"
	case phaseVerdicted:
		return "verdicted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// VerifyPrecondition runs operation on an isolated worker goroutine and
// verifies that the precondition failure path fires exactly once within the
// timeout.
//
// r may be nil, in which case failures are only recorded on the returned
// Report. A single invocation makes exactly one attempt; callers repeat the
// whole invocation if they need another trial.
func VerifyPrecondition(r Reporter, operation func(), opts ...Option) *Report {
	if r != nil {
		r.Helper()
	}
	return verify(r, callSite(1), opts, func(exec *executor, timeout time.Duration) {
		exec.runSync(operation, timeout)
	})
}

// VerifyPreconditionAsync is VerifyPrecondition for operations that take a
// context. After the full timeout the context is cancelled; cancellation is
// cooperative and may be ignored by an operation already parked in a
// non-cancellable region.
func VerifyPreconditionAsync(r Reporter, operation func(context.Context), opts ...Option) *Report {
	if r != nil {
		r.Helper()
	}
	return verify(r, callSite(1), opts, func(exec *executor, timeout time.Duration) {
		exec.runAsync(operation, timeout)
	})
}

// verify is the shared orchestration: install interception, launch the
// operation, wait out the timeout, tear down, classify.
func verify(r Reporter, site precondition.Location, opts []Option, run func(*executor, time.Duration)) *Report {
	cfg := newConfig(opts)

	count := &counter{}

	// Validation mismatches are recorded from the worker goroutine and read
	// after teardown; same boundary semantics as the counter.
	var mu sync.Mutex
	var validationFailures []string

	handler := func(condition func() bool, message func() string, loc precondition.Location) {
		if condition() {
			return
		}
		msg := message()
		if cfg.validate != nil {
			if err := cfg.validate(msg); err != nil {
				mu.Lock()
				validationFailures = append(validationFailures,
					fmt.Sprintf("validation: %v (assertion at %s)", err, loc))
				mu.Unlock()
			}
		}
		count.increment()
	}

	// Idle -> Installed
	token := precondition.Install(handler)
	cfg.logger.Debug("harness transition", "phase", phaseInstalled.String(), "token", token.ID())

	// Installed -> Running
	exec := newExecutor(cfg.logger, token.Label())
	cfg.logger.Debug("harness transition", "phase", phaseRunning.String(), "timeout", cfg.timeout)
	run(exec, cfg.timeout)

	// Running -> TornDown. Removal happens only after the full wait; an
	// increment racing this boundary may or may not be counted, which is
	// documented nondeterminism rather than a defect.
	token.Remove()
	cfg.logger.Debug("harness transition", "phase", phaseTornDown.String())

	// TornDown -> Verdicted
	final := count.read()
	verdict := classify(final)
	cfg.logger.Debug("harness transition",
		"phase", phaseVerdicted.String(),
		"verdict", verdict.String(),
		"fulfillments", final,
	)

	report := &Report{
		Verdict:      verdict,
		Fulfillments: final,
		Message:      cfg.message,
		File:         site.File,
		Line:         site.Line,
	}

	switch verdict {
	case VerdictUnfulfilled:
		report.Failures = append(report.Failures, "precondition was never triggered")
	case VerdictOverfulfilled:
		report.Failures = append(report.Failures,
			fmt.Sprintf("precondition was triggered %d times, expected exactly once", final))
	}

	mu.Lock()
	report.Failures = append(report.Failures, validationFailures...)
	mu.Unlock()

	if r != nil {
		for _, failure := range report.Failures {
			if report.Message != "" {
				r.Errorf("%s: %s (%s:%d)", report.Message, failure, report.File, report.Line)
			} else {
				r.Errorf("%s (%s:%d)", failure, report.File, report.Line)
			}
		}
	}

	return report
}

// callSite captures the verification call site for failure attribution.
func callSite(skip int) precondition.Location {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return precondition.Location{File: "unknown", Line: 0}
	}
	return precondition.Location{File: file, Line: line}
}
