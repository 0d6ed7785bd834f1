package scenario

import (
	"fmt"
	"strings"
	"sync"

	"github.com/roach88/fataltest"
	"github.com/roach88/fataltest/internal/testutil"
)

// Trace event types, in lifecycle order.
const (
	EventInstall     = "install"
	EventLaunch      = "launch"
	EventFulfillment = "fulfillment"
	EventTeardown    = "teardown"
	EventVerdict     = "verdict"
)

// TraceEvent is one step in a scenario run's lifecycle trace.
type TraceEvent struct {
	Type   string `json:"type"`
	Detail string `json:"detail"`
	Seq    int64  `json:"seq"`
}

// Result is the outcome of one scenario run. Failures are recorded, never
// thrown.
type Result struct {
	// Pass is true when the observed verdict matches the expectation and no
	// validation failure was recorded.
	Pass bool `json:"pass"`

	// Verdict is the harness's observed verdict.
	Verdict string `json:"verdict"`

	// Fulfillments is the final counter value.
	Fulfillments int64 `json:"fulfillments"`

	// Trace lists the lifecycle events in order, for golden comparison.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// AddError records a failure and marks the result failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// Run executes the scenario's probe through the verification harness and
// evaluates the expected verdict.
//
// The returned error covers execution problems (unknown probe); expectation
// mismatches are recorded on the Result instead.
func Run(sc *Scenario) (*Result, error) {
	probe, ok := Lookup(sc.Probe)
	if !ok {
		return nil, fmt.Errorf("unknown probe %q", sc.Probe)
	}

	clock := testutil.NewDeterministicClock()
	result := &Result{Pass: true, Trace: []TraceEvent{}}

	// Fulfillment events are stamped from the worker goroutine while the
	// orchestrator owns the lifecycle events; the mutex covers the shared
	// trace slice.
	var mu sync.Mutex
	addEvent := func(typ, detail string) {
		mu.Lock()
		defer mu.Unlock()
		result.Trace = append(result.Trace, TraceEvent{Type: typ, Detail: detail, Seq: clock.Next()})
	}

	validate := func(message string) error {
		addEvent(EventFulfillment, message)
		if sc.MessageContains != "" && !strings.Contains(message, sc.MessageContains) {
			return fmt.Errorf("message %q does not contain %q", message, sc.MessageContains)
		}
		return nil
	}

	opts := []fataltest.Option{
		fataltest.WithTimeout(sc.timeout),
		fataltest.WithMessage(sc.Name),
		fataltest.WithValidation(validate),
	}

	addEvent(EventInstall, "handler installed")
	addEvent(EventLaunch, sc.Mode)

	var report *fataltest.Report
	switch sc.Mode {
	case ModeAsync:
		report = fataltest.VerifyPreconditionAsync(nil, probe.Async, opts...)
	default:
		report = fataltest.VerifyPrecondition(nil, probe.Sync, opts...)
	}

	addEvent(EventTeardown, "handler removed")
	addEvent(EventVerdict, report.Verdict.String())

	result.Verdict = report.Verdict.String()
	result.Fulfillments = report.Fulfillments

	if report.Verdict != sc.expect {
		result.AddError(fmt.Sprintf(
			"expected verdict %s, got %s (%d fulfillments)",
			sc.expect, report.Verdict, report.Fulfillments,
		))
	}

	// Verdict diagnostics are expected when the scenario expects a failing
	// verdict; only validation mismatches carry over as errors.
	for _, failure := range report.Failures {
		if strings.HasPrefix(failure, "validation:") {
			result.AddError(failure)
		}
	}

	return result, nil
}
