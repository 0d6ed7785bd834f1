// Package fataltest verifies that code under test dies in a fatal runtime
// assertion instead of returning normally.
//
// A fatal assertion never returns control to its caller, so it cannot be
// tested with ordinary control flow: the test process would abort. fataltest
// intercepts the failure path of the precondition package, runs the
// candidate operation on an isolated worker goroutine under a fixed
// wall-clock timeout, counts how many times the failure path fired, and
// reports a verdict.
//
//	func TestNegativeBalanceRejected(t *testing.T) {
//	    fataltest.VerifyPrecondition(t, func() {
//	        account.Withdraw(-1)
//	    }, fataltest.WithTimeout(time.Second))
//	}
//
// The verdict is satisfied when the failure path fired exactly once within
// the timeout. Zero firings and multiple firings are both reported as test
// failures, via the Reporter (usually *testing.T) and on the returned
// Report. Failures are recorded, never thrown.
//
// # Determinism over speed
//
// The harness always waits out the full timeout before teardown. There is no
// early short-circuit when the operation returns quickly: the only
// termination signal is the timeout, which keeps the verdict window
// deterministic.
//
// # Abandoned workers
//
// A worker parked in the never-return path cannot be joined; the harness
// abandons it after teardown. This is an accepted, bounded resource cost of
// the isolation strategy, not a leak to be fixed. One harness invocation may
// be active at a time; concurrent invocations must be serialized by the
// caller because the interception registry has a single slot.
package fataltest
