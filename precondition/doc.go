// Package precondition provides fatal runtime assertions with an injectable
// interception point.
//
// Application code guards invariants with Precondition and marks unreachable
// branches with PreconditionFailure. When a guarded condition is false the
// failure path is fatal: it logs the message and panics, never returning
// control to the caller.
//
// The failure path can be intercepted. Installing a Handler replaces the
// fatal behavior process-wide, which is how the fataltest harness observes
// assertions without terminating the process:
//
//	token := precondition.Install(func(condition func() bool, message func() string, loc precondition.Location) {
//	    if !condition() {
//	        count.Add(1)
//	    }
//	})
//	defer token.Remove()
//
// At most one handler is active at a time. Install overwrites any prior
// handler (last-install-wins); callers must keep installations strictly
// nested and must not run intercepting harnesses concurrently.
//
// # Never-return semantics
//
// PreconditionFailure is documented to never return. Under interception the
// calling goroutine is parked forever after the handler fires, reproducing
// the dead-end control flow of the real assertion. Parked goroutines are
// abandoned; they are released only when the process exits.
//
// Precondition, by contrast, returns to its caller while a handler is
// installed. This is deliberate: it lets a harness observe a guarded
// condition failing more than once in straight-line code, which is reported
// as an over-fulfillment instead of silently masking the second violation.
package precondition
