package precondition

import (
	"fmt"
	"log/slog"
	"runtime"
)

// Location identifies the call site of an assertion for attribution.
type Location struct {
	File string
	Line int
}

// String formats the location as "file:line".
func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// callerLocation captures the caller's file and line. skip counts stack
// frames above callerLocation itself, matching runtime.Caller.
func callerLocation(skip int) Location {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{File: "unknown", Line: 0}
	}
	return Location{File: file, Line: line}
}

// Precondition checks that a guarded condition holds. If cond is false the
// failure path fires: with a handler installed the handler observes the
// failure, otherwise the message is logged and the goroutine panics.
//
// The message is formatted lazily, only when the failure path fires.
func Precondition(cond bool, format string, args ...any) {
	loc := callerLocation(1)
	Dispatch(
		func() bool { return cond },
		func() string { return fmt.Sprintf(format, args...) },
		loc,
	)
}

// PreconditionFailure unconditionally fires the failure path. It never
// returns: with a handler installed the calling goroutine is parked forever
// after the handler observes the failure, otherwise the message is logged
// and the goroutine panics.
func PreconditionFailure(format string, args ...any) {
	loc := callerLocation(1)
	DispatchFailure(
		func() string { return fmt.Sprintf(format, args...) },
		loc,
	)
}

// Dispatch is the conditional entry point into the failure path. It is the
// seam between application assertions and the interception registry: with a
// handler installed the handler takes over entirely (including evaluating
// the condition), otherwise the default fatal behavior applies when the
// condition is false.
func Dispatch(condition func() bool, message func() string, loc Location) {
	if h := defaultRegistry.current(); h != nil {
		h(condition, message, loc)
		return
	}

	if condition() {
		return
	}
	fatal(message(), loc)
}

// DispatchFailure is the unconditional entry point into the failure path.
// It never returns. Under interception the handler observes a false
// condition and the goroutine is then parked forever; the park ignores all
// cancellation, so the worker can only be abandoned.
func DispatchFailure(message func() string, loc Location) {
	if h := defaultRegistry.current(); h != nil {
		h(func() bool { return false }, message, loc)
		neverReturn()
	}

	fatal(message(), loc)
}

// fatal is the real, uninterception failure behavior: log then panic.
// Panicking rather than exiting keeps the failure observable by callers
// that guard worker goroutines with recover.
func fatal(msg string, loc Location) {
	slog.Error("precondition failed",
		"message", msg,
		"location", loc.String(),
	)
	panic(fmt.Sprintf("precondition failed: %s (%s)", msg, loc))
}
