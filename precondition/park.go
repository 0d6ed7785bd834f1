package precondition

// neverReturn parks the calling goroutine forever.
//
// The real assertion never returns control to its caller; interception must
// reproduce that exact dead end or code under test could proceed past a
// "failed" assertion as if it had survived. An empty select blocks without
// spinning and has no exit condition. Cancellation is ignored on purpose:
// the only way out is abandoning the goroutine, which the harness accepts
// as a bounded, test-scoped resource cost.
func neverReturn() {
	select {}
}
