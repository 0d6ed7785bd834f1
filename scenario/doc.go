// Package scenario runs conformance scenarios against the fataltest
// verification harness.
//
// A scenario names a built-in probe (a candidate operation with a known
// assertion behavior), a timeout, and the verdict the harness is expected to
// produce. Scenarios are the executable contract for the interception
// machinery: running them on a new platform or after a refactor verifies
// that installed handlers observe fulfillments, that teardown restores the
// registry, and that the verdict classification holds.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: trigger_once
//	description: "A single failed precondition satisfies the harness"
//	probe: trigger-once
//	mode: sync
//	timeout: 100ms
//	expect: satisfied
//	message_contains: positive
//
// Unknown fields are rejected to catch typos. The probe must be one of the
// built-ins listed by Names.
//
// # Deterministic Traces
//
// Each run records a trace (install, launch, fulfillment, teardown,
// verdict) stamped by a deterministic logical clock, so the same scenario
// produces byte-identical canonical JSON across runs. RunWithGolden compares
// that trace against a golden file; regenerate with:
//
//	go test ./scenario -update
package scenario
