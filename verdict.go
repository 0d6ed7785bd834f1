package fataltest

import "fmt"

// Verdict classifies one harness invocation by its fulfillment count.
type Verdict int

const (
	// VerdictUnfulfilled means the failure path never fired within the
	// timeout (count == 0).
	VerdictUnfulfilled Verdict = iota

	// VerdictSatisfied means the failure path fired exactly once (count == 1).
	VerdictSatisfied

	// VerdictOverfulfilled means the failure path fired more than once
	// (count > 1).
	VerdictOverfulfilled
)

// String returns the lowercase name used in reports, scenario files and the
// run journal.
func (v Verdict) String() string {
	switch v {
	case VerdictUnfulfilled:
		return "unfulfilled"
	case VerdictSatisfied:
		return "satisfied"
	case VerdictOverfulfilled:
		return "overfulfilled"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// ParseVerdict converts a verdict name back to a Verdict.
func ParseVerdict(s string) (Verdict, error) {
	switch s {
	case "unfulfilled":
		return VerdictUnfulfilled, nil
	case "satisfied":
		return VerdictSatisfied, nil
	case "overfulfilled":
		return VerdictOverfulfilled, nil
	default:
		return 0, fmt.Errorf("unknown verdict %q", s)
	}
}

// classify derives the verdict from a final fulfillment count.
func classify(count int64) Verdict {
	switch {
	case count == 0:
		return VerdictUnfulfilled
	case count == 1:
		return VerdictSatisfied
	default:
		return VerdictOverfulfilled
	}
}
