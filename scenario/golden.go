package scenario

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/fataltest/internal/canon"
)

// Snapshot converts a result to the canonical-JSON form compared against
// golden files. Machine-dependent detail (call-site paths inside error
// messages) is deliberately excluded; the trace and verdict are fully
// deterministic.
func Snapshot(sc *Scenario, result *Result) ([]byte, error) {
	trace := make([]any, len(result.Trace))
	for i, ev := range result.Trace {
		trace[i] = map[string]any{
			"type":   ev.Type,
			"detail": ev.Detail,
			"seq":    ev.Seq,
		}
	}

	return canon.Marshal(map[string]any{
		"scenario_name": sc.Name,
		"pass":          result.Pass,
		"verdict":       result.Verdict,
		"fulfillments":  result.Fulfillments,
		"trace":         trace,
	})
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// Regenerate golden files with:
//
//	go test ./scenario -update
func RunWithGolden(t *testing.T, sc *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(sc)
	if err != nil {
		return nil, err
	}

	data, err := Snapshot(sc, result)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, sc.Name, data)

	return result, nil
}
