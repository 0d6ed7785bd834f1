package scenario

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fataltest"
)

// Scenario defines one conformance check against the verification harness.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Probe names the built-in candidate operation to execute.
	Probe string `yaml:"probe"`

	// Mode selects the execution path: "sync" or "async".
	// Defaults to the probe's natural mode.
	Mode string `yaml:"mode,omitempty"`

	// Timeout is the harness wall-clock budget as a Go duration string
	// (e.g. "100ms"). Defaults to one second.
	Timeout string `yaml:"timeout,omitempty"`

	// Expect is the verdict the harness must produce:
	// "satisfied", "unfulfilled" or "overfulfilled".
	Expect string `yaml:"expect"`

	// MessageContains, when set, requires every observed failure message to
	// contain this substring. A mismatch is a validation failure distinct
	// from the verdict check.
	MessageContains string `yaml:"message_contains,omitempty"`

	// Resolved during validation.
	timeout time.Duration
	expect  fataltest.Verdict
}

// Execution modes.
const (
	ModeSync  = "sync"
	ModeAsync = "async"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields,
// missing required fields, unknown probes and malformed durations are all
// load errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:".
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &sc, nil
}

// validate checks required fields and resolves the timeout, mode and
// expected verdict.
func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Probe == "" {
		return fmt.Errorf("probe is required")
	}

	probe, ok := Lookup(s.Probe)
	if !ok {
		return fmt.Errorf("unknown probe %q (known probes: %v)", s.Probe, Names())
	}

	if s.Mode == "" {
		s.Mode = probe.defaultMode()
	}
	switch s.Mode {
	case ModeSync:
		if probe.Sync == nil {
			return fmt.Errorf("probe %q does not support sync mode", s.Probe)
		}
	case ModeAsync:
		if probe.Async == nil {
			return fmt.Errorf("probe %q does not support async mode", s.Probe)
		}
	default:
		return fmt.Errorf("invalid mode %q: must be %q or %q", s.Mode, ModeSync, ModeAsync)
	}

	if s.Expect == "" {
		return fmt.Errorf("expect is required")
	}
	expect, err := fataltest.ParseVerdict(s.Expect)
	if err != nil {
		return fmt.Errorf("invalid expect: %w", err)
	}
	s.expect = expect

	s.timeout = time.Second
	if s.Timeout != "" {
		d, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", s.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %q", s.Timeout)
		}
		s.timeout = d
	}

	return nil
}
