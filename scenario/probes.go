package scenario

import (
	"context"
	"sort"
	"time"

	"github.com/roach88/fataltest/precondition"
)

// Probe is a candidate operation with a known assertion behavior. Probes are
// the controlled inputs for conformance scenarios: each one exercises a
// specific path through the interception machinery.
type Probe struct {
	Name        string
	Description string

	// Sync is the plain variant, nil if unsupported.
	Sync func()

	// Async is the context-aware variant, nil if unsupported.
	Async func(ctx context.Context)
}

func (p Probe) defaultMode() string {
	if p.Sync != nil {
		return ModeSync
	}
	return ModeAsync
}

// lateTriggerDelay parks the late-trigger probe well past any sane scenario
// timeout before it would fire.
const lateTriggerDelay = 500 * time.Millisecond

// builtins is the probe registry, keyed by name.
var builtins = map[string]Probe{
	"trigger-once": {
		Name:        "trigger-once",
		Description: "fails a guarded condition exactly once",
		Sync: func() {
			precondition.Precondition(false, "x must be positive")
		},
		Async: func(ctx context.Context) {
			precondition.Precondition(false, "x must be positive")
		},
	},
	"no-op": {
		Name:        "no-op",
		Description: "returns normally without touching the failure path",
		Sync:        func() {},
		Async:       func(ctx context.Context) {},
	},
	"pass-through": {
		Name:        "pass-through",
		Description: "checks a condition that holds, so the failure path never fires",
		Sync: func() {
			precondition.Precondition(true, "x must be positive")
		},
	},
	"trigger-twice": {
		Name:        "trigger-twice",
		Description: "fails a guarded condition twice in straight-line code",
		Sync: func() {
			precondition.Precondition(false, "x must be positive")
			precondition.Precondition(false, "x must be positive")
		},
	},
	"halt": {
		Name:        "halt",
		Description: "hits an unconditional failure and parks; the worker is abandoned",
		Sync: func() {
			precondition.PreconditionFailure("entered unreachable branch")
		},
		Async: func(ctx context.Context) {
			precondition.PreconditionFailure("entered unreachable branch")
		},
	},
	"late-trigger": {
		Name:        "late-trigger",
		Description: "waits past the verdict window, honoring cancellation instead of firing late",
		Async: func(ctx context.Context) {
			select {
			case <-ctx.Done():
				return
			case <-time.After(lateTriggerDelay):
				precondition.Precondition(false, "x must be positive")
			}
		},
	},
}

// Lookup returns the named built-in probe.
func Lookup(name string) (Probe, bool) {
	p, ok := builtins[name]
	return p, ok
}

// Names returns the built-in probe names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
