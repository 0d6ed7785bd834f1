package cli

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"

	"github.com/roach88/fataltest/scenario"
)

//go:embed schema.cue
var schemaCUE string

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeScanError    = "E002" // Directory scan error
	ErrCodeNoFiles      = "E003" // No scenario files found
	ErrCodeLoadFailed   = "E004" // Scenario load failed
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeSchemaFailed = "E006" // Scenario schema violation
	ErrCodeWriteFailed  = "E007" // File write error
	ErrCodeJournal      = "E008" // Journal open/record error
)

// LoadError represents an error that occurred during scenario loading.
type LoadError struct {
	Code    string
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadScenarioFile validates a scenario file against the embedded CUE
// schema and then decodes it. Schema violations are reported with CUE's
// position information before the stricter semantic checks (probe
// existence, mode support) run during decoding.
func LoadScenarioFile(path string) (*scenario.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: err.Error()}
	}

	if err := validateSchema(path, data); err != nil {
		return nil, err
	}

	sc, err := scenario.LoadScenario(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Path: path, Message: err.Error()}
	}
	return sc, nil
}

// validateSchema unifies the YAML document with #Scenario and requires a
// concrete result.
func validateSchema(path string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("compiling scenario schema: %v", err)}
	}
	scenarioSchema := schema.LookupPath(cue.ParsePath("#Scenario"))
	if err := scenarioSchema.Err(); err != nil {
		return &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("scenario schema missing #Scenario: %v", err)}
	}

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return &LoadError{Code: ErrCodeLoadFailed, Path: path, Message: fmt.Sprintf("parsing YAML: %v", err)}
	}

	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return &LoadError{Code: ErrCodeLoadFailed, Path: path, Message: fmt.Sprintf("building document: %v", err)}
	}

	unified := scenarioSchema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &LoadError{
			Code:    ErrCodeSchemaFailed,
			Path:    path,
			Message: cueerrors.Details(err, nil),
		}
	}

	return nil
}
