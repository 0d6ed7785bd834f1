package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenarioFile_Valid(t *testing.T) {
	path := writeScenarioFile(t, "ok.yaml", `
name: trigger_once
description: "positive argument check fires once"
probe: trigger-once
mode: sync
timeout: 80ms
expect: satisfied
`)
	sc, err := LoadScenarioFile(path)
	require.NoError(t, err)
	assert.Equal(t, "trigger_once", sc.Name)
	assert.Equal(t, "trigger-once", sc.Probe)
}

func TestLoadScenarioFile_NotFound(t *testing.T) {
	_, err := LoadScenarioFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)
}

func TestLoadScenarioFile_SchemaRejectsBadVerdict(t *testing.T) {
	path := writeScenarioFile(t, "bad.yaml", `
name: bad_verdict
description: "verdict outside the enum"
probe: no-op
expect: maybe
`)
	_, err := LoadScenarioFile(path)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeSchemaFailed, loadErr.Code)
}

func TestLoadScenarioFile_SchemaRejectsBadName(t *testing.T) {
	path := writeScenarioFile(t, "bad_name.yaml", `
name: "Has Spaces"
description: "names must be lower snake case"
probe: no-op
expect: unfulfilled
`)
	_, err := LoadScenarioFile(path)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeSchemaFailed, loadErr.Code)
}

func TestLoadScenarioFile_SchemaRejectsMissingDescription(t *testing.T) {
	path := writeScenarioFile(t, "no_desc.yaml", `
name: no_desc
probe: no-op
expect: unfulfilled
`)
	_, err := LoadScenarioFile(path)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeSchemaFailed, loadErr.Code)
}

func TestLoadScenarioFile_SemanticErrorAfterSchema(t *testing.T) {
	// Schema accepts any probe string; the decoder rejects unknown probes.
	path := writeScenarioFile(t, "ghost.yaml", `
name: ghost_probe
description: "probe passes the schema but does not exist"
probe: ghost
expect: satisfied
`)
	_, err := LoadScenarioFile(path)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeLoadFailed, loadErr.Code)
	assert.Contains(t, loadErr.Message, "unknown probe")
}
