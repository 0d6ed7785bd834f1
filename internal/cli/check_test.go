package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fataltest/internal/journal"
)

const passingScenario = `
name: trigger_once
description: "positive argument check fires once"
probe: trigger-once
mode: sync
timeout: 60ms
expect: satisfied
`

const failingScenario = `
name: wrong_expect
description: "no-op cannot produce a satisfied verdict"
probe: no-op
timeout: 60ms
expect: satisfied
`

func setupScenariosDir(t *testing.T, scenarios map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range scenarios {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCheck_AllPass(t *testing.T) {
	dir := setupScenariosDir(t, map[string]string{"trigger_once.yaml": passingScenario})

	out, err := execute(t, "check", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ trigger_once")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestCheck_FailureSetsExitCode(t *testing.T) {
	dir := setupScenariosDir(t, map[string]string{
		"trigger_once.yaml": passingScenario,
		"wrong_expect.yaml": failingScenario,
	})

	out, err := execute(t, "check", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong_expect")
	assert.Contains(t, out, "expected verdict satisfied")
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
}

func TestCheck_MissingDirIsCommandError(t *testing.T) {
	_, err := execute(t, "check", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheck_EmptyDir(t *testing.T) {
	out, err := execute(t, "check", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestCheck_FilterSelectsByName(t *testing.T) {
	dir := setupScenariosDir(t, map[string]string{
		"trigger_once.yaml": passingScenario,
		"wrong_expect.yaml": failingScenario,
	})

	out, err := execute(t, "check", dir, "--filter", "trigger_*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestCheck_JSONOutput(t *testing.T) {
	dir := setupScenariosDir(t, map[string]string{"trigger_once.yaml": passingScenario})

	out, err := execute(t, "check", dir, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestCheck_JSONOutputOnFailure(t *testing.T) {
	dir := setupScenariosDir(t, map[string]string{"wrong_expect.yaml": failingScenario})

	out, err := execute(t, "check", dir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_CHECK_FAILED", resp.Error.Code)
}

func TestCheck_UpdateWritesGoldenThenMatches(t *testing.T) {
	dir := setupScenariosDir(t, map[string]string{"trigger_once.yaml": passingScenario})

	out, err := execute(t, "check", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "golden updated")

	goldenPath := filepath.Join(dir, "golden", "trigger_once.golden")
	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name":"trigger_once"`)

	// A second run without --update must match the fresh golden file.
	out, err = execute(t, "check", dir, "--filter", "trigger_once")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ trigger_once")
}

func TestCheck_StaleGoldenFails(t *testing.T) {
	dir := setupScenariosDir(t, map[string]string{"trigger_once.yaml": passingScenario})

	goldenDir := filepath.Join(dir, "golden")
	require.NoError(t, os.MkdirAll(goldenDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(goldenDir, "trigger_once.golden"), []byte(`{"stale":true}`), 0o644))

	out, err := execute(t, "check", dir, "--filter", "trigger_once")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "does not match golden file")
}

func TestCheck_RecordsToJournal(t *testing.T) {
	dir := setupScenariosDir(t, map[string]string{
		"trigger_once.yaml": passingScenario,
		"wrong_expect.yaml": failingScenario,
	})
	journalPath := filepath.Join(t.TempDir(), "runs.db")

	_, err := execute(t, "check", dir, "--journal", journalPath)
	require.Error(t, err, "one scenario fails")

	jnl, err := journal.Open(journalPath)
	require.NoError(t, err)
	defer jnl.Close()

	entries, err := jnl.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := map[string]journal.Entry{}
	for _, e := range entries {
		byName[e.Scenario] = e
	}
	assert.True(t, byName["trigger_once"].Pass)
	assert.Equal(t, "satisfied", byName["trigger_once"].Verdict)
	assert.False(t, byName["wrong_expect"].Pass)
	assert.Equal(t, "unfulfilled", byName["wrong_expect"].Verdict)
}

func TestCheck_LoadErrorIsScenarioFailure(t *testing.T) {
	dir := setupScenariosDir(t, map[string]string{
		"broken.yaml": "name: broken\nprobe: no-op\nexpect: maybe\n",
	})

	out, err := execute(t, "check", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Load error")
}
