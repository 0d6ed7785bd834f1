package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbes_Text(t *testing.T) {
	out, err := execute(t, "probes")
	require.NoError(t, err)

	assert.Contains(t, out, "trigger-once")
	assert.Contains(t, out, "halt")
	assert.Contains(t, out, "late-trigger")
}

func TestProbes_JSON(t *testing.T) {
	out, err := execute(t, "probes", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   []ProbeInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.NotEmpty(t, resp.Data)

	byName := map[string]ProbeInfo{}
	for _, p := range resp.Data {
		byName[p.Name] = p
	}
	assert.Equal(t, []string{"sync", "async"}, byName["trigger-once"].Modes)
	assert.Equal(t, []string{"async"}, byName["late-trigger"].Modes)
	assert.Equal(t, []string{"sync"}, byName["pass-through"].Modes)
	assert.NotEmpty(t, byName["halt"].Description)
}
