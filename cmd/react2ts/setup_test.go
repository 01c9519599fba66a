package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- JSON merge tests ---

func TestMergeServerEntry_EmptyFile(t *testing.T) {
	out, err := mergeServerEntry(nil, "mcpServers", serverEntry(nil, ""))
	require.NoError(t, err)
	require.NotNil(t, out)

	var config map[string]any
	require.NoError(t, json.Unmarshal(out, &config))

	servers := config["mcpServers"].(map[string]any)
	entry := servers["react2ts"].(map[string]any)
	assert.Equal(t, "react2ts", entry["command"])
	assert.Equal(t, []any{"serve"}, entry["args"])
}

func TestMergeServerEntry_ExistingServers(t *testing.T) {
	existing := []byte(`{
  "mcpServers": {
    "other-server": {
      "command": "other",
      "args": ["start"]
    }
  },
  "theme": "dark"
}`)
	out, err := mergeServerEntry(existing, "mcpServers", serverEntry(nil, "mcp.jsonl"))
	require.NoError(t, err)
	require.NotNil(t, out)

	var config map[string]any
	require.NoError(t, json.Unmarshal(out, &config))

	servers := config["mcpServers"].(map[string]any)
	assert.Contains(t, servers, "other-server")
	entry := servers["react2ts"].(map[string]any)
	assert.Equal(t, []any{"serve", "--log-file", "mcp.jsonl"}, entry["args"])
	assert.Equal(t, "dark", config["theme"])
}

func TestMergeServerEntry_AlreadyConfigured(t *testing.T) {
	existing := []byte(`{"servers": {"react2ts": {"command": "react2ts"}}}`)
	out, err := mergeServerEntry(existing, "servers", serverEntry(nil, ""))
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestMergeServerEntry_InvalidJSON(t *testing.T) {
	_, err := mergeServerEntry([]byte("{not json"), "mcpServers", serverEntry(nil, ""))
	assert.Error(t, err)
}

// --- target selection ---

func TestSelectTargets(t *testing.T) {
	dir := t.TempDir()

	targets, err := selectTargets(dir, nil)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "project", targets[0].ID)

	require.NoError(t, os.Mkdir(filepath.Join(dir, ".vscode"), 0o755))
	targets, err = selectTargets(dir, nil)
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, "vscode", targets[1].ID)

	targets, err = selectTargets(dir, []string{"cursor"})
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "cursor", targets[0].ID)

	_, err = selectTargets(dir, []string{"emacs"})
	assert.Error(t, err)
}

// --- orchestration ---

func TestRunSetup(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".vscode"), 0o755))

	var out bytes.Buffer
	require.NoError(t, runSetup(&out, setupOptions{dir: dir}))
	assert.Contains(t, out.String(), "+ Project (.mcp.json) configured")
	assert.Contains(t, out.String(), "+ VS Code configured")

	data, err := os.ReadFile(filepath.Join(dir, ".vscode", "mcp.json"))
	require.NoError(t, err)
	var config map[string]any
	require.NoError(t, json.Unmarshal(data, &config))
	entry := config["servers"].(map[string]any)["react2ts"].(map[string]any)
	assert.Equal(t, "stdio", entry["type"])

	out.Reset()
	require.NoError(t, runSetup(&out, setupOptions{dir: dir}))
	assert.Contains(t, out.String(), "already configured")
}

func TestRunSetupDryRun(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	require.NoError(t, runSetup(&out, setupOptions{dir: dir, targets: []string{"cursor"}, dryRun: true}))
	assert.Contains(t, out.String(), `"react2ts"`)
	assert.NoFileExists(t, filepath.Join(dir, ".cursor", "mcp.json"))
}
