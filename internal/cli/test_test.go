package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: %s
project:
  groups:
    - id: g
      notes:
        - {onset: 0, duration: 10, pitch: 60}
  tracks:
    - refs:
        - {group: g, onset: 0}
steps:
  - op: next
    position: 0
    expect: {onsets: [%d]}
`

func writeScenario(t *testing.T, dir, name string, want int) {
	t.Helper()
	body := []byte(fmt.Sprintf(passingScenario, name, want))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), body, 0o644))
}

func TestTestCommand_MissingArgs(t *testing.T) {
	_, err := execute(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommand_NonExistentScenariosDir(t *testing.T) {
	_, err := execute(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommand_EmptyDir(t *testing.T) {
	out, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")

	out, err = execute(t, "test", t.TempDir(), "--format", "json")
	require.NoError(t, err)
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestTestCommand_PassAndFail(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "good", 0)
	writeScenario(t, dir, "bad", 5)

	out, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✓ good")
	assert.Contains(t, out, "✗ bad")
	assert.Contains(t, out, "onsets = [0], want [5]")
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")

	out, err = execute(t, "test", dir, "--filter", "go*")
	require.NoError(t, err)
	assert.Contains(t, out, "All scenarios passed")
}

func TestTestCommand_JSONFailure(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "bad", 5)

	out, err := execute(t, "test", dir, "--format", "json")
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 1, resp.Data.Failed)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
}

func TestTestCommand_GoldenUpdateThenMatch(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "good", 0)

	out, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "golden updated")

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "good.golden"))
	require.NoError(t, err)
	assert.Equal(t,
		`{"scenario_name":"good","trace":[{"found":true,"onsets":[0],"op":"next","position":0,"step":0}]}`,
		string(golden))

	_, err = execute(t, "test", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "good.golden"), []byte("{}"), 0o644))
	out, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}

func TestFindScenarioFiles(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "alpha", 0)
	writeScenario(t, dir, "beta", 0)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	files, err := findScenarioFiles(dir, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	files, err = findScenarioFiles(dir, "a*")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "alpha.yaml", filepath.Base(files[0]))

	_, err = findScenarioFiles(dir, "[")
	assert.Error(t, err)
}

func TestRunTests_CommittedScenarios(t *testing.T) {
	out, err := execute(t, "test", "testdata/scenarios")
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ cli_song")
}
