package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const passingScenario = `name: quadratic
expr: x^2 + 3*x + 1
cases:
  - at: 2
    want: 7
  - at: 2
    order: 2
    want: 2
`

const failingScenario = `name: wrong
expr: x^2
cases:
  - at: 3
    want: 5
`

func TestCheck_SingleFilePasses(t *testing.T) {
	path := writeScenarioFile(t, t.TempDir(), "quadratic.yaml", passingScenario)

	out, err := execute(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS quadratic (2 cases)")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestCheck_DirectoryWithFailure(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "a.yaml", passingScenario)
	writeScenarioFile(t, dir, "b.yaml", failingScenario)

	out, err := execute(t, "check", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "PASS quadratic")
	assert.Contains(t, out, "FAIL wrong")
	assert.Contains(t, out, "got 6, want 5")
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
}

func TestCheck_JSON(t *testing.T) {
	path := writeScenarioFile(t, t.TempDir(), "quadratic.yaml", passingScenario)

	out, err := execute(t, "check", path, "--format", "json")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, 1.0, data["passed"])
	assert.Equal(t, 0.0, data["failed"])
}

func TestCheck_MissingPath(t *testing.T) {
	_, err := execute(t, "check", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheck_InvalidScenario(t *testing.T) {
	path := writeScenarioFile(t, t.TempDir(), "bad.yaml", "name: bad\n")

	_, err := execute(t, "check", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheck_RecordsHistory(t *testing.T) {
	dir := t.TempDir()
	path := writeScenarioFile(t, dir, "quadratic.yaml", passingScenario)
	db := filepath.Join(dir, "runs.db")

	_, err := execute(t, "check", path, "--db", db)
	require.NoError(t, err)

	out, err := execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "quadratic")
	assert.Contains(t, out, "2/2 cases")
}

func TestHistory_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	out, err := execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
}

func TestHistory_JSONAndLimit(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")
	path := writeScenarioFile(t, dir, "quadratic.yaml", passingScenario)

	for i := 0; i < 3; i++ {
		_, err := execute(t, "check", path, "--db", db)
		require.NoError(t, err)
	}

	out, err := execute(t, "history", "--db", db, "--limit", "2", "--format", "json")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	entries := resp.Data.([]any)
	assert.Len(t, entries, 2)

	first := entries[0].(map[string]any)
	assert.Equal(t, "quadratic", first["scenario"])
	assert.Equal(t, true, first["passed"])
}
