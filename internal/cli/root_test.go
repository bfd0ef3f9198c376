package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with the given arguments and captures
// combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// decodeResponse unmarshals a JSON-mode response envelope.
func decodeResponse(t *testing.T, out string) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, err := execute(t, "eval", "1+1", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"eval", "diff", "grad", "render", "check", "history"} {
		assert.Contains(t, names, want)
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
}

func TestParsePoint(t *testing.T) {
	bindings, err := ParsePoint("x=2, y=3.5")
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	assert.Equal(t, Binding{Name: "x", Value: 2}, bindings[0])
	assert.Equal(t, Binding{Name: "y", Value: 3.5}, bindings[1])
}

func TestParsePoint_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{name: "empty", spec: ""},
		{name: "missing value", spec: "x"},
		{name: "missing name", spec: "=2"},
		{name: "bad number", spec: "x=two"},
		{name: "duplicate", spec: "x=1,x=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePoint(tt.spec)
			assert.Error(t, err)
		})
	}
}
