package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval_Constant(t *testing.T) {
	out, err := execute(t, "eval", "2 + 3 * 4")
	require.NoError(t, err)
	assert.Equal(t, "14\n", out)
}

func TestEval_WithBindings(t *testing.T) {
	out, err := execute(t, "eval", "x^2 + 3*x + 1", "--at", "x=2")
	require.NoError(t, err)
	assert.Equal(t, "11\n", out)
}

func TestEval_JSON(t *testing.T) {
	out, err := execute(t, "eval", "x*y", "--at", "x=2,y=3", "--format", "json")
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "x*y", data["expr"])
	assert.Equal(t, 6.0, data["value"])
}

func TestEval_DivisionByZero(t *testing.T) {
	out, err := execute(t, "eval", "1 / x", "--at", "x=0")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "DIVISION_BY_ZERO")
}

func TestEval_ParseError(t *testing.T) {
	out, err := execute(t, "eval", "1 +")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "UNEXPECTED_TOKEN")
}

func TestEval_UnboundVariable(t *testing.T) {
	_, err := execute(t, "eval", "x + y", "--at", "x=1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "y")
}

func TestEval_BadPoint(t *testing.T) {
	_, err := execute(t, "eval", "x", "--at", "x=abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
