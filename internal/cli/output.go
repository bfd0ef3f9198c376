package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/epsilon/internal/diffop"
	"github.com/roach88/epsilon/internal/dual"
	"github.com/roach88/epsilon/internal/expr"
	"github.com/roach88/epsilon/internal/tuple"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // successful execution
	ExitFailure      = 1 // evaluation failure (arithmetic fault, failed checks)
	ExitCommandError = 2 // command error (bad arguments, missing files)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // exit code (ExitFailure or ExitCommandError)
	Message string // error message
	Err     error  // underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
}

// Response is the standard JSON envelope for CLI output.
type Response struct {
	Status string         `json:"status"` // "ok" or "error"
	Data   any            `json:"data,omitempty"`
	Error  *ResponseError `json:"error,omitempty"`
}

// ResponseError carries a machine-readable code and a message.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success outputs a successful result in the configured format.
// In text mode data is printed as-is.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{
			Status: "ok",
			Data:   data,
		})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{
			Status: "error",
			Error:  &ResponseError{Code: code, Message: message},
		})
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.Writer, format+"\n", args...)
}

// errorCode maps domain errors to their machine-readable codes for
// CLI output. Unclassified errors report as ERROR.
func errorCode(err error) string {
	var ae *dual.ArithmeticError
	if errors.As(err, &ae) {
		return string(ae.Code)
	}
	var se *tuple.ShapeError
	if errors.As(err, &se) {
		return string(se.Code)
	}
	var oe *diffop.OrderError
	if errors.As(err, &oe) {
		return string(oe.Code)
	}
	var pe *expr.ParseError
	if errors.As(err, &pe) {
		return string(pe.Code)
	}
	return "ERROR"
}

// evalFailure reports an evaluation error through the formatter and
// returns the matching ExitError so the process exits nonzero.
func evalFailure(f *OutputFormatter, err error) error {
	code := errorCode(err)
	if outErr := f.Error(code, err.Error()); outErr != nil {
		return outErr
	}
	exitCode := ExitFailure
	if code == "UNEXPECTED_TOKEN" || code == "UNKNOWN_FUNCTION" || code == "BAD_NUMBER" {
		exitCode = ExitCommandError
	}
	return &ExitError{Code: exitCode, Message: err.Error(), Err: err}
}
