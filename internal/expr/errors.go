package expr

import (
	"errors"
	"fmt"
)

// ParseErrorCode categorizes parse failures.
type ParseErrorCode string

const (
	// ErrCodeUnexpectedToken indicates a token the grammar does not
	// allow at that position.
	ErrCodeUnexpectedToken ParseErrorCode = "UNEXPECTED_TOKEN"

	// ErrCodeUnknownFunction indicates a call of a function outside
	// the supported set.
	ErrCodeUnknownFunction ParseErrorCode = "UNKNOWN_FUNCTION"

	// ErrCodeBadNumber indicates a malformed numeric literal.
	ErrCodeBadNumber ParseErrorCode = "BAD_NUMBER"
)

// ParseError reports a failure to parse an expression, with the byte
// offset of the offending token.
type ParseError struct {
	// Code identifies the failure category.
	Code ParseErrorCode

	// Pos is the byte offset in the source.
	Pos int

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s (offset %d)", e.Code, e.Message, e.Pos)
}

// IsParseError reports whether err is any expression parse failure.
// Uses errors.As to handle wrapped errors.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
