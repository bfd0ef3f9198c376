package tuple

import (
	"errors"
	"fmt"
)

// ShapeErrorCode categorizes tuple shape faults.
type ShapeErrorCode string

const (
	// ErrCodeLengthMismatch indicates operands of unequal length.
	ErrCodeLengthMismatch ShapeErrorCode = "LENGTH_MISMATCH"

	// ErrCodeVarianceMismatch indicates an operation undefined for the
	// operands' variance kinds (element-wise ops need matching kinds,
	// contraction needs opposite kinds).
	ErrCodeVarianceMismatch ShapeErrorCode = "VARIANCE_MISMATCH"
)

// ShapeError reports a tuple operation applied to incompatible shapes.
type ShapeError struct {
	// Code identifies the fault category.
	Code ShapeErrorCode

	// Op names the failing operation ("Add", "Mul", "Contract", ...).
	Op string

	// LeftKind and RightKind are the operand variance tags.
	LeftKind, RightKind Kind

	// LeftLen and RightLen are the operand lengths.
	LeftLen, RightLen int
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	switch e.Code {
	case ErrCodeLengthMismatch:
		return fmt.Sprintf("%s: %s requires equal lengths (left=%d, right=%d)",
			e.Code, e.Op, e.LeftLen, e.RightLen)
	case ErrCodeVarianceMismatch:
		return fmt.Sprintf("%s: %s undefined for %s/%s operands",
			e.Code, e.Op, e.LeftKind, e.RightKind)
	default:
		return fmt.Sprintf("%s: %s on incompatible tuples", e.Code, e.Op)
	}
}

// IsShapeMismatch reports whether err is any tuple shape fault.
// Uses errors.As to handle wrapped errors.
func IsShapeMismatch(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}

func lengthMismatch(op string, a, b *Tuple) *ShapeError {
	return &ShapeError{
		Code:     ErrCodeLengthMismatch,
		Op:       op,
		LeftKind: a.kind, RightKind: b.kind,
		LeftLen: a.Len(), RightLen: b.Len(),
	}
}

func varianceMismatch(op string, a, b *Tuple) *ShapeError {
	return &ShapeError{
		Code:     ErrCodeVarianceMismatch,
		Op:       op,
		LeftKind: a.kind, RightKind: b.kind,
		LeftLen: a.Len(), RightLen: b.Len(),
	}
}
