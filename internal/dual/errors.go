package dual

import (
	"errors"
	"fmt"
)

// ArithmeticErrorCode categorizes arithmetic faults.
type ArithmeticErrorCode string

const (
	// ErrCodeDivisionByZero indicates division by a value whose real
	// component is exactly zero.
	ErrCodeDivisionByZero ArithmeticErrorCode = "DIVISION_BY_ZERO"

	// ErrCodeDomain indicates an operation outside its real domain,
	// such as a non-integer power of a negative value.
	ErrCodeDomain ArithmeticErrorCode = "DOMAIN_ERROR"
)

// ArithmeticError is the panic value raised by dual operations on an
// arithmetic fault. It carries the failing operation for diagnostics.
type ArithmeticError struct {
	// Code identifies the fault category.
	Code ArithmeticErrorCode

	// Op names the operation that faulted ("Div", "PowReal", "Log", ...).
	Op string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ArithmeticError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s (op=%s)", e.Code, e.Message, e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsDivisionByZero reports whether err is a division-by-zero fault.
// Uses errors.As to handle wrapped errors.
func IsDivisionByZero(err error) bool {
	var ae *ArithmeticError
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeDivisionByZero
	}
	return false
}

// IsDomainError reports whether err is a domain fault.
// Uses errors.As to handle wrapped errors.
func IsDomainError(err error) bool {
	var ae *ArithmeticError
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeDomain
	}
	return false
}

func divisionByZero(op string) *ArithmeticError {
	return &ArithmeticError{
		Code:    ErrCodeDivisionByZero,
		Op:      op,
		Message: "division by a value with zero real component",
	}
}

func domainError(op, message string) *ArithmeticError {
	return &ArithmeticError{Code: ErrCodeDomain, Op: op, Message: message}
}

// Try runs fn and converts an *ArithmeticError panic into an error
// return. Any other panic is re-raised.
func Try(fn func() Scalar) (s Scalar, err error) {
	defer func() {
		if r := recover(); r != nil {
			ae, ok := r.(*ArithmeticError)
			if !ok {
				panic(r)
			}
			s, err = nil, ae
		}
	}()
	return fn(), nil
}
