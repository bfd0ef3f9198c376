package diffop

import (
	"errors"
	"fmt"
)

// OrderErrorCode categorizes operator order faults.
type OrderErrorCode string

// ErrCodeOrderNotSupported indicates a differentiation order the
// operator does not define (negative: no antiderivative exists).
const ErrCodeOrderNotSupported OrderErrorCode = "ORDER_NOT_SUPPORTED"

// OrderError reports an unsupported differentiation order.
type OrderError struct {
	// Code identifies the fault category.
	Code OrderErrorCode

	// Order is the offending order.
	Order int
}

// Error implements the error interface.
func (e *OrderError) Error() string {
	return fmt.Sprintf("%s: differentiation order %d (must be a non-negative integer)",
		e.Code, e.Order)
}

// IsOrderNotSupported reports whether err is an unsupported-order
// fault. Uses errors.As to handle wrapped errors.
func IsOrderNotSupported(err error) bool {
	var oe *OrderError
	if errors.As(err, &oe) {
		return oe.Code == ErrCodeOrderNotSupported
	}
	return false
}

func notSupported(order int) *OrderError {
	return &OrderError{Code: ErrCodeOrderNotSupported, Order: order}
}
