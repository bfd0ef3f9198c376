// Package diffop implements the derivative operator D for functions
// written over the dual Scalar algebra.
//
// D wraps a scalar function f and returns the function computing f':
// it seeds the argument as a dual number with derivative component 1,
// evaluates f, and extracts the derivative component of the result.
// Higher orders compose the same step literally: D².Apply(f) is
// D.Apply(D.Apply(f)), each level re-seeding a fresh dual, so nested
// duals arise from the recursion rather than from any bookkeeping here.
//
// The operator is a value: Compose adds orders (operator product) and
// Pow multiplies them (repeated composition). Order 0 is the identity
// transform. Negative orders are not supported; no antiderivative is
// defined.
//
// Precondition, not enforced: the wrapped function must be built only
// from dual-compatible operations (the dual package's arithmetic and
// elementary functions). Branching on the collapsed value of the
// argument, or routing it through arithmetic the algebra does not see,
// silently produces a derivative of the branch actually taken; that is
// a usage error the operator cannot detect in general.
package diffop

import (
	"fmt"

	"github.com/roach88/epsilon/internal/dual"
)

// Func is the calling convention between user code and the operator: a
// scalar function of one dual-compatible argument.
type Func func(dual.Scalar) dual.Scalar

// Operator is a derivative operator of some non-negative order.
// The zero value is the identity (order 0).
type Operator struct {
	order int
}

// D is the first-derivative operator.
var D = Operator{order: 1}

// New returns an operator of the given order. Negative orders fail
// with an OrderError: differentiation has no defined inverse here.
func New(order int) (Operator, error) {
	if order < 0 {
		return Operator{}, notSupported(order)
	}
	return Operator{order: order}, nil
}

// Order returns the operator's order.
func (op Operator) Order() int { return op.order }

// Apply transforms f into its op.Order()-th derivative by literal
// repeated composition. Order 0 returns f unchanged.
func (op Operator) Apply(f Func) Func {
	df := f
	for i := 0; i < op.order; i++ {
		df = derive(df)
	}
	return df
}

// derive is one differentiation step: evaluate at x + 1ε and read off
// the ε component. A constant result has derivative zero, which is
// what dual.Deriv returns for a plain value.
func derive(f Func) Func {
	return func(x dual.Scalar) dual.Scalar {
		y := f(dual.Number{Real: x, Dual: dual.Float(1)})
		return dual.Deriv(y)
	}
}

// At evaluates the op.Order()-th derivative of f at x, converting any
// arithmetic fault raised during evaluation into an error return.
func (op Operator) At(f Func, x float64) (float64, error) {
	s, err := dual.Try(func() dual.Scalar {
		return op.Apply(f)(dual.Float(x))
	})
	if err != nil {
		return 0, err
	}
	return dual.Float64(s), nil
}

// Compose returns the operator product: applying the result is
// applying other, then op. Orders add; composition commutes here since
// each application is independent.
func (op Operator) Compose(other Operator) Operator {
	return Operator{order: op.order + other.order}
}

// Pow returns the operator composed with itself n times (order
// multiplied by n). Negative n fails with an OrderError.
func (op Operator) Pow(n int) (Operator, error) {
	if n < 0 {
		return Operator{}, notSupported(n)
	}
	return Operator{order: op.order * n}, nil
}

// String renders the operator in the conventional notation.
func (op Operator) String() string {
	switch op.order {
	case 0:
		return "I"
	case 1:
		return "D"
	default:
		return fmt.Sprintf("D^%d", op.order)
	}
}
