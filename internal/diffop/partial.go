package diffop

import (
	"fmt"

	"github.com/roach88/epsilon/internal/dual"
	"github.com/roach88/epsilon/internal/tuple"
)

// NFunc is a scalar function of several dual-compatible arguments.
type NFunc func(args ...dual.Scalar) dual.Scalar

// PartialAt computes ∂f/∂xᵢ at the given point by seeding the i-th
// argument with derivative component 1 and the rest with 0.
func PartialAt(f NFunc, i int, args ...dual.Scalar) (dual.Scalar, error) {
	if i < 0 || i >= len(args) {
		return nil, fmt.Errorf("partial index %d out of range for %d arguments", i, len(args))
	}
	return dual.Try(func() dual.Scalar {
		return dual.Deriv(f(seed(i, args)...))
	})
}

// Partial returns the function computing ∂f/∂xᵢ. The returned function
// participates in the dual algebra like any other: arithmetic faults
// panic and are recovered at error-returning boundaries.
func Partial(f NFunc, i int) NFunc {
	return func(args ...dual.Scalar) dual.Scalar {
		return dual.Deriv(f(seed(i, args)...))
	}
}

// GradientAt computes the gradient of f at the given point: the Down
// tuple of partial derivatives with respect to each argument. Pairing
// it with an Up displacement tuple contracts to the directional
// derivative.
func GradientAt(f NFunc, args ...dual.Scalar) (*tuple.Tuple, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("gradient requires at least one argument")
	}
	partials := make([]dual.Scalar, len(args))
	for i := range args {
		p, err := PartialAt(f, i, args...)
		if err != nil {
			return nil, err
		}
		partials[i] = p
	}
	return tuple.Down(partials...), nil
}

// Gradient returns the function computing the gradient of f.
func Gradient(f NFunc) func(args ...dual.Scalar) (*tuple.Tuple, error) {
	return func(args ...dual.Scalar) (*tuple.Tuple, error) {
		return GradientAt(f, args...)
	}
}

// seed copies args with the i-th argument given derivative component 1
// and all others 0, so the result's dual part is the i-th partial.
func seed(i int, args []dual.Scalar) []dual.Scalar {
	seeded := make([]dual.Scalar, len(args))
	for j, a := range args {
		d := dual.Float(0)
		if j == i {
			d = dual.Float(1)
		}
		seeded[j] = dual.Number{Real: a, Dual: d}
	}
	return seeded
}
