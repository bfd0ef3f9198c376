package dual

// Scalar is anything the dual arithmetic closes over: a plain Float or
// a dual Number. The interface is sealed; the two implementations are
// the whole algebra.
type Scalar interface {
	isScalar()
}

// Float is a plain value. It participates in the algebra as a constant:
// promotion gives it a zero dual part.
type Float float64

func (Float) isScalar() {}

// Number is an immutable dual pair. Real is the function value and Dual
// the first derivative with respect to the differentiation variable.
// Either part may itself be a Number (nested duals carry higher
// derivatives).
//
// A nil part is treated as Float(0) by all operations, so the zero
// value Number{} behaves as 0 + 0ε.
type Number struct {
	Real Scalar
	Dual Scalar
}

func (Number) isScalar() {}

// Var returns x seeded for differentiation: x + 1ε.
func Var(x float64) Number {
	return Number{Real: Float(x), Dual: Float(1)}
}

// Lift promotes s to a Number. A Float becomes a constant with zero
// dual part; a Number is returned with nil parts normalized.
func Lift(s Scalar) Number {
	if n, ok := s.(Number); ok {
		return Number{Real: part(n.Real), Dual: part(n.Dual)}
	}
	return Number{Real: part(s), Dual: Float(0)}
}

func part(s Scalar) Scalar {
	if s == nil {
		return Float(0)
	}
	return s
}

// Real returns the value component of s. For a Float that is s itself.
func Real(s Scalar) Scalar {
	if n, ok := s.(Number); ok {
		return part(n.Real)
	}
	return part(s)
}

// Deriv returns the derivative component of s. A plain value is a
// constant, so its derivative is zero.
func Deriv(s Scalar) Scalar {
	if n, ok := s.(Number); ok {
		return part(n.Dual)
	}
	return Float(0)
}

// Float64 collapses s to its outermost value: the real component taken
// repeatedly until a plain value remains. For a seeded evaluation this
// is the point the function was evaluated at.
func Float64(s Scalar) float64 {
	for {
		p := part(s)
		n, ok := p.(Number)
		if !ok {
			return float64(p.(Float))
		}
		s = part(n.Real)
	}
}

// Equal reports structural equality after promotion: real and dual
// parts compare recursively, so Float(2) equals Number{2, 0}. Intended
// for tests, not calculus.
func Equal(a, b Scalar) bool {
	x, xIsNum := part(a).(Number)
	y, yIsNum := part(b).(Number)
	if !xIsNum && !yIsNum {
		return part(a).(Float) == part(b).(Float)
	}
	if !xIsNum {
		x = Lift(a)
	}
	if !yIsNum {
		y = Lift(b)
	}
	return Equal(part(x.Real), part(y.Real)) && Equal(part(x.Dual), part(y.Dual))
}

// Compare orders a and b by their collapsed real values, returning -1,
// 0 or +1. Derivative components are ignored; like Equal this exists
// for tests and sorting, not for calculus.
func Compare(a, b Scalar) int {
	av, bv := Float64(a), Float64(b)
	switch {
	case av < bv:
		return -1
	case av > bv:
		return +1
	default:
		return 0
	}
}
