package dual

import "math"

// Arithmetic over Scalars. Each operation returns a fresh value and
// never mutates its operands. When one operand is a Number the other is
// promoted with a zero dual part, then the calculus rule is applied
// with the parts themselves combined recursively, which is what makes
// nested duals work.

// Add returns a+b: (a+b, a'+b').
func Add(a, b Scalar) Scalar {
	x, y, plain := binary(a, b)
	if plain {
		return Float(float64(part(a).(Float)) + float64(part(b).(Float)))
	}
	return Number{
		Real: Add(x.Real, y.Real),
		Dual: Add(x.Dual, y.Dual),
	}
}

// Sub returns a-b: (a-b, a'-b').
func Sub(a, b Scalar) Scalar {
	x, y, plain := binary(a, b)
	if plain {
		return Float(float64(part(a).(Float)) - float64(part(b).(Float)))
	}
	return Number{
		Real: Sub(x.Real, y.Real),
		Dual: Sub(x.Dual, y.Dual),
	}
}

// Mul returns a·b by the product rule: (a·b, a'·b + a·b').
func Mul(a, b Scalar) Scalar {
	x, y, plain := binary(a, b)
	if plain {
		return Float(float64(part(a).(Float)) * float64(part(b).(Float)))
	}
	return Number{
		Real: Mul(x.Real, y.Real),
		Dual: Add(Mul(x.Dual, y.Real), Mul(x.Real, y.Dual)),
	}
}

// Div returns a/b by the quotient rule: (a/b, (a'·b - a·b')/b²).
// Panics with a DIVISION_BY_ZERO *ArithmeticError when the real
// component of b is exactly zero.
func Div(a, b Scalar) Scalar {
	if Float64(b) == 0 {
		panic(divisionByZero("Div"))
	}
	x, y, plain := binary(a, b)
	if plain {
		return Float(float64(part(a).(Float)) / float64(part(b).(Float)))
	}
	return Number{
		Real: Div(x.Real, y.Real),
		Dual: Div(
			Sub(Mul(x.Dual, y.Real), Mul(x.Real, y.Dual)),
			Mul(y.Real, y.Real),
		),
	}
}

// Neg returns -a: (-a, -a').
func Neg(a Scalar) Scalar {
	n, ok := part(a).(Number)
	if !ok {
		return Float(-float64(part(a).(Float)))
	}
	return Number{Real: Neg(part(n.Real)), Dual: Neg(part(n.Dual))}
}

// PowReal returns a**p for a constant real exponent, by the power rule:
// (aᵖ, p·aᵖ⁻¹·a').
//
// Special cases:
//   - p == 0 returns 1 for any a (constant, zero derivative)
//   - p == 1 returns a unchanged
//   - a non-integer p with a negative real component panics with a
//     DOMAIN_ERROR *ArithmeticError (would need complex arithmetic)
//   - a negative p with a zero real component panics with
//     DIVISION_BY_ZERO
//
// Raising to a dual exponent is not part of the algebra; exponents are
// plain reals by construction.
func PowReal(a Scalar, p float64) Scalar {
	switch p {
	case 0:
		return Float(1)
	case 1:
		return part(a)
	}
	n, ok := part(a).(Number)
	if !ok {
		return Float(powFloat(float64(part(a).(Float)), p))
	}
	d := Number{Real: part(n.Real), Dual: part(n.Dual)}
	return Number{
		Real: PowReal(d.Real, p),
		Dual: Mul(Mul(Float(p), PowReal(d.Real, p-1)), d.Dual),
	}
}

func powFloat(x, p float64) float64 {
	if x < 0 && p != math.Trunc(p) {
		panic(domainError("PowReal", "non-integer power of a negative value"))
	}
	if x == 0 && p < 0 {
		panic(divisionByZero("PowReal"))
	}
	return math.Pow(x, p)
}

// binary promotes a pair of operands. When both are plain Floats the
// caller takes the fast path; otherwise both sides are lifted so the
// calculus rule applies uniformly regardless of operand order.
func binary(a, b Scalar) (x, y Number, plain bool) {
	_, aIsNum := part(a).(Number)
	_, bIsNum := part(b).(Number)
	if !aIsNum && !bIsNum {
		return Number{}, Number{}, true
	}
	return Lift(a), Lift(b), false
}
