package dual

import "math"

// Elementary functions lifted to the dual algebra. Each follows the
// same shape: apply the plain function to the real part and multiply
// the dual part by the function's derivative (chain rule). The
// recursion through Real keeps nested duals correct.

// Sqrt returns √a. Panics with DOMAIN_ERROR when the real component is
// negative.
func Sqrt(a Scalar) Scalar {
	if Float64(a) < 0 {
		panic(domainError("Sqrt", "square root of a negative value"))
	}
	return PowReal(a, 0.5)
}

// Sin returns sin(a): (sin a, cos(a)·a').
func Sin(a Scalar) Scalar {
	n, ok := part(a).(Number)
	if !ok {
		return Float(math.Sin(float64(part(a).(Float))))
	}
	return Number{
		Real: Sin(part(n.Real)),
		Dual: Mul(Cos(part(n.Real)), part(n.Dual)),
	}
}

// Cos returns cos(a): (cos a, -sin(a)·a').
func Cos(a Scalar) Scalar {
	n, ok := part(a).(Number)
	if !ok {
		return Float(math.Cos(float64(part(a).(Float))))
	}
	return Number{
		Real: Cos(part(n.Real)),
		Dual: Neg(Mul(Sin(part(n.Real)), part(n.Dual))),
	}
}

// Tan returns tan(a): (tan a, a'/cos²(a)).
func Tan(a Scalar) Scalar {
	n, ok := part(a).(Number)
	if !ok {
		return Float(math.Tan(float64(part(a).(Float))))
	}
	c := Cos(part(n.Real))
	return Number{
		Real: Tan(part(n.Real)),
		Dual: Div(part(n.Dual), Mul(c, c)),
	}
}

// Asin returns arcsin(a): (asin a, a'/√(1-a²)). Panics with
// DOMAIN_ERROR when the real component lies outside [-1, 1].
func Asin(a Scalar) Scalar {
	n, ok := part(a).(Number)
	if !ok {
		v := float64(part(a).(Float))
		if v < -1 || v > 1 {
			panic(domainError("Asin", "argument outside [-1, 1]"))
		}
		return Float(math.Asin(v))
	}
	r := part(n.Real)
	return Number{
		Real: Asin(r),
		Dual: Div(part(n.Dual), Sqrt(Sub(Float(1), Mul(r, r)))),
	}
}

// Acos returns arccos(a): (acos a, -a'/√(1-a²)). Panics with
// DOMAIN_ERROR when the real component lies outside [-1, 1].
func Acos(a Scalar) Scalar {
	n, ok := part(a).(Number)
	if !ok {
		v := float64(part(a).(Float))
		if v < -1 || v > 1 {
			panic(domainError("Acos", "argument outside [-1, 1]"))
		}
		return Float(math.Acos(v))
	}
	r := part(n.Real)
	return Number{
		Real: Acos(r),
		Dual: Neg(Div(part(n.Dual), Sqrt(Sub(Float(1), Mul(r, r))))),
	}
}

// Atan returns arctan(a): (atan a, a'/(1+a²)).
func Atan(a Scalar) Scalar {
	n, ok := part(a).(Number)
	if !ok {
		return Float(math.Atan(float64(part(a).(Float))))
	}
	r := part(n.Real)
	return Number{
		Real: Atan(r),
		Dual: Div(part(n.Dual), Add(Float(1), Mul(r, r))),
	}
}

// Exp returns eᵃ: (eᵃ, eᵃ·a').
func Exp(a Scalar) Scalar {
	n, ok := part(a).(Number)
	if !ok {
		return Float(math.Exp(float64(part(a).(Float))))
	}
	val := Exp(part(n.Real))
	return Number{
		Real: val,
		Dual: Mul(val, part(n.Dual)),
	}
}

// Log returns the natural logarithm of a: (ln a, a'/a). Panics with
// DOMAIN_ERROR when the real component is not positive.
func Log(a Scalar) Scalar {
	if Float64(a) <= 0 {
		panic(domainError("Log", "logarithm of a non-positive value"))
	}
	n, ok := part(a).(Number)
	if !ok {
		return Float(math.Log(float64(part(a).(Float))))
	}
	return Number{
		Real: Log(part(n.Real)),
		Dual: Div(part(n.Dual), part(n.Real)),
	}
}

// Log2 returns the base-2 logarithm of a.
func Log2(a Scalar) Scalar {
	return Div(Log(a), Float(math.Ln2))
}

// Log10 returns the base-10 logarithm of a.
func Log10(a Scalar) Scalar {
	return Div(Log(a), Float(math.Log(10)))
}
