package diffop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/epsilon/internal/dual"
)

// quadratic is f(x) = x² + 3x + 1, so f'(x) = 2x + 3.
func quadratic(x dual.Scalar) dual.Scalar {
	return dual.Add(dual.Add(dual.Mul(x, x), dual.Mul(dual.Float(3), x)), dual.Float(1))
}

// cube is f(x) = x³.
func cube(x dual.Scalar) dual.Scalar {
	return dual.PowReal(x, 3)
}

func TestD_Quadratic(t *testing.T) {
	got, err := D.At(quadratic, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)
}

func TestD_SeededEvaluation(t *testing.T) {
	// The mechanism itself: f(2 + 1ε) carries (11, 7).
	y := quadratic(dual.Var(2))
	assert.Equal(t, 11.0, dual.Float64(y))
	assert.Equal(t, 7.0, dual.Float64(dual.Deriv(y)))
}

func TestD_PowerRule(t *testing.T) {
	// D(xⁿ)(x0) == n·x0ⁿ⁻¹ for integer n ≥ 1.
	for n := 1; n <= 6; n++ {
		n := n
		f := func(x dual.Scalar) dual.Scalar { return dual.PowReal(x, float64(n)) }

		for _, x0 := range []float64{-2, -0.5, 0.5, 1, 3} {
			got, err := D.At(f, x0)
			require.NoError(t, err)
			want, err := dual.Try(func() dual.Scalar {
				return dual.Mul(dual.Float(float64(n)), dual.PowReal(dual.Float(x0), float64(n-1)))
			})
			require.NoError(t, err)
			assert.InDelta(t, dual.Float64(want), got, 1e-12, "n=%d x0=%v", n, x0)
		}
	}
}

func TestD_PowerRuleAtZero(t *testing.T) {
	// At x0 == 0: derivative of x¹ is 1; of xⁿ (n > 1) is 0.
	got, err := D.At(func(x dual.Scalar) dual.Scalar { return dual.PowReal(x, 1) }, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	for _, n := range []float64{2, 3, 5} {
		n := n
		got, err := D.At(func(x dual.Scalar) dual.Scalar { return dual.PowReal(x, n) }, 0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got, "n=%v", n)
	}
}

func TestD_ProductRuleComposition(t *testing.T) {
	// D(f·g)(x0) == f(x0)·D(g)(x0) + D(f)(x0)·g(x0) for polynomials.
	f := func(x dual.Scalar) dual.Scalar { return dual.Add(dual.PowReal(x, 2), dual.Float(1)) }
	g := func(x dual.Scalar) dual.Scalar { return dual.Sub(dual.PowReal(x, 3), dual.Mul(dual.Float(2), x)) }
	fg := func(x dual.Scalar) dual.Scalar { return dual.Mul(f(x), g(x)) }

	for _, x0 := range []float64{-3, -1, 0, 0.5, 2} {
		left, err := D.At(fg, x0)
		require.NoError(t, err)

		df, err := D.At(f, x0)
		require.NoError(t, err)
		dg, err := D.At(g, x0)
		require.NoError(t, err)
		fv := dual.Float64(f(dual.Float(x0)))
		gv := dual.Float64(g(dual.Float(x0)))

		assert.InDelta(t, fv*dg+df*gv, left, 1e-12, "x0=%v", x0)
	}
}

func TestOperator_OrderZeroIsIdentity(t *testing.T) {
	identity, err := New(0)
	require.NoError(t, err)

	g := identity.Apply(quadratic)
	for _, x0 := range []float64{-1, 0, 2, 10} {
		assert.Equal(t,
			dual.Float64(quadratic(dual.Float(x0))),
			dual.Float64(g(dual.Float(x0))),
			"x0=%v", x0)
	}
}

func TestOperator_SecondDerivativeMatchesDoubleApplication(t *testing.T) {
	second, err := D.Pow(2)
	require.NoError(t, err)

	// D²(x³)(2) == 12 (f'' = 6x).
	got, err := second.At(cube, 2)
	require.NoError(t, err)
	assert.Equal(t, 12.0, got)

	// And literally equals D(D(f)).
	ddf := D.Apply(D.Apply(cube))
	assert.Equal(t, 12.0, dual.Float64(ddf(dual.Float(2))))
}

func TestOperator_ThirdDerivative(t *testing.T) {
	third, err := New(3)
	require.NoError(t, err)

	// f(x) = x⁴: f'''(x) = 24x.
	quartic := func(x dual.Scalar) dual.Scalar { return dual.PowReal(x, 4) }
	got, err := third.At(quartic, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 36.0, got, 1e-9)
}

func TestOperator_Compose(t *testing.T) {
	dd := D.Compose(D)
	assert.Equal(t, 2, dd.Order())

	got, err := dd.At(cube, 2)
	require.NoError(t, err)
	assert.Equal(t, 12.0, got)
}

func TestOperator_PowIdentities(t *testing.T) {
	d1, err := D.Pow(1)
	require.NoError(t, err)
	assert.Equal(t, D, d1)

	d0, err := D.Pow(0)
	require.NoError(t, err)
	assert.Equal(t, 0, d0.Order())
}

func TestOperator_NegativeOrder_Fails(t *testing.T) {
	_, err := New(-1)
	require.Error(t, err)
	assert.True(t, IsOrderNotSupported(err))

	_, err = D.Pow(-2)
	require.Error(t, err)
	assert.True(t, IsOrderNotSupported(err))

	var oe *OrderError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, -2, oe.Order)
}

func TestOperator_At_RecoversArithmeticFault(t *testing.T) {
	inv := func(x dual.Scalar) dual.Scalar { return dual.Div(dual.Float(1), x) }

	_, err := D.At(inv, 0)
	require.Error(t, err)
	assert.True(t, dual.IsDivisionByZero(err))
}

func TestOperator_TranscendentalHigherOrder(t *testing.T) {
	// D⁴(sin) == sin.
	fourth, err := New(4)
	require.NoError(t, err)

	got, err := fourth.At(func(x dual.Scalar) dual.Scalar { return dual.Sin(x) }, 0.8)
	require.NoError(t, err)

	want := dual.Float64(dual.Sin(dual.Float(0.8)))
	assert.InDelta(t, want, got, 1e-9)
}

func TestOperator_String(t *testing.T) {
	assert.Equal(t, "D", D.String())

	second, _ := D.Pow(2)
	assert.Equal(t, "D^2", second.String())

	identity, _ := New(0)
	assert.Equal(t, "I", identity.String())
}
