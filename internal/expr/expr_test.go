package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/epsilon/internal/diffop"
	"github.com/roach88/epsilon/internal/dual"
)

func evalAt(t *testing.T, src string, env map[string]dual.Scalar) float64 {
	t.Helper()
	e, err := Parse(src)
	require.NoError(t, err)
	got, err := e.Eval(env)
	require.NoError(t, err)
	return dual.Float64(got)
}

func TestParse_Arithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{src: "1 + 2", want: 3},
		{src: "2 + 3 * 4", want: 14},
		{src: "(2 + 3) * 4", want: 20},
		{src: "10 - 4 - 3", want: 3},      // left associative
		{src: "2 ^ 3 ^ 2", want: 512},     // right associative
		{src: "-2 ^ 2", want: -4},         // -(2²)
		{src: "(-2) ^ 2", want: 4},        //
		{src: "-2 * 3", want: -6},         // (-2)·3
		{src: "8 / 4 / 2", want: 1},       // left associative
		{src: "1.5e2 + 1", want: 151},     // exponent literal
		{src: "2.5 * 4", want: 10},        //
		{src: "--3", want: 3},             // double negation
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, evalAt(t, tt.src, nil))
		})
	}
}

func TestParse_Constants(t *testing.T) {
	assert.InDelta(t, math.Pi, evalAt(t, "pi", nil), 1e-15)
	assert.InDelta(t, math.Pi, evalAt(t, "π", nil), 1e-15)
	assert.InDelta(t, math.E, evalAt(t, "e", nil), 1e-15)
	assert.InDelta(t, 0.0, evalAt(t, "sin(pi)", nil), 1e-12)
}

func TestParse_Variables(t *testing.T) {
	e, err := Parse("x^2 + y*x + y")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, e.Vars())

	got, err := e.Eval(map[string]dual.Scalar{
		"x": dual.Float(2), "y": dual.Float(3),
	})
	require.NoError(t, err)
	assert.Equal(t, 13.0, dual.Float64(got))
}

func TestParse_FunctionCalls(t *testing.T) {
	env := map[string]dual.Scalar{"x": dual.Float(0.5)}
	assert.InDelta(t, math.Sin(0.5), evalAt(t, "sin(x)", env), 1e-15)
	assert.InDelta(t, math.Sqrt(2), evalAt(t, "sqrt(2)", nil), 1e-15)
	assert.InDelta(t, math.Log(2), evalAt(t, "ln(2)", nil), 1e-15)
	assert.InDelta(t, 3.0, evalAt(t, "log2(8)", nil), 1e-12)
	assert.InDelta(t, math.Exp(1), evalAt(t, "exp(1)", nil), 1e-15)
}

func TestParse_IdentifierNormalization(t *testing.T) {
	// The same identifier typed as a composed code point or as a base
	// letter plus combining mark must name one variable after NFC.
	composed := "\u0177"      // ŷ as a single code point
	decomposed := "y\u0302"   // y + combining circumflex
	e, err := Parse(decomposed + " + 1")
	require.NoError(t, err)
	require.Equal(t, []string{composed}, e.Vars())

	got, err := e.Eval(map[string]dual.Scalar{composed: dual.Float(2)})
	require.NoError(t, err)
	assert.Equal(t, 3.0, dual.Float64(got))

	// Greek identifiers lex as ordinary letters.
	assert.Equal(t, 4.0, evalAt(t, "θ * 2", map[string]dual.Scalar{"θ": dual.Float(2)}))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code ParseErrorCode
	}{
		{name: "dangling operator", src: "1 +", code: ErrCodeUnexpectedToken},
		{name: "unbalanced paren", src: "(1 + 2", code: ErrCodeUnexpectedToken},
		{name: "trailing garbage", src: "1 2", code: ErrCodeUnexpectedToken},
		{name: "bad character", src: "1 $ 2", code: ErrCodeUnexpectedToken},
		{name: "unknown function", src: "sinh(1)", code: ErrCodeUnknownFunction},
		{name: "bad number", src: "1.2.3", code: ErrCodeBadNumber},
		{name: "empty", src: "", code: ErrCodeUnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			assert.True(t, IsParseError(err))

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.code, pe.Code)
		})
	}
}

func TestEval_UnboundVariable(t *testing.T) {
	e, err := Parse("x + y")
	require.NoError(t, err)

	_, err = e.Eval(map[string]dual.Scalar{"x": dual.Float(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "y")
}

func TestEval_ArithmeticFaults(t *testing.T) {
	e, err := Parse("1 / x")
	require.NoError(t, err)
	_, err = e.Eval(map[string]dual.Scalar{"x": dual.Float(0)})
	require.Error(t, err)
	assert.True(t, dual.IsDivisionByZero(err))

	e, err = Parse("sqrt(0 - 1)")
	require.NoError(t, err)
	_, err = e.Eval(nil)
	require.Error(t, err)
	assert.True(t, dual.IsDomainError(err))
}

func TestEval_DualExponent_Fails(t *testing.T) {
	e, err := Parse("2 ^ x")
	require.NoError(t, err)

	// A plain binding keeps the exponent constant.
	got, err := e.Eval(map[string]dual.Scalar{"x": dual.Float(3)})
	require.NoError(t, err)
	assert.Equal(t, 8.0, dual.Float64(got))

	// A seeded binding makes the exponent a dual: outside the algebra.
	_, err = e.Eval(map[string]dual.Scalar{"x": dual.Var(3)})
	require.Error(t, err)
	assert.True(t, dual.IsDomainError(err))
}

func TestBind_UnboundVariables(t *testing.T) {
	e, err := Parse("x + y + z")
	require.NoError(t, err)

	_, err = e.Bind("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "y")
	assert.Contains(t, err.Error(), "z")
}

func TestBind_ArgumentOrder(t *testing.T) {
	e, err := Parse("x - y")
	require.NoError(t, err)

	f, err := e.Bind("y", "x") // deliberately reversed
	require.NoError(t, err)

	got := f(dual.Float(1), dual.Float(10)) // y=1, x=10
	assert.Equal(t, 9.0, dual.Float64(got))
}

func TestCompile1_WithDerivativeOperator(t *testing.T) {
	e, err := Parse("x^2 + 3*x + 1")
	require.NoError(t, err)

	f, err := e.Compile1("x")
	require.NoError(t, err)

	got, err := diffop.D.At(f, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)

	second, err := diffop.D.Pow(2)
	require.NoError(t, err)
	d2, err := second.At(f, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, d2)
}

func TestCompile1_ConstantExpression(t *testing.T) {
	e, err := Parse("3 * pi")
	require.NoError(t, err)

	f, err := e.Compile1("x")
	require.NoError(t, err)

	got, err := diffop.D.At(f, 5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestCompile1_ChainRule(t *testing.T) {
	// d/dx sin(x²) = 2x·cos(x²).
	e, err := Parse("sin(x^2)")
	require.NoError(t, err)

	f, err := e.Compile1("x")
	require.NoError(t, err)

	got, err := diffop.D.At(f, 1.2)
	require.NoError(t, err)
	assert.InDelta(t, 2*1.2*math.Cos(1.44), got, 1e-12)
}
