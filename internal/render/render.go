// Package render formats dual numbers and tuples for display: a plain
// text form for terminals and a LaTeX form for notebooks and docs.
// Output here is purely presentational; nothing in the algebra depends
// on it. The exact shapes are pinned by golden files in testdata.
package render

import (
	"strconv"
	"strings"

	"github.com/roach88/epsilon/internal/dual"
	"github.com/roach88/epsilon/internal/tuple"
)

// Text renders s as plain text: a bare value for a Float, or
// "value + (derivative)ε" for a Number, recursing through nested parts.
func Text(s dual.Scalar) string {
	n, ok := s.(dual.Number)
	if !ok {
		return formatFloat(s)
	}
	return wrap(Text(orZero(n.Real))) + " + (" + Text(orZero(n.Dual)) + ")ε"
}

// LaTeX renders s as LaTeX markup, using \varepsilon for the dual unit.
func LaTeX(s dual.Scalar) string {
	n, ok := s.(dual.Number)
	if !ok {
		return formatFloat(s)
	}
	return wrapLaTeX(LaTeX(orZero(n.Real))) +
		` + \left(` + LaTeX(orZero(n.Dual)) + `\right)\varepsilon`
}

// TupleText renders a tuple in the conventional bracketing: Up tuples
// in parentheses, Down tuples in square brackets.
func TupleText(t *tuple.Tuple) string {
	parts := make([]string, t.Len())
	for i := range parts {
		parts[i] = Text(t.At(i))
	}
	if t.Kind() == tuple.Contravariant {
		return "(" + strings.Join(parts, ", ") + ")"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// TupleLaTeX renders an Up tuple as a column pmatrix and a Down tuple
// as a row bmatrix, matching the superscript/subscript index
// convention for contravariant and covariant components.
func TupleLaTeX(t *tuple.Tuple) string {
	parts := make([]string, t.Len())
	for i := range parts {
		parts[i] = LaTeX(t.At(i))
	}
	if t.Kind() == tuple.Contravariant {
		return `\begin{pmatrix}` + strings.Join(parts, ` \\ `) + `\end{pmatrix}`
	}
	return `\begin{bmatrix}` + strings.Join(parts, ` & `) + `\end{bmatrix}`
}

// wrap parenthesizes nested dual renderings so the nesting structure
// stays readable; plain values pass through.
func wrap(s string) string {
	if strings.ContainsRune(s, 'ε') {
		return "(" + s + ")"
	}
	return s
}

func wrapLaTeX(s string) string {
	if strings.Contains(s, `\varepsilon`) {
		return `\left(` + s + `\right)`
	}
	return s
}

func orZero(s dual.Scalar) dual.Scalar {
	if s == nil {
		return dual.Float(0)
	}
	return s
}

func formatFloat(s dual.Scalar) string {
	return strconv.FormatFloat(dual.Float64(s), 'g', -1, 64)
}
