// Package expr parses infix arithmetic expressions and compiles them
// into functions over the dual Scalar algebra, so the derivative
// operator applies to textual input with no extra machinery.
//
// The grammar covers the supported operator set and nothing more:
// + - * / ^ (right-associative), unary minus, parentheses, numeric
// literals, variables, the named constants pi and e, and calls of the
// elementary functions (sqrt, sin, cos, tan, asin, acos, atan, exp,
// log, ln, log2, log10).
//
// Identifiers are NFC-normalized, so a variable typed as a composed or
// decomposed Unicode sequence (θ, say) names the same thing either way.
//
// Parsing validates; evaluation computes. A parsed expression never
// fails structurally at evaluation time; only arithmetic faults from
// the dual package can surface, and Eval recovers those into errors.
package expr

import (
	"fmt"
	"sort"

	"github.com/roach88/epsilon/internal/diffop"
	"github.com/roach88/epsilon/internal/dual"
)

// Expr is a parsed expression. Immutable after Parse.
type Expr struct {
	src  string
	root node
	vars []string // free variables in first-appearance order
}

// Parse parses src into an expression, or returns a *ParseError.
func Parse(src string) (*Expr, error) {
	p := newParser(src)
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return &Expr{src: src, root: root, vars: p.vars}, nil
}

// Source returns the original source text.
func (e *Expr) Source() string { return e.src }

// Vars returns the free variables in order of first appearance.
func (e *Expr) Vars() []string {
	out := make([]string, len(e.vars))
	copy(out, e.vars)
	return out
}

// Eval evaluates the expression with the given variable bindings.
// Every free variable must be bound; arithmetic faults are returned as
// errors.
func (e *Expr) Eval(env map[string]dual.Scalar) (dual.Scalar, error) {
	for _, v := range e.vars {
		if _, ok := env[v]; !ok {
			return nil, fmt.Errorf("unbound variable %q", v)
		}
	}
	return dual.Try(func() dual.Scalar {
		return e.root.eval(env)
	})
}

// Bind compiles the expression into a function of the named arguments,
// in the given order. Every free variable must appear among names.
// The returned function participates in the dual algebra: arithmetic
// faults panic and are recovered at error-returning boundaries such as
// Operator.At.
func (e *Expr) Bind(names ...string) (diffop.NFunc, error) {
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	var unbound []string
	for _, v := range e.vars {
		if _, ok := index[v]; !ok {
			unbound = append(unbound, v)
		}
	}
	if len(unbound) > 0 {
		sort.Strings(unbound)
		return nil, fmt.Errorf("unbound variables %v (bound: %v)", unbound, names)
	}

	root := e.root
	return func(args ...dual.Scalar) dual.Scalar {
		if len(args) != len(names) {
			panic(fmt.Sprintf("expr: bound for %d arguments, called with %d", len(names), len(args)))
		}
		env := make(map[string]dual.Scalar, len(names))
		for i, n := range names {
			env[n] = args[i]
		}
		return root.eval(env)
	}, nil
}

// Compile1 compiles a single-variable expression into the derivative
// operator's calling convention. A constant expression compiles with
// any variable name.
func (e *Expr) Compile1(name string) (diffop.Func, error) {
	f, err := e.Bind(name)
	if err != nil {
		return nil, err
	}
	return func(x dual.Scalar) dual.Scalar {
		return f(x)
	}, nil
}

// node is an evaluable fragment of the parse tree.
type node interface {
	eval(env map[string]dual.Scalar) dual.Scalar
}

type litNode float64

func (n litNode) eval(map[string]dual.Scalar) dual.Scalar {
	return dual.Float(n)
}

type varNode string

func (n varNode) eval(env map[string]dual.Scalar) dual.Scalar {
	return env[string(n)]
}

type negNode struct {
	operand node
}

func (n negNode) eval(env map[string]dual.Scalar) dual.Scalar {
	return dual.Neg(n.operand.eval(env))
}

type binNode struct {
	op   tokenKind
	l, r node
}

func (n binNode) eval(env map[string]dual.Scalar) dual.Scalar {
	l := n.l.eval(env)
	r := n.r.eval(env)
	switch n.op {
	case tokPlus:
		return dual.Add(l, r)
	case tokMinus:
		return dual.Sub(l, r)
	case tokStar:
		return dual.Mul(l, r)
	case tokSlash:
		return dual.Div(l, r)
	default:
		panic(fmt.Sprintf("expr: unknown binary operator %v", n.op))
	}
}

// powNode applies the power rule, which needs a constant real
// exponent. An exponent that evaluates to a dual (it mentions a seeded
// variable) is outside the algebra.
type powNode struct {
	base, exp node
}

func (n powNode) eval(env map[string]dual.Scalar) dual.Scalar {
	p, ok := n.exp.eval(env).(dual.Float)
	if !ok {
		panic(&dual.ArithmeticError{
			Code:    dual.ErrCodeDomain,
			Op:      "Pow",
			Message: "exponent must be a constant (raising to a dual power is not supported)",
		})
	}
	return dual.PowReal(n.base.eval(env), float64(p))
}

type callNode struct {
	name string
	fn   func(dual.Scalar) dual.Scalar
	arg  node
}

func (n callNode) eval(env map[string]dual.Scalar) dual.Scalar {
	return n.fn(n.arg.eval(env))
}
