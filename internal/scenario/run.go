package scenario

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/epsilon/internal/diffop"
	"github.com/roach88/epsilon/internal/expr"
)

// Result is the outcome of running every case of a scenario.
type Result struct {
	Name   string       `json:"name"`
	Expr   string       `json:"expr"`
	Var    string       `json:"var"`
	Passed bool         `json:"passed"`
	Cases  []CaseResult `json:"cases"`
}

// CaseResult is the outcome of a single case.
type CaseResult struct {
	At    float64 `json:"at"`
	Order int     `json:"order"`
	Want  float64 `json:"want,omitempty"`
	Tol   float64 `json:"tol,omitempty"`
	Got   float64 `json:"got,omitempty"`
	Error string  `json:"error,omitempty"`
	Pass  bool    `json:"pass"`
}

// Failed counts the cases that did not pass.
func (r *Result) Failed() int {
	n := 0
	for _, c := range r.Cases {
		if !c.Pass {
			n++
		}
	}
	return n
}

// Run evaluates every case of the scenario. Case failures land in the
// result; only a scenario that cannot run at all (unparseable
// expression, wrong variable) returns an error.
func Run(s *Scenario) (*Result, error) {
	e, err := expr.Parse(s.Expr)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	f, err := e.Compile1(s.variable())
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	res := &Result{
		Name:   s.Name,
		Expr:   s.Expr,
		Var:    s.variable(),
		Passed: true,
		Cases:  make([]CaseResult, 0, len(s.Cases)),
	}
	for _, c := range s.Cases {
		cr := runCase(f, &c)
		if !cr.Pass {
			res.Passed = false
		}
		res.Cases = append(res.Cases, cr)
	}
	return res, nil
}

func runCase(f diffop.Func, c *Case) CaseResult {
	cr := CaseResult{At: c.At, Order: c.order()}

	op, err := diffop.New(c.order())
	if err == nil {
		cr.Got, err = op.At(f, c.At)
	}

	if c.WantError != "" {
		if err != nil && strings.Contains(err.Error(), c.WantError) {
			cr.Pass = true
		}
		if err != nil {
			cr.Error = err.Error()
			cr.Got = 0
		}
		return cr
	}

	cr.Want = c.Want
	cr.Tol = c.tol()
	if err != nil {
		cr.Error = err.Error()
		return cr
	}
	cr.Pass = math.Abs(cr.Got-cr.Want) <= cr.Tol
	return cr
}

// RunGolden runs the scenario and asserts its JSON-rendered result
// against the golden file named after the scenario.
func RunGolden(t *testing.T, g *goldie.Goldie, s *Scenario) *Result {
	t.Helper()

	res, err := Run(s)
	if err != nil {
		t.Fatalf("running scenario %s: %v", s.Name, err)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		t.Fatalf("rendering scenario result %s: %v", s.Name, err)
	}
	g.Assert(t, s.Name, data)
	return res
}
