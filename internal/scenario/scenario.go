// Package scenario runs derivative conformance scenarios: YAML files
// that pin the expected derivatives of an expression at given points.
// Scenarios back the `epsilon check` command and double as golden
// fixtures for the library's own tests.
package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario is one conformance file: a single-variable expression and
// the derivative values expected of it.
type Scenario struct {
	// Name uniquely identifies the scenario (and its golden file).
	Name string `yaml:"name"`

	// Description explains what the scenario pins down.
	Description string `yaml:"description,omitempty"`

	// Expr is the expression under test.
	Expr string `yaml:"expr"`

	// Var is the differentiation variable. Defaults to "x".
	Var string `yaml:"var,omitempty"`

	// Cases are the points and orders to check.
	Cases []Case `yaml:"cases"`
}

// Case is a single expectation: the order-th derivative of the
// expression at the given point.
type Case struct {
	// At is the evaluation point.
	At float64 `yaml:"at"`

	// Order is the derivative order. Omitted means 1; 0 checks the
	// plain value (identity operator).
	Order *int `yaml:"order,omitempty"`

	// Want is the expected value. Ignored when WantError is set.
	Want float64 `yaml:"want"`

	// Tol is the comparison tolerance. Omitted means 1e-9; 0 demands
	// exact equality.
	Tol *float64 `yaml:"tol,omitempty"`

	// WantError expects evaluation to fail with an error whose text
	// contains this fragment (typically an error code such as
	// DIVISION_BY_ZERO).
	WantError string `yaml:"want_error,omitempty"`
}

const (
	defaultVar = "x"
	defaultTol = 1e-9
)

// Load reads and validates a scenario file. Unknown fields are
// rejected so typos fail loudly instead of silently passing.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", filepath.Base(path), err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", filepath.Base(path), err)
	}
	return &s, nil
}

// LoadDir loads every .yaml/.yml file in dir, sorted by name.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scenario directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario files found in %s", dir)
	}

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := Load(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Expr == "" {
		return fmt.Errorf("expr is required")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("at least one case is required")
	}
	for i, c := range s.Cases {
		if c.Order != nil && *c.Order < 0 {
			return fmt.Errorf("case %d: order %d is negative", i, *c.Order)
		}
		if c.Tol != nil && *c.Tol < 0 {
			return fmt.Errorf("case %d: tolerance %v is negative", i, *c.Tol)
		}
	}
	return nil
}

// order returns the effective derivative order for a case.
func (c *Case) order() int {
	if c.Order == nil {
		return 1
	}
	return *c.Order
}

// tol returns the effective tolerance for a case.
func (c *Case) tol() float64 {
	if c.Tol == nil {
		return defaultTol
	}
	return *c.Tol
}

// variable returns the effective differentiation variable.
func (s *Scenario) variable() string {
	if s.Var == "" {
		return defaultVar
	}
	return s.Var
}
