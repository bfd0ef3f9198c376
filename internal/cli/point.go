package cli

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/epsilon/internal/dual"
)

// Binding pairs a variable name with its value at the evaluation
// point. Order is significant: gradients follow binding order.
type Binding struct {
	Name  string
	Value float64
}

// ParsePoint parses a point specification of the form "x=2,y=3.5".
// Names are NFC-normalized so they match parsed expression variables.
func ParsePoint(s string) ([]Binding, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty point specification")
	}

	parts := strings.Split(s, ",")
	bindings := make([]Binding, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid binding %q: expected name=value", strings.TrimSpace(part))
		}
		name = norm.NFC.String(strings.TrimSpace(name))
		if name == "" {
			return nil, fmt.Errorf("invalid binding %q: empty variable name", strings.TrimSpace(part))
		}
		if seen[name] {
			return nil, fmt.Errorf("variable %q bound twice", name)
		}
		seen[name] = true

		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %q: %q is not a number", name, strings.TrimSpace(value))
		}
		bindings = append(bindings, Binding{Name: name, Value: v})
	}
	return bindings, nil
}

// env builds a plain-scalar environment from bindings.
func env(bindings []Binding) map[string]dual.Scalar {
	m := make(map[string]dual.Scalar, len(bindings))
	for _, b := range bindings {
		m[b.Name] = dual.Float(b.Value)
	}
	return m
}

// names extracts binding names in order.
func names(bindings []Binding) []string {
	out := make([]string, len(bindings))
	for i, b := range bindings {
		out[i] = b.Name
	}
	return out
}

// args converts binding values to scalars in order.
func args(bindings []Binding) []dual.Scalar {
	out := make([]dual.Scalar, len(bindings))
	for i, b := range bindings {
		out[i] = dual.Float(b.Value)
	}
	return out
}
