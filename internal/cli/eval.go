package cli

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/epsilon/internal/dual"
	"github.com/roach88/epsilon/internal/expr"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	At string // point specification, "x=2,y=3"
}

// EvalResult is the JSON payload for a successful evaluation.
type EvalResult struct {
	Expr  string             `json:"expr"`
	At    map[string]float64 `json:"at,omitempty"`
	Value float64            `json:"value"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <expr>",
		Short: "Evaluate an expression at a point",
		Long: `Evaluate an arithmetic expression, binding variables to the values
given with --at.

Exit codes:
  0 - Evaluated successfully
  1 - Arithmetic fault (division by zero, domain error)
  2 - Command error (parse failure, unbound variables)

Examples:
  epsilon eval "2 + 3 * 4"
  epsilon eval "x^2 + 3*x + 1" --at x=2
  epsilon eval "sin(x) * y" --at x=0.5,y=2 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", "variable bindings, e.g. x=2,y=3")

	return cmd
}

func runEval(opts *EvalOptions, src string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	e, err := expr.Parse(src)
	if err != nil {
		return evalFailure(out, err)
	}

	var bindings []Binding
	if opts.At != "" {
		bindings, err = ParsePoint(opts.At)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --at", err)
		}
	}

	got, err := e.Eval(env(bindings))
	if err != nil {
		if _, isArith := dualArithmetic(err); isArith {
			return evalFailure(out, err)
		}
		return WrapExitError(ExitCommandError, "cannot evaluate", err)
	}
	value := dual.Float64(got)

	out.VerboseLog("variables: %v", e.Vars())
	if opts.Format == "json" {
		return out.Success(EvalResult{Expr: src, At: bindingMap(bindings), Value: value})
	}
	return out.Success(formatFloat(value))
}

// dualArithmetic reports whether err is an arithmetic fault from the
// dual algebra, as opposed to a binding problem.
func dualArithmetic(err error) (*dual.ArithmeticError, bool) {
	var ae *dual.ArithmeticError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func bindingMap(bindings []Binding) map[string]float64 {
	if len(bindings) == 0 {
		return nil
	}
	m := make(map[string]float64, len(bindings))
	for _, b := range bindings {
		m[b.Name] = b.Value
	}
	return m
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
