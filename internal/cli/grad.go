package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/epsilon/internal/diffop"
	"github.com/roach88/epsilon/internal/dual"
	"github.com/roach88/epsilon/internal/expr"
	"github.com/roach88/epsilon/internal/render"
)

// GradOptions holds flags for the grad command.
type GradOptions struct {
	*RootOptions
	At string // point specification, "x=2,y=3"
}

// GradResult is the JSON payload for a gradient.
type GradResult struct {
	Expr     string             `json:"expr"`
	At       map[string]float64 `json:"at"`
	Vars     []string           `json:"vars"`
	Partials []float64          `json:"partials"`
}

// NewGradCommand creates the grad command.
func NewGradCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GradOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "grad <expr>",
		Short: "Compute the gradient of an expression at a point",
		Long: `Compute every partial derivative of an expression at a point. The
gradient comes back as a down tuple: partials follow the binding order
given with --at, and the tuple contracts with an up tuple of
displacements to give a directional derivative.

Exit codes:
  0 - Gradient computed
  1 - Arithmetic fault at the evaluation point
  2 - Command error (parse failure, unbound variables)

Examples:
  epsilon grad "x^2 * y + y^3" --at x=2,y=3
  epsilon grad "sin(x)*cos(y)" --at x=0.5,y=1 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrad(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", "variable bindings, e.g. x=2,y=3")
	cmd.MarkFlagRequired("at")

	return cmd
}

func runGrad(opts *GradOptions, src string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	e, err := expr.Parse(src)
	if err != nil {
		return evalFailure(out, err)
	}

	bindings, err := ParsePoint(opts.At)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --at", err)
	}

	f, err := e.Bind(names(bindings)...)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot bind", err)
	}

	grad, err := diffop.GradientAt(f, args(bindings)...)
	if err != nil {
		return evalFailure(out, err)
	}

	if opts.Format == "json" {
		items := grad.Items()
		partials := make([]float64, len(items))
		for i, s := range items {
			partials[i] = dual.Float64(s)
		}
		return out.Success(GradResult{
			Expr:     src,
			At:       bindingMap(bindings),
			Vars:     names(bindings),
			Partials: partials,
		})
	}
	return out.Success(render.TupleText(grad))
}
