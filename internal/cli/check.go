package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/epsilon/internal/scenario"
	"github.com/roach88/epsilon/internal/store"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	DB string // optional run-history database path
}

// CheckResult is the JSON payload for a check run.
type CheckResult struct {
	Scenarios []scenario.Result `json:"scenarios"`
	Passed    int               `json:"passed"`
	Failed    int               `json:"failed"`
	Total     int               `json:"total"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <scenario-file-or-dir>",
		Short: "Run derivative conformance scenarios",
		Long: `Run scenario files that pin the expected derivatives of expressions
at given points, and report which cases hold. With --db, each run is
recorded in a history database for later inspection.

Exit codes:
  0 - All scenarios passed
  1 - One or more cases failed
  2 - Command error (missing files, unparseable scenarios)

Examples:
  epsilon check ./scenarios
  epsilon check scenarios/quadratic.yaml --verbose
  epsilon check ./scenarios --db runs.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "record runs in this history database")

	return cmd
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	scenarios, err := loadScenarios(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot load scenarios", err)
	}

	var db *store.Store
	if opts.DB != "" {
		db, err = store.Open(opts.DB)
		if err != nil {
			return WrapExitError(ExitCommandError, "cannot open history database", err)
		}
		defer db.Close()
	}

	result := CheckResult{Total: len(scenarios)}
	for _, s := range scenarios {
		res, err := scenario.Run(s)
		if err != nil {
			return WrapExitError(ExitCommandError, "cannot run scenario", err)
		}

		if db != nil {
			rec, err := db.RecordRun(cmd.Context(), res)
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot record run", err)
			}
			out.VerboseLog("recorded run %s", rec.Token)
		}

		result.Scenarios = append(result.Scenarios, *res)
		if res.Passed {
			result.Passed++
		} else {
			result.Failed++
		}

		if opts.Format != "json" {
			printScenarioResult(out, res)
		}
	}

	if opts.Format == "json" {
		if err := out.Success(result); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out.Writer, "\n%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.Total))
	}
	return nil
}

func loadScenarios(path string) ([]*scenario.Scenario, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return scenario.LoadDir(path)
	}
	s, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	return []*scenario.Scenario{s}, nil
}

func printScenarioResult(out *OutputFormatter, res *scenario.Result) {
	if res.Passed {
		fmt.Fprintf(out.Writer, "PASS %s (%d cases)\n", res.Name, len(res.Cases))
	} else {
		fmt.Fprintf(out.Writer, "FAIL %s (%d of %d cases failed)\n", res.Name, res.Failed(), len(res.Cases))
	}

	for _, c := range res.Cases {
		if c.Pass && !out.Verbose {
			continue
		}
		status := "ok"
		if !c.Pass {
			status = "FAIL"
		}
		if c.Error != "" {
			fmt.Fprintf(out.Writer, "  %s  at=%v order=%d: %s\n", status, c.At, c.Order, c.Error)
			continue
		}
		fmt.Fprintf(out.Writer, "  %s  at=%v order=%d: got %v, want %v (tol %v)\n",
			status, c.At, c.Order, c.Got, c.Want, c.Tol)
	}
}
