package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/epsilon/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string // history database path
	Limit int    // max runs to show
}

// HistoryEntry is the JSON payload for one recorded run.
type HistoryEntry struct {
	Token       string `json:"token"`
	CreatedAt   string `json:"created_at"`
	Scenario    string `json:"scenario"`
	Expr        string `json:"expr"`
	CasesTotal  int    `json:"cases_total"`
	CasesFailed int    `json:"cases_failed"`
	Passed      bool   `json:"passed"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded check runs",
		Long: `List check runs recorded with epsilon check --db, newest first.

Exit codes:
  0 - Listed successfully
  2 - Command error (database not found)

Examples:
  epsilon history --db runs.db
  epsilon history --db runs.db --limit 5 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "history database path")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 for all)")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	db, err := store.Open(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot open history database", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot list runs", err)
	}

	if opts.Format == "json" {
		entries := make([]HistoryEntry, 0, len(runs))
		for _, r := range runs {
			entries = append(entries, HistoryEntry{
				Token:       r.Token,
				CreatedAt:   r.CreatedAt.Format(time.RFC3339),
				Scenario:    r.Scenario,
				Expr:        r.Expr,
				CasesTotal:  r.CasesTotal,
				CasesFailed: r.CasesFailed,
				Passed:      r.Passed,
			})
		}
		return out.Success(entries)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out.Writer, "No runs recorded.")
		return nil
	}

	for _, r := range runs {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(out.Writer, "%s  %s  %s  %s  %d/%d cases\n",
			r.CreatedAt.Format(time.RFC3339),
			shortToken(r.Token),
			status,
			r.Scenario,
			r.CasesTotal-r.CasesFailed,
			r.CasesTotal,
		)
		if out.Verbose {
			fmt.Fprintf(out.Writer, "    expr: %s (var %s)\n", r.Expr, r.Var)
		}
	}
	return nil
}

// shortToken abbreviates a run token for table output.
func shortToken(token string) string {
	if len(token) > 8 {
		return token[:8]
	}
	return token
}
