package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/boardcheck/internal/cli/output"
	"github.com/leapstack-labs/boardcheck/pkg/drc"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Format string
	Board  string
	Limit  int
	RunID  string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved check runs",
		Long: `Show runs recorded with check --save.

Without --run, lists the most recent runs. With --run, shows the
violations of that run.`,
		Example: `  # Recent runs of every board
  boardcheck history

  # Recent runs of one board
  boardcheck history --board main-board --limit 5

  # Violations of one run
  boardcheck history --run 6f1c0a52-...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringVar(&opts.Board, "board", "", "Only show runs of this board")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "Maximum number of runs")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "Show the violations of this run")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	cc := NewCommandContext(cmd, opts.Format)
	ctx := cmd.Context()

	store, err := cc.OpenStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if opts.RunID == "" {
		runs, err := store.ListRuns(ctx, opts.Board, opts.Limit)
		if err != nil {
			return err
		}
		return cc.Renderer.RenderRuns(runs)
	}

	run, err := store.GetRun(ctx, opts.RunID)
	if err != nil {
		return err
	}
	vs, err := store.Violations(ctx, run.ID)
	if err != nil {
		return err
	}

	return cc.Renderer.RenderReport(output.Report{
		Result: &drc.Result{
			Board:      run.Board,
			BoardHash:  run.BoardHash,
			Violations: vs,
			Errors:     run.Errors,
			Warnings:   run.Warnings,
			Duration:   run.Duration,
		},
		RunID: run.ID,
	})
}
