package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/boardcheck/internal/cli/config"
	"github.com/leapstack-labs/boardcheck/internal/cli/output"
	"github.com/leapstack-labs/boardcheck/internal/loader"
	"github.com/leapstack-labs/boardcheck/internal/state"
	"github.com/leapstack-labs/boardcheck/pkg/drc"
	"github.com/leapstack-labs/boardcheck/pkg/drc/providers"
)

// ErrViolationsFound is returned when a check finds violations at or above
// the --fail-on severity.
var ErrViolationsFound = errors.New("violations found")

// Fail-on thresholds.
const (
	FailOnError   = "error"
	FailOnWarning = "warning"
	FailOnNone    = "none"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format      string         // Output format override
	Save        bool           // Record the run in the state database
	FailOn      string         // error, warning or none
	ErrorLimits map[string]int // Per-code limits, merged over the config
	Disable     []string       // Provider names to skip
	MetricsFile string         // Write engine metrics here in text format
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check <board.yaml>",
		Short: "Run design rule checks on a board",
		Long: `Check footprint courtyards on a board.

Reports footprints with missing or malformed courtyards and pairs of
footprints whose courtyards overlap on the same side of the board.

Output adapts to environment:
  - Terminal: Styled tables with a progress line
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Check a board
  boardcheck check board.yaml

  # Record the run and mark violations new since the last saved run
  boardcheck check board.yaml --save

  # Report at most 5 overlaps
  boardcheck check board.yaml --error-limit courtyards_overlap=5

  # Fail only on errors, as JSON
  boardcheck check board.yaml --fail-on error -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "Record the run in the state database")
	cmd.Flags().StringVar(&opts.FailOn, "fail-on", FailOnError, "Exit non-zero on: error, warning, none")
	cmd.Flags().StringToIntVar(&opts.ErrorLimits, "error-limit", nil, "Per-code violation limit, e.g. courtyards_overlap=5")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Provider names to disable")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write engine metrics to this file")

	_ = cmd.RegisterFlagCompletionFunc("fail-on", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{FailOnError, FailOnWarning, FailOnNone}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("disable", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return providers.NewRegistry().Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions, path string) error {
	if err := validateFailOn(opts.FailOn); err != nil {
		return err
	}
	cc := NewCommandContext(cmd, opts.Format)

	rep, err := checkBoard(cmd.Context(), cc, opts, path)
	if err != nil {
		return err
	}
	if err := cc.Renderer.RenderReport(*rep); err != nil {
		return err
	}
	if shouldFail(rep.Result, opts.FailOn) {
		return ErrViolationsFound
	}
	return nil
}

func validateFailOn(v string) error {
	switch v {
	case FailOnError, FailOnWarning, FailOnNone:
		return nil
	}
	return fmt.Errorf("invalid --fail-on %q, must be one of: error, warning, none", v)
}

func shouldFail(res *drc.Result, failOn string) bool {
	switch failOn {
	case FailOnError:
		return res.Errors > 0
	case FailOnWarning:
		return res.Errors+res.Warnings > 0
	default:
		return false
	}
}

// buildEngineConfig applies command flags over the configured engine options.
func buildEngineConfig(cfg *config.Config, opts *CheckOptions, logger *slog.Logger) (drc.Config, error) {
	ec := cfg.EngineConfig(logger)

	if len(opts.ErrorLimits) > 0 {
		if ec.ErrorLimits == nil {
			ec.ErrorLimits = make(map[drc.ErrorCode]int, len(opts.ErrorLimits))
		}
		for key, limit := range opts.ErrorLimits {
			code, ok := drc.ParseErrorCode(key)
			if !ok {
				return drc.Config{}, fmt.Errorf("--error-limit: unknown error code %q", key)
			}
			if limit < 0 {
				return drc.Config{}, fmt.Errorf("--error-limit: negative limit for %q", key)
			}
			ec.ErrorLimits[code] = limit
		}
	}

	for _, name := range opts.Disable {
		if !slices.Contains(ec.DisabledProviders, name) {
			ec.DisabledProviders = append(ec.DisabledProviders, name)
		}
	}
	return ec, nil
}

// checkBoard loads and checks one board file, optionally recording the run.
func checkBoard(ctx context.Context, cc *CommandContext, opts *CheckOptions, path string) (*output.Report, error) {
	b, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	ec, err := buildEngineConfig(cc.Cfg, opts, cc.Logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	ec.Metrics = drc.NewMetrics(reg)

	r := cc.Renderer
	var progress *output.Progress
	if r.IsTTY() && r.EffectiveMode() == output.ModeText {
		progress = r.NewProgress()
		ec.Observer = progress
	}

	startedAt := time.Now()
	res, err := drc.NewEngine(providers.NewRegistry(), ec).Run(ctx, b)
	if progress != nil {
		progress.Done()
	}
	if err != nil {
		return nil, err
	}

	rep := &output.Report{Result: res}
	if opts.Save {
		if err := saveRun(ctx, cc, rep, startedAt); err != nil {
			return nil, err
		}
	}

	if opts.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.MetricsFile, reg); err != nil {
			return nil, fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return rep, nil
}

func saveRun(ctx context.Context, cc *CommandContext, rep *output.Report, startedAt time.Time) error {
	store, err := cc.OpenStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	previous, err := store.PreviousFingerprints(ctx, rep.Result.Board)
	if err != nil {
		return err
	}
	rep.New = state.MarkNew(previous, rep.Result.Violations)

	run, err := store.SaveRun(ctx, rep.Result, startedAt)
	if err != nil {
		return err
	}
	rep.RunID = run.ID
	cc.Logger.Debug("run saved", slog.String("id", run.ID), slog.String("path", store.Path()))
	return nil
}
