package drc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/boardcheck/pkg/board"
)

// ErrNilBoard is returned when Run is called without a board.
var ErrNilBoard = errors.New("board is nil")

// Config controls an engine.
type Config struct {
	// Options are the outline assembly tolerances.
	Options board.OutlineOptions
	// ErrorLimits caps the violations reported per kind.
	ErrorLimits map[ErrorCode]int
	// DefaultErrorLimit applies to kinds not in ErrorLimits (0 = unlimited).
	DefaultErrorLimit int
	// MaxViolations caps the total per run (0 = unlimited).
	MaxViolations int
	// Severities overrides the default severity per kind.
	Severities map[ErrorCode]Severity
	// DisabledProviders lists provider names to skip.
	DisabledProviders []string
	// Parallelism is the number of providers run at once (<= 1 = sequential).
	Parallelism int
	// Language selects the message catalog, e.g. "de".
	Language string

	Logger   *slog.Logger
	Metrics  *Metrics
	Observer StageObserver
}

// ProviderResult summarizes one provider's run.
type ProviderResult struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Completed   bool          `json:"completed"`
	Duration    time.Duration `json:"duration"`
	Violations  int           `json:"violations"`
}

// Result is the outcome of one engine run.
type Result struct {
	Board      string           `json:"board"`
	BoardHash  string           `json:"board_hash"`
	Violations []Violation      `json:"violations"`
	Providers  []ProviderResult `json:"providers"`
	Suppressed []ErrorCode      `json:"suppressed,omitempty"`
	Errors     int              `json:"errors"`
	Warnings   int              `json:"warnings"`
	Duration   time.Duration    `json:"duration"`
}

// HasErrors reports whether any error-severity violation was found.
func (r *Result) HasErrors() bool {
	return r.Errors > 0
}

// Engine runs the registered providers against board snapshots.
type Engine struct {
	registry *Registry
	cfg      Config
	logger   *slog.Logger
}

// NewEngine creates an engine. A nil logger discards output.
func NewEngine(reg *Registry, cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Options == (board.OutlineOptions{}) {
		cfg.Options = board.DefaultOutlineOptions()
	}
	return &Engine{registry: reg, cfg: cfg, logger: logger}
}

type scheduled struct {
	index    int
	provider Provider
}

// Run checks a snapshot of b. Every run starts from fresh limit counters and
// an empty courtyard cache, so repeated runs over the same board give the
// same result.
func (e *Engine) Run(ctx context.Context, b *board.Board) (*Result, error) {
	if b == nil {
		return nil, ErrNilBoard
	}
	providers, err := e.enabledProviders()
	if err != nil {
		return nil, err
	}

	snap, err := b.Snapshot()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	e.cfg.Metrics.runStarted()
	e.logger.Debug("starting drc run",
		slog.String("board", snap.Name()),
		slog.Int("footprints", snap.Len()),
		slog.Int("providers", len(providers)))

	reporter := NewReporter(Limits{
		PerCode:       e.cfg.ErrorLimits,
		Default:       e.cfg.DefaultErrorLimit,
		MaxViolations: e.cfg.MaxViolations,
		Severities:    e.cfg.Severities,
	}, NewLocalizer(e.cfg.Language), e.cfg.Observer, e.cfg.Metrics)
	courtyards := NewCourtyardCache(e.cfg.Options, e.cfg.Metrics)

	results := make([]ProviderResult, len(providers))
	runOne := func(ctx context.Context, s scheduled) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		pass := NewPass(s.provider.Name(), PassConfig{
			Board:      snap,
			Options:    e.cfg.Options,
			Reporter:   reporter,
			Courtyards: courtyards,
			Metrics:    e.cfg.Metrics,
			Logger:     e.logger,
		})
		t0 := time.Now()
		ok := s.provider.Run(ctx, pass)
		d := time.Since(t0)
		e.cfg.Metrics.providerFinished(s.provider.Name(), d)
		results[s.index] = ProviderResult{
			Name:        s.provider.Name(),
			Description: s.provider.Description(),
			Completed:   ok,
			Duration:    d,
		}
		return nil
	}

	if e.cfg.Parallelism > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.cfg.Parallelism)
		for _, s := range providers {
			g.Go(func() error { return runOne(gctx, s) })
		}
		err = g.Wait()
	} else {
		for _, s := range providers {
			if err = runOne(ctx, s); err != nil {
				break
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("drc run canceled: %w", err)
	}

	res := &Result{
		Board:      snap.Name(),
		BoardHash:  fmt.Sprintf("%016x", snap.Hash()),
		Providers:  results,
		Suppressed: reporter.Suppressed(),
		Duration:   time.Since(start),
	}
	res.Violations = orderByProvider(reporter.Violations(), providers)
	for _, v := range res.Violations {
		switch v.Severity {
		case SeverityError:
			res.Errors++
		case SeverityWarning:
			res.Warnings++
		}
		for i := range res.Providers {
			if res.Providers[i].Name == v.Provider {
				res.Providers[i].Violations++
			}
		}
	}

	e.logger.Info("drc run complete",
		slog.String("board", res.Board),
		slog.Int("violations", len(res.Violations)),
		slog.Int("errors", res.Errors),
		slog.Int("warnings", res.Warnings),
		slog.Duration("duration", res.Duration))
	return res, nil
}

func (e *Engine) enabledProviders() ([]scheduled, error) {
	disabled := make(map[string]bool, len(e.cfg.DisabledProviders))
	for _, name := range e.cfg.DisabledProviders {
		if _, ok := e.registry.Get(name); !ok {
			return nil, &UnknownProviderError{Name: name, Available: e.registry.Names()}
		}
		disabled[name] = true
	}

	var out []scheduled
	for _, p := range e.registry.CreateAll() {
		if disabled[p.Name()] {
			e.logger.Debug("provider disabled", slog.String("provider", p.Name()))
			continue
		}
		out = append(out, scheduled{index: len(out), provider: p})
	}
	return out, nil
}

// orderByProvider sorts violations by provider registration order, keeping
// report order within a provider.
func orderByProvider(vs []Violation, providers []scheduled) []Violation {
	rank := make(map[string]int, len(providers))
	for _, s := range providers {
		rank[s.provider.Name()] = s.index
	}
	slices.SortStableFunc(vs, func(a, b Violation) int {
		return rank[a.Provider] - rank[b.Provider]
	})
	return vs
}
