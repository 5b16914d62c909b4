package drc

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/boardcheck/pkg/board"
	"github.com/leapstack-labs/boardcheck/pkg/geom"
)

// Provider is a design rule test. A provider is stateless between runs: all
// inputs arrive through the pass.
type Provider interface {
	// Name returns the unique identifier, e.g. "courtyard_clearance".
	Name() string

	// Description returns a human-readable description.
	Description() string

	// MatchingConstraints returns the constraints this provider evaluates.
	MatchingConstraints() []ConstraintType

	// Run performs the checks and reports violations through the pass.
	// It returns false if the provider could not complete.
	Run(ctx context.Context, pass *Pass) bool
}

// Factory creates a provider instance.
type Factory func() Provider

// Pass is the per-provider view of one check run. It bundles the read-only
// board snapshot, the shared reporter and the shared courtyard cache.
type Pass struct {
	provider   string
	board      *board.Board
	options    board.OutlineOptions
	reporter   *Reporter
	courtyards *CourtyardCache
	metrics    *Metrics
	logger     *slog.Logger
}

// PassConfig holds the shared state a pass is built from.
type PassConfig struct {
	Board      *board.Board
	Options    board.OutlineOptions
	Reporter   *Reporter
	Courtyards *CourtyardCache
	Metrics    *Metrics
	Logger     *slog.Logger
}

// NewPass creates the view of a pass for one provider. Missing reporter,
// cache and logger are replaced by defaults, which is convenient in tests.
func NewPass(provider string, cfg PassConfig) *Pass {
	if cfg.Options == (board.OutlineOptions{}) {
		cfg.Options = board.DefaultOutlineOptions()
	}
	if cfg.Reporter == nil {
		cfg.Reporter = NewReporter(Limits{}, nil, nil, cfg.Metrics)
	}
	if cfg.Courtyards == nil {
		cfg.Courtyards = NewCourtyardCache(cfg.Options, cfg.Metrics)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Pass{
		provider:   provider,
		board:      cfg.Board,
		options:    cfg.Options,
		reporter:   cfg.Reporter,
		courtyards: cfg.Courtyards,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger.With("provider", provider),
	}
}

// Board returns the board snapshot under test.
func (p *Pass) Board() *board.Board { return p.board }

// Footprints returns the footprints in board order.
func (p *Pass) Footprints() []*board.Footprint {
	if p.board == nil {
		return nil
	}
	return p.board.Footprints()
}

// Options returns the outline assembly tolerances.
func (p *Pass) Options() board.OutlineOptions { return p.options }

// Logger returns a logger tagged with the provider name.
func (p *Pass) Logger() *slog.Logger { return p.logger }

// Metrics returns the instrumentation sink, which may be nil.
func (p *Pass) Metrics() *Metrics { return p.metrics }

// Courtyard returns the memoized courtyard of a footprint.
func (p *Pass) Courtyard(fp *board.Footprint) (board.Courtyard, error) {
	return p.courtyards.Get(fp)
}

// Create returns a new violation of the given kind.
func (p *Pass) Create(code ErrorCode) *Violation {
	v := p.reporter.Create(code)
	v.Provider = p.provider
	return v
}

// IsErrorLimitExceeded reports whether the kind may no longer be reported.
// Check it before building a violation.
func (p *Pass) IsErrorLimitExceeded(code ErrorCode) bool {
	return p.reporter.IsErrorLimitExceeded(code)
}

// Report records the violation at pos.
func (p *Pass) Report(v *Violation, pos geom.Point) LoopControl {
	v.Provider = p.provider
	ctl := p.reporter.Report(v, pos)
	p.logger.Debug("violation reported",
		slog.String("code", v.Code.String()),
		slog.Any("items", v.References()),
		slog.String("decision", ctl.String()))
	return ctl
}

// ReportStage announces progress through the provider's phases.
func (p *Pass) ReportStage(label string, current, total int) {
	p.logger.Debug("stage", slog.String("label", label), slog.Int("current", current), slog.Int("total", total))
	p.reporter.ReportStage(p.provider, label, current, total)
}

// T translates a catalog key, e.g. a message qualifier.
func (p *Pass) T(key string) string {
	return p.reporter.T(key)
}
