// Package courtyard implements the courtyard clearance test: every footprint
// must have a well-formed courtyard, and no two courtyards on the same side
// of the board may overlap.
package courtyard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/looplab/fsm"

	"github.com/leapstack-labs/boardcheck/pkg/board"
	"github.com/leapstack-labs/boardcheck/pkg/drc"
	"github.com/leapstack-labs/boardcheck/pkg/geom"
)

// Name is the registry name of the provider.
const Name = "courtyard_clearance"

// Run phases.
const (
	stateStart       = "start"
	stateDefinitions = "definitions"
	stateOverlap     = "overlap"
	stateDone        = "done"

	eventCheckDefinitions = "check_definitions"
	eventCheckOverlap     = "check_overlap"
	eventFinish           = "finish"
)

// Provider tests courtyard definitions and courtyard overlap.
type Provider struct{}

// New creates the provider. It matches drc.Factory.
func New() drc.Provider {
	return &Provider{}
}

// Name implements drc.Provider.
func (p *Provider) Name() string { return Name }

// Description implements drc.Provider.
func (p *Provider) Description() string { return "Tests components' courtyard clearance" }

// MatchingConstraints implements drc.Provider.
func (p *Provider) MatchingConstraints() []drc.ConstraintType {
	return []drc.ConstraintType{drc.ConstraintCourtyardClearance}
}

// Run checks definitions first, then overlap. Per-footprint defects are
// reported as violations; the run only stops early on cancellation or when
// the global violation cap is reached.
func (p *Provider) Run(ctx context.Context, pass *drc.Pass) bool {
	c := &checker{pass: pass, logger: pass.Logger()}

	machine := fsm.NewFSM(
		stateStart,
		fsm.Events{
			{Name: eventCheckDefinitions, Src: []string{stateStart}, Dst: stateDefinitions},
			{Name: eventCheckOverlap, Src: []string{stateDefinitions}, Dst: stateOverlap},
			{Name: eventFinish, Src: []string{stateDefinitions, stateOverlap}, Dst: stateDone},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				c.logger.Debug("courtyard check phase", slog.String("from", e.Src), slog.String("to", e.Dst))
			},
			"enter_" + stateDefinitions: func(ctx context.Context, _ *fsm.Event) {
				c.testFootprintCourtyardDefinitions(ctx)
			},
			"enter_" + stateOverlap: func(ctx context.Context, _ *fsm.Event) {
				c.testOverlappingComponentCourtyards(ctx)
			},
		},
	)

	for _, event := range []string{eventCheckDefinitions, eventCheckOverlap, eventFinish} {
		if ctx.Err() != nil {
			return false
		}
		if c.stopAll && event != eventFinish {
			continue
		}
		if err := machine.Event(ctx, event); err != nil {
			c.logger.Error("courtyard check transition failed", slog.String("event", event), slog.Any("error", err))
			return false
		}
	}
	return machine.Current() == stateDone && ctx.Err() == nil
}

// checker holds the state of one run.
type checker struct {
	pass    *drc.Pass
	logger  *slog.Logger
	stopAll bool
}

func (c *checker) testFootprintCourtyardDefinitions(ctx context.Context) {
	c.pass.ReportStage(drc.StageCourtyardDefinitions, 0, 2)

	for _, fp := range c.pass.Footprints() {
		if ctx.Err() != nil {
			return
		}

		cy, err := c.pass.Courtyard(fp)
		if err != nil {
			c.logger.Debug("malformed courtyard", slog.String("footprint", fp.Label()), slog.Any("error", err))
			if c.pass.IsErrorLimitExceeded(drc.CodeMalformedCourtyard) {
				continue
			}
			v := c.pass.Create(drc.CodeMalformedCourtyard)
			v.SetQualifier(c.pass.T(qualifierFor(err)))
			v.SetItems(fp)
			if c.pass.Report(v, fp.Position) == drc.StopAll {
				c.stopAll = true
				return
			}
			continue
		}

		if cy.IsEmpty() {
			if c.pass.IsErrorLimitExceeded(drc.CodeMissingCourtyard) {
				continue
			}
			v := c.pass.Create(drc.CodeMissingCourtyard)
			v.SetItems(fp)
			if c.pass.Report(v, fp.Position) == drc.StopAll {
				c.stopAll = true
				return
			}
		}
	}
}

type candidate struct {
	fp *board.Footprint
	cy board.Courtyard
}

func (c *checker) testOverlappingComponentCourtyards(ctx context.Context) {
	c.pass.ReportStage(drc.StageCourtyardOverlap, 1, 2)

	if c.pass.IsErrorLimitExceeded(drc.CodeOverlappingFootprints) {
		return
	}

	var fps []candidate
	for _, fp := range c.pass.Footprints() {
		cy, err := c.pass.Courtyard(fp)
		if err != nil || cy.IsEmpty() {
			continue
		}
		fps = append(fps, candidate{fp: fp, cy: cy})
	}

	for i := range fps {
		if ctx.Err() != nil {
			return
		}
		for j := i + 1; j < len(fps); j++ {
			a, b := fps[i], fps[j]
			pos, ok := c.overlap(a.cy, b.cy)
			if !ok {
				continue
			}

			v := c.pass.Create(drc.CodeOverlappingFootprints)
			v.SetItems(a.fp, b.fp)
			if c.pass.Report(v, pos) == drc.StopAll {
				c.stopAll = true
				return
			}
			if c.pass.IsErrorLimitExceeded(drc.CodeOverlappingFootprints) {
				return
			}
		}
	}
}

// overlap tests the front side, then the back side. The position is the
// first vertex of the first overlapping area found.
func (c *checker) overlap(a, b board.Courtyard) (geom.Point, bool) {
	metrics := c.pass.Metrics()
	for _, side := range []board.Side{board.Front, board.Back} {
		pa, pb := a.OnSide(side), b.OnSide(side)
		if pa.OutlineCount() == 0 || pb.OutlineCount() == 0 {
			continue
		}
		if !pa.BBoxFromCaches().Intersects(pb.BBoxFromCaches()) {
			metrics.BBoxReject()
			continue
		}

		metrics.BooleanOp("intersection")
		common := geom.BooleanIntersection(pa, pb, geom.ModeFast)
		if common.OutlineCount() > 0 {
			return common.Vertex(0, 0, -1), true
		}
		// Overlaps narrower than one nanometre round away in the intersection.
		if pos, ok := geom.Overlaps(pa, pb); ok {
			return pos, true
		}
	}
	return geom.Point{}, false
}

func qualifierFor(err error) string {
	if errors.Is(err, geom.ErrDegenerate) {
		return drc.QualifierDegenerate
	}
	return drc.QualifierNotClosed
}
