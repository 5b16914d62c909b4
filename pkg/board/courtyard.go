package board

import (
	"fmt"

	"github.com/leapstack-labs/boardcheck/pkg/geom"
)

// Default outline assembly tolerances in nanometres.
const (
	DefaultMaxError        = 5_000
	DefaultChainingEpsilon = 20_000
)

// OutlineOptions controls how courtyard graphics are turned into polygons.
type OutlineOptions struct {
	// MaxError is the largest allowed distance between an arc and its chords.
	MaxError int64
	// ChainingEpsilon is the distance under which two endpoints are joined.
	ChainingEpsilon int64
}

// DefaultOutlineOptions returns the default tolerances.
func DefaultOutlineOptions() OutlineOptions {
	return OutlineOptions{
		MaxError:        DefaultMaxError,
		ChainingEpsilon: DefaultChainingEpsilon,
	}
}

// Courtyard is the keep-out area of a footprint on each side. A courtyard
// is either fully built, with bounding boxes cached, or not built at all.
type Courtyard struct {
	Front *geom.PolySet
	Back  *geom.PolySet
}

// OnSide returns the polygon set of one side.
func (c Courtyard) OnSide(s Side) *geom.PolySet {
	if s == Back {
		return c.Back
	}
	return c.Front
}

// IsEmpty reports whether neither side has an outline.
func (c Courtyard) IsEmpty() bool {
	return c.Front.OutlineCount() == 0 && c.Back.OutlineCount() == 0
}

// BuildCourtyard assembles both courtyard layers of a footprint. A failure on
// either side fails the whole build.
func BuildCourtyard(fp *Footprint, opts OutlineOptions) (Courtyard, error) {
	front, err := buildLayer(fp, LayerFrontCourtyard, opts)
	if err != nil {
		return Courtyard{}, err
	}
	back, err := buildLayer(fp, LayerBackCourtyard, opts)
	if err != nil {
		return Courtyard{}, err
	}
	front.BuildBBoxCaches()
	back.BuildBBoxCaches()
	return Courtyard{Front: front, Back: back}, nil
}

func buildLayer(fp *Footprint, layer Layer, opts OutlineOptions) (*geom.PolySet, error) {
	shapes, err := fp.ShapesOn(layer)
	if err != nil {
		return nil, fmt.Errorf("footprint %s: %w", fp.Label(), err)
	}
	ps, err := geom.BuildClosedOutline(shapes, opts.MaxError, opts.ChainingEpsilon)
	if err != nil {
		return nil, fmt.Errorf("footprint %s %s: %w", fp.Label(), layer, err)
	}
	return ps, nil
}
