// Package board provides the read-only board model the design rule checks run
// against: footprints, their drawing primitives per layer, and courtyards
// derived from them.
package board

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/tiendc/go-deepcopy"

	"github.com/leapstack-labs/boardcheck/pkg/geom"
)

var (
	// ErrDuplicateFootprint is returned when two footprints share an ID.
	ErrDuplicateFootprint = errors.New("duplicate footprint id")
	// ErrEmptyID is returned when a footprint has no ID.
	ErrEmptyID = errors.New("footprint id is empty")
)

// Side is the board side a footprint is mounted on.
type Side int

const (
	Front Side = iota
	Back
)

// String returns "front" or "back".
func (s Side) String() string {
	if s == Back {
		return "back"
	}
	return "front"
}

// ParseSide converts a string to a Side. The empty string is Front.
func ParseSide(s string) (Side, error) {
	switch s {
	case "", "front", "F", "top":
		return Front, nil
	case "back", "B", "bottom":
		return Back, nil
	default:
		return Front, fmt.Errorf("unknown board side %q", s)
	}
}

// Footprint is a placed component.
type Footprint struct {
	ID        string
	Reference string
	Position  geom.Point
	Side      Side
	Graphics  []Graphic
}

// GraphicsOn returns the graphics drawn on the given layer, in order.
func (f *Footprint) GraphicsOn(layer Layer) []Graphic {
	var out []Graphic
	for _, g := range f.Graphics {
		if g.Layer == layer {
			out = append(out, g)
		}
	}
	return out
}

// ShapesOn returns the geometry of the graphics on the given layer.
func (f *Footprint) ShapesOn(layer Layer) ([]geom.Shape, error) {
	graphics := f.GraphicsOn(layer)
	shapes := make([]geom.Shape, 0, len(graphics))
	for i, g := range graphics {
		s, err := g.ToShape()
		if err != nil {
			return nil, fmt.Errorf("graphic %d on %s: %w", i, layer, err)
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

// Label returns the reference designator, or the ID when there is none.
func (f *Footprint) Label() string {
	if f.Reference != "" {
		return f.Reference
	}
	return f.ID
}

// Board is an ordered collection of footprints. Iteration order is insertion
// order and never changes. The zero value is an unnamed empty board.
type Board struct {
	name       string
	footprints []*Footprint
	byID       map[string]*Footprint
}

// New creates an empty board.
func New(name string) *Board {
	return &Board{
		name: name,
		byID: make(map[string]*Footprint),
	}
}

// Name returns the board name.
func (b *Board) Name() string {
	return b.name
}

// Add appends a footprint.
func (b *Board) Add(fp *Footprint) error {
	if fp.ID == "" {
		return ErrEmptyID
	}
	if _, exists := b.byID[fp.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateFootprint, fp.ID)
	}
	if b.byID == nil {
		b.byID = make(map[string]*Footprint)
	}
	b.footprints = append(b.footprints, fp)
	b.byID[fp.ID] = fp
	return nil
}

// Footprints returns the footprints in board order.
func (b *Board) Footprints() []*Footprint {
	out := make([]*Footprint, len(b.footprints))
	copy(out, b.footprints)
	return out
}

// Footprint looks up a footprint by ID.
func (b *Board) Footprint(id string) (*Footprint, bool) {
	fp, ok := b.byID[id]
	return fp, ok
}

// Len returns the number of footprints.
func (b *Board) Len() int {
	return len(b.footprints)
}

// Snapshot returns a deep copy of the board. Checks run against a snapshot so
// later edits to the live board never race with them.
func (b *Board) Snapshot() (*Board, error) {
	var fps []*Footprint
	if err := deepcopy.Copy(&fps, &b.footprints); err != nil {
		return nil, fmt.Errorf("failed to snapshot board %q: %w", b.name, err)
	}

	snap := New(b.name)
	for _, fp := range fps {
		if err := snap.Add(fp); err != nil {
			return nil, err
		}
	}
	return snap, nil
}

// Hash returns a content hash of the board, stable across loads of the same
// data. It identifies board revisions in the run history.
func (b *Board) Hash() uint64 {
	h := xxhash.New()
	buf := make([]byte, 0, 64)
	num := func(v int64) {
		buf = strconv.AppendInt(buf[:0], v, 10)
		buf = append(buf, ',')
		_, _ = h.Write(buf)
	}
	str := func(s string) {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}
	point := func(p geom.Point) {
		num(p.X)
		num(p.Y)
	}

	str(b.name)
	for _, fp := range b.footprints {
		str(fp.ID)
		str(fp.Reference)
		point(fp.Position)
		num(int64(fp.Side))
		for _, g := range fp.Graphics {
			str(string(g.Shape))
			str(string(g.Layer))
			point(g.Start)
			point(g.End)
			point(g.Mid)
			point(g.Center)
			num(g.Radius)
			num(g.Width)
			for _, p := range g.Points {
				point(p)
			}
		}
	}
	return h.Sum64()
}
