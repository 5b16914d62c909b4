// Package loader reads board snapshots from YAML files.
//
// A snapshot lists footprints and their graphics:
//
//	name: demo
//	units: mm
//	footprints:
//	  - reference: U1
//	    position: [5, 5]
//	    side: front
//	    graphics:
//	      - shape: rect
//	        layer: F.CrtYd
//	        start: [0, 0]
//	        end: [10, 10]
//
// Coordinates are converted to integer nanometres once, here.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/boardcheck/pkg/board"
	"github.com/leapstack-labs/boardcheck/pkg/geom"
)

// MaxCoordinate is the largest coordinate magnitude accepted, in nanometres.
// It matches the 32-bit board range of KiCad.
const MaxCoordinate = math.MaxInt32

// Units accepted in the units field.
const (
	UnitsMM = "mm"
	UnitsNM = "nm"
)

// boardYAML is the on-disk layout of a snapshot.
type boardYAML struct {
	Name       string          `yaml:"name"`
	Units      string          `yaml:"units"`
	Footprints []footprintYAML `yaml:"footprints"`
}

type footprintYAML struct {
	ID        string        `yaml:"id"`
	Reference string        `yaml:"reference"`
	Position  []float64     `yaml:"position"`
	Side      string        `yaml:"side"`
	Graphics  []graphicYAML `yaml:"graphics"`
}

type graphicYAML struct {
	Shape  string      `yaml:"shape"`
	Layer  string      `yaml:"layer"`
	Start  []float64   `yaml:"start"`
	End    []float64   `yaml:"end"`
	Mid    []float64   `yaml:"mid"`
	Center []float64   `yaml:"center"`
	Radius float64     `yaml:"radius"`
	Points [][]float64 `yaml:"points"`
	Width  float64     `yaml:"width"`
}

// Load reads and parses the snapshot at path. A board without a name is
// named after the file.
func Load(path string) (*board.Board, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}
	return Parse(data, path)
}

// Parse parses a snapshot. source names the input in error messages.
func Parse(data []byte, source string) (*board.Board, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc boardYAML
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{File: source, Message: "empty board file"}
		}
		return nil, &ParseError{File: source, Message: fmt.Sprintf("invalid YAML: %v", err)}
	}

	scale, err := unitScale(doc.Units)
	if err != nil {
		return nil, &ParseError{File: source, Message: err.Error()}
	}

	name := doc.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}

	b := board.New(name)
	for i, fy := range doc.Footprints {
		fp, err := fy.toFootprint(scale)
		if err != nil {
			return nil, &ParseError{File: source, Message: fmt.Sprintf("footprint %d (%s): %v", i, fy.Reference, err)}
		}
		if err := b.Add(fp); err != nil {
			return nil, &ParseError{File: source, Message: fmt.Sprintf("footprint %d: %v", i, err)}
		}
	}
	return b, nil
}

func unitScale(units string) (float64, error) {
	switch strings.ToLower(units) {
	case "", UnitsMM:
		return 1_000_000, nil
	case UnitsNM:
		return 1, nil
	default:
		return 0, fmt.Errorf("invalid units %q, must be one of: mm, nm", units)
	}
}

func (fy footprintYAML) toFootprint(scale float64) (*board.Footprint, error) {
	if fy.Reference == "" && fy.ID == "" {
		return nil, errors.New("reference or id is required")
	}
	id := fy.ID
	if id == "" {
		id = fy.Reference
	}

	side, err := board.ParseSide(fy.Side)
	if err != nil {
		return nil, err
	}

	fp := &board.Footprint{ID: id, Reference: fy.Reference, Side: side}
	if fy.Position != nil {
		if fp.Position, err = toPoint(fy.Position, scale); err != nil {
			return nil, fmt.Errorf("position: %w", err)
		}
	}

	for j, gy := range fy.Graphics {
		g, err := gy.toGraphic(scale)
		if err != nil {
			return nil, fmt.Errorf("graphic %d: %w", j, err)
		}
		fp.Graphics = append(fp.Graphics, g)
	}
	return fp, nil
}

func (gy graphicYAML) toGraphic(scale float64) (board.Graphic, error) {
	layer := board.Layer(gy.Layer)
	if !layer.Valid() {
		return board.Graphic{}, fmt.Errorf("unknown layer %q", gy.Layer)
	}
	width, err := toNM(gy.Width, scale)
	if err != nil {
		return board.Graphic{}, fmt.Errorf("width: %w", err)
	}
	g := board.Graphic{
		Shape: board.ShapeKind(gy.Shape),
		Layer: layer,
		Width: width,
	}

	type field struct {
		name string
		raw  []float64
		dst  *geom.Point
	}

	// Each shape requires its own fields.
	var required []field
	switch g.Shape {
	case board.ShapeSegment, board.ShapeRect:
		required = []field{{"start", gy.Start, &g.Start}, {"end", gy.End, &g.End}}
	case board.ShapeArc:
		required = []field{{"start", gy.Start, &g.Start}, {"mid", gy.Mid, &g.Mid}, {"end", gy.End, &g.End}}
	case board.ShapeCircle:
		required = []field{{"center", gy.Center, &g.Center}}
		if gy.Radius < 0 {
			return board.Graphic{}, fmt.Errorf("negative radius %v", gy.Radius)
		}
		if g.Radius, err = toNM(gy.Radius, scale); err != nil {
			return board.Graphic{}, fmt.Errorf("radius: %w", err)
		}
	case board.ShapePolygon:
		if len(gy.Points) == 0 {
			return board.Graphic{}, errors.New("polygon needs points")
		}
		for k, p := range gy.Points {
			pt, err := toPoint(p, scale)
			if err != nil {
				return board.Graphic{}, fmt.Errorf("point %d: %w", k, err)
			}
			g.Points = append(g.Points, pt)
		}
		return g, nil
	default:
		return board.Graphic{}, fmt.Errorf("unknown shape %q, must be one of: segment, arc, circle, rect, polygon", gy.Shape)
	}

	for _, f := range required {
		if f.raw == nil {
			return board.Graphic{}, fmt.Errorf("%s requires %q", g.Shape, f.name)
		}
		pt, err := toPoint(f.raw, scale)
		if err != nil {
			return board.Graphic{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = pt
	}
	return g, nil
}

func toPoint(v []float64, scale float64) (geom.Point, error) {
	if len(v) != 2 {
		return geom.Point{}, fmt.Errorf("expected [x, y], got %d values", len(v))
	}
	x, err := toNM(v[0], scale)
	if err != nil {
		return geom.Point{}, err
	}
	y, err := toNM(v[1], scale)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Pt(x, y), nil
}

func toNM(v, scale float64) (int64, error) {
	nm := math.Round(v * scale)
	if math.IsNaN(nm) || math.IsInf(nm, 0) {
		return 0, fmt.Errorf("value %v is not a finite number", v)
	}
	if math.Abs(nm) > MaxCoordinate {
		return 0, fmt.Errorf("value %v is out of range, limit is ±%d nm", v, MaxCoordinate)
	}
	return int64(nm), nil
}

// ParseError represents a board file that could not be read.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}
