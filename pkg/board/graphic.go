package board

import (
	"fmt"

	"github.com/leapstack-labs/boardcheck/pkg/geom"
)

// Layer is a board layer name in KiCad notation.
type Layer string

const (
	LayerFrontCourtyard Layer = "F.CrtYd"
	LayerBackCourtyard  Layer = "B.CrtYd"
	LayerFrontSilk      Layer = "F.SilkS"
	LayerBackSilk       Layer = "B.SilkS"
	LayerFrontFab       Layer = "F.Fab"
	LayerBackFab        Layer = "B.Fab"
	LayerEdgeCuts       Layer = "Edge.Cuts"
)

var knownLayers = map[Layer]bool{
	LayerFrontCourtyard: true,
	LayerBackCourtyard:  true,
	LayerFrontSilk:      true,
	LayerBackSilk:       true,
	LayerFrontFab:       true,
	LayerBackFab:        true,
	LayerEdgeCuts:       true,
}

// Valid reports whether the layer is one the model knows about.
func (l Layer) Valid() bool {
	return knownLayers[l]
}

// IsCourtyard reports whether the layer holds courtyard outlines.
func (l Layer) IsCourtyard() bool {
	return l == LayerFrontCourtyard || l == LayerBackCourtyard
}

// CourtyardLayer returns the courtyard layer of a side.
func CourtyardLayer(s Side) Layer {
	if s == Back {
		return LayerBackCourtyard
	}
	return LayerFrontCourtyard
}

// ShapeKind names the kind of a graphic primitive.
type ShapeKind string

const (
	ShapeSegment ShapeKind = "segment"
	ShapeArc     ShapeKind = "arc"
	ShapeCircle  ShapeKind = "circle"
	ShapeRect    ShapeKind = "rect"
	ShapePolygon ShapeKind = "polygon"
)

// Graphic is a drawing primitive of a footprint. Which fields are meaningful
// depends on Shape:
//
//	segment: Start, End
//	arc:     Start, Mid, End
//	circle:  Center, Radius
//	rect:    Start, End (opposite corners)
//	polygon: Points
//
// Width is the stroke width. It does not contribute to outlines.
type Graphic struct {
	Shape  ShapeKind
	Layer  Layer
	Start  geom.Point
	End    geom.Point
	Mid    geom.Point
	Center geom.Point
	Radius int64
	Points []geom.Point
	Width  int64
}

// ToShape converts the graphic to its geometry.
func (g Graphic) ToShape() (geom.Shape, error) {
	switch g.Shape {
	case ShapeSegment:
		return geom.Segment{Start: g.Start, End: g.End}, nil
	case ShapeArc:
		return geom.Arc{Start: g.Start, Mid: g.Mid, End: g.End}, nil
	case ShapeCircle:
		return geom.Circle{Center: g.Center, Radius: g.Radius}, nil
	case ShapeRect:
		return geom.RectShape{Start: g.Start, End: g.End}, nil
	case ShapePolygon:
		pts := make([]geom.Point, len(g.Points))
		copy(pts, g.Points)
		return geom.PolygonShape{Points: pts}, nil
	default:
		return nil, fmt.Errorf("unknown shape kind %q", g.Shape)
	}
}
