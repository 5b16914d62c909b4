package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/boardcheck/pkg/board"
	"github.com/leapstack-labs/boardcheck/pkg/geom"
)

// MM converts millimetres to nanometres.
func MM(v float64) int64 {
	return int64(v * 1_000_000)
}

// RectOutline returns four segments on layer tracing the rectangle
// (x0,y0)-(x1,y1), given in nanometres.
func RectOutline(layer board.Layer, x0, y0, x1, y1 int64) []board.Graphic {
	corners := []geom.Point{geom.Pt(x0, y0), geom.Pt(x1, y0), geom.Pt(x1, y1), geom.Pt(x0, y1)}
	out := make([]board.Graphic, 0, 4)
	for i := range corners {
		out = append(out, board.Graphic{
			Shape: board.ShapeSegment,
			Layer: layer,
			Start: corners[i],
			End:   corners[(i+1)%4],
			Width: 50_000,
		})
	}
	return out
}

// Footprint returns a front-side footprint with the given graphics.
func Footprint(ref string, graphics ...board.Graphic) *board.Footprint {
	return &board.Footprint{
		ID:        "fp-" + ref,
		Reference: ref,
		Side:      board.Front,
		Graphics:  graphics,
	}
}

// RectFootprint returns a footprint whose front courtyard is the rectangle
// (x0,y0)-(x1,y1) in millimetres.
func RectFootprint(ref string, x0, y0, x1, y1 float64) *board.Footprint {
	fp := Footprint(ref, RectOutline(board.LayerFrontCourtyard, MM(x0), MM(y0), MM(x1), MM(y1))...)
	fp.Position = geom.Pt(MM((x0+x1)/2), MM((y0+y1)/2))
	return fp
}

// PolygonFootprint returns a footprint whose front courtyard is a polygon
// with the given vertices in nanometres.
func PolygonFootprint(ref string, pts ...geom.Point) *board.Footprint {
	fp := Footprint(ref, board.Graphic{
		Shape:  board.ShapePolygon,
		Layer:  board.LayerFrontCourtyard,
		Points: pts,
		Width:  50_000,
	})
	fp.Position = pts[0]
	return fp
}

// OpenFootprint returns a footprint whose front courtyard is three sides of
// a rectangle, which never closes.
func OpenFootprint(ref string, x0, y0, x1, y1 float64) *board.Footprint {
	g := RectOutline(board.LayerFrontCourtyard, MM(x0), MM(y0), MM(x1), MM(y1))
	fp := Footprint(ref, g[:3]...)
	fp.Position = geom.Pt(MM(x0), MM(y0))
	return fp
}

// BareFootprint returns a footprint with only silkscreen graphics.
func BareFootprint(ref string) *board.Footprint {
	return Footprint(ref, RectOutline(board.LayerFrontSilk, 0, 0, MM(1), MM(1))...)
}

// NewBoard builds a board from footprints, failing the test on error.
func NewBoard(t testing.TB, name string, fps ...*board.Footprint) *board.Board {
	t.Helper()
	b := board.New(name)
	for _, fp := range fps {
		require.NoError(t, b.Add(fp))
	}
	return b
}
