package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, x1, y1 int64) Contour {
	return Contour{Pt(x0, y0), Pt(x1, y0), Pt(x1, y1), Pt(x0, y1)}
}

func TestContour_Area(t *testing.T) {
	sq := square(0, 0, 10, 10)
	assert.InDelta(t, 100, sq.SignedArea(), 0)
	assert.Equal(t, 1, sq.Orientation())

	rev := sq.Reversed()
	assert.InDelta(t, -100, rev.SignedArea(), 0)
	assert.InDelta(t, 100, rev.Area(), 0)
	assert.Equal(t, -1, rev.Orientation())

	assert.True(t, Contour{Pt(0, 0), Pt(5, 5), Pt(10, 10)}.IsDegenerate())
	assert.True(t, Contour{Pt(0, 0), Pt(5, 5)}.IsDegenerate())
}

func TestContour_Classify(t *testing.T) {
	// L shape: the notch at (5..10, 5..10) is outside.
	l := Contour{Pt(0, 0), Pt(10, 0), Pt(10, 5), Pt(5, 5), Pt(5, 10), Pt(0, 10)}

	tests := []struct {
		name string
		p    Point
		want PointClass
	}{
		{"inside", Pt(2, 2), Inside},
		{"inside arm", Pt(2, 8), Inside},
		{"notch", Pt(8, 8), Outside},
		{"on edge", Pt(10, 3), OnBoundary},
		{"on inner corner", Pt(5, 5), OnBoundary},
		{"far away", Pt(-5, 3), Outside},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Classify(tt.p))
			assert.Equal(t, tt.want, l.Reversed().Classify(tt.p))
		})
	}
}

func TestContour_Simplify(t *testing.T) {
	c := Contour{Pt(0, 0), Pt(5, 0), Pt(5, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10), Pt(0, 0)}

	kept := c.simplify(false)
	require.Len(t, kept, 5)

	dropped := c.simplify(true)
	assert.Equal(t, square(0, 0, 10, 10), dropped)
}

func TestPolySet_BBoxCache(t *testing.T) {
	ps := NewPolySet(Polygon{Outline: square(0, 0, 10, 10)})
	ps.BuildBBoxCaches()
	assert.Equal(t, NewRect(Pt(0, 0), Pt(10, 10)), ps.BBoxFromCaches())

	ps.Append(NewPolySet(Polygon{Outline: square(20, 20, 30, 30)}))
	assert.Equal(t, NewRect(Pt(0, 0), Pt(30, 30)), ps.BBoxFromCaches())

	ps.RemoveAllContours()
	assert.True(t, ps.IsEmpty())
	assert.True(t, ps.BBoxFromCaches().IsEmpty())
}

func TestPolySet_Normalizes(t *testing.T) {
	ps := NewPolySet(Polygon{
		Outline: square(0, 0, 10, 10).Reversed(),
		Holes:   []Contour{square(2, 2, 4, 4)},
	})

	assert.Equal(t, 1, ps.Polygon(0).Outline.Orientation())
	assert.Equal(t, -1, ps.Polygon(0).Holes[0].Orientation())
	assert.InDelta(t, 96, ps.Area(), 0)
	assert.Equal(t, Inside, ps.Classify(Pt(1, 1)))
	assert.Equal(t, Outside, ps.Classify(Pt(3, 3)))
	assert.Equal(t, OnBoundary, ps.Classify(Pt(2, 3)))
	assert.Equal(t, 8, ps.VertexCount())
}

func TestPolySet_Vertex(t *testing.T) {
	ps := NewPolySet(Polygon{Outline: square(0, 0, 10, 10)})

	assert.Equal(t, Pt(0, 0), ps.Vertex(0, 0, -1))
	assert.Equal(t, Pt(0, 10), ps.Vertex(-1, 0, -1))
	assert.Equal(t, 1, ps.OutlineCount())
	assert.Equal(t, 0, ps.HoleCount(0))
}

func TestPolySet_CloneIsDeep(t *testing.T) {
	ps := NewPolySet(Polygon{Outline: square(0, 0, 10, 10)})
	cp := ps.Clone()
	cp.Polygons()[0].Outline[0] = Pt(-1, -1)

	assert.Equal(t, Pt(0, 0), ps.Vertex(0, 0, -1))
}
