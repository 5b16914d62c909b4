package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectSet(x0, y0, x1, y1 int64) *PolySet {
	return NewPolySet(Polygon{Outline: square(x0, y0, x1, y1)})
}

func TestBooleanIntersection(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *PolySet
		wantArea float64
		wantBBox Rect
		empty    bool
	}{
		{
			name:     "overlapping squares",
			a:        rectSet(0, 0, 10, 10),
			b:        rectSet(5, 5, 15, 15),
			wantArea: 25,
			wantBBox: NewRect(Pt(5, 5), Pt(10, 10)),
		},
		{
			name:     "contained",
			a:        rectSet(0, 0, 10, 10),
			b:        rectSet(2, 2, 4, 4),
			wantArea: 4,
			wantBBox: NewRect(Pt(2, 2), Pt(4, 4)),
		},
		{
			name:     "cross",
			a:        rectSet(0, 4, 10, 6),
			b:        rectSet(4, 0, 6, 10),
			wantArea: 4,
			wantBBox: NewRect(Pt(4, 4), Pt(6, 6)),
		},
		{
			name:  "disjoint",
			a:     rectSet(0, 0, 10, 10),
			b:     rectSet(20, 20, 30, 30),
			empty: true,
		},
		{
			name:  "shared edge",
			a:     rectSet(0, 0, 10, 10),
			b:     rectSet(10, 0, 20, 10),
			empty: true,
		},
		{
			name:  "shared corner",
			a:     rectSet(0, 0, 10, 10),
			b:     rectSet(10, 10, 20, 20),
			empty: true,
		},
		{
			name:  "empty operand",
			a:     rectSet(0, 0, 10, 10),
			b:     &PolySet{},
			empty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BooleanIntersection(tt.a, tt.b, ModeFast)
			if tt.empty {
				assert.True(t, got.IsEmpty(), "expected no overlap, got %d outlines", got.OutlineCount())
				return
			}
			require.Equal(t, 1, got.OutlineCount())
			assert.InDelta(t, tt.wantArea, got.Area(), 0)
			assert.Equal(t, tt.wantBBox, got.BBox())

			swapped := BooleanIntersection(tt.b, tt.a, ModeFast)
			assert.InDelta(t, tt.wantArea, swapped.Area(), 0)
		})
	}
}

func TestBooleanIntersection_PositionIsDeterministic(t *testing.T) {
	a := rectSet(0, 0, 10, 10)
	b := rectSet(5, 5, 15, 15)

	first := BooleanIntersection(a, b, ModeFast)
	second := BooleanIntersection(a, b, ModeFast)

	require.False(t, first.IsEmpty())
	assert.Equal(t, first.Vertex(0, 0, -1), second.Vertex(0, 0, -1))
	assert.True(t, NewRect(Pt(5, 5), Pt(10, 10)).Contains(first.Vertex(0, 0, -1)))
}

func TestBooleanIntersection_ConcaveOperand(t *testing.T) {
	l := NewPolySet(Polygon{Outline: Contour{
		Pt(0, 0), Pt(10, 0), Pt(10, 5), Pt(5, 5), Pt(5, 10), Pt(0, 10),
	}})

	// Square sitting in the notch of the L only touches it.
	notch := rectSet(5, 5, 10, 10)
	assert.True(t, BooleanIntersection(l, notch, ModeFast).IsEmpty())

	// Square spanning both arms: (3..10, 3..5) plus (3..5, 5..10).
	span := rectSet(3, 3, 12, 12)
	got := BooleanIntersection(l, span, ModeFast)
	require.Equal(t, 1, got.OutlineCount())
	assert.InDelta(t, 14+10, got.Area(), 0)
	assert.Len(t, got.Contour(0, -1), 6)
}

func TestBooleanIntersection_RotatedEdges(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Contour
		wantArea float64
	}{
		{
			// A vertex of b lies one nanometre from an edge of a, so the
			// rounded crossings land next to it.
			name:     "vertex next to edge",
			a:        Contour{Pt(-623002, -985834), Pt(1163031, -85785), Pt(623002, 985834), Pt(-1163031, 85785)},
			b:        Contour{Pt(610372, -364291), Pt(-1109686, 386168), Pt(-1547165, 268347)},
			wantArea: 1.7234e11,
		},
		{
			name:     "small coordinates",
			a:        Contour{Pt(199, 1), Pt(193, 51), Pt(-199, -4), Pt(62, -190)},
			b:        Contour{Pt(199, 39), Pt(187, 49), Pt(34, -167), Pt(112, -189), Pt(156, -179), Pt(197, -153)},
			wantArea: 9069,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewPolySet(Polygon{Outline: tt.a})
			b := NewPolySet(Polygon{Outline: tt.b})

			for _, mode := range []Mode{ModeFast, ModeStrictlySimple} {
				got := BooleanIntersection(a, b, mode)
				require.Equal(t, 1, got.OutlineCount(), mode.String())
				assert.InEpsilon(t, tt.wantArea, got.Area(), 0.01, mode.String())

				swapped := BooleanIntersection(b, a, mode)
				require.Equal(t, 1, swapped.OutlineCount(), mode.String())
				assert.InEpsilon(t, tt.wantArea, swapped.Area(), 0.01, mode.String())
			}

			union := BooleanUnion(a, b, ModeFast)
			assert.InEpsilon(t, a.Area()+b.Area()-tt.wantArea, union.Area(), 0.01)

			diff := BooleanSubtract(a, b, ModeFast)
			assert.InEpsilon(t, a.Area()-tt.wantArea, diff.Area(), 0.01)
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b *PolySet
		want bool
	}{
		{name: "crossing", a: rectSet(0, 0, 10, 10), b: rectSet(5, 5, 15, 15), want: true},
		{name: "contained", a: rectSet(0, 0, 10, 10), b: rectSet(2, 2, 4, 4), want: true},
		{name: "identical", a: rectSet(0, 0, 10, 10), b: rectSet(0, 0, 10, 10), want: true},
		{name: "collinear edges", a: rectSet(0, 0, 10, 10), b: rectSet(5, 0, 15, 10), want: true},
		{name: "shared edge", a: rectSet(0, 0, 10, 10), b: rectSet(10, 0, 20, 10)},
		{name: "shared corner", a: rectSet(0, 0, 10, 10), b: rectSet(10, 10, 20, 20)},
		{name: "disjoint", a: rectSet(0, 0, 10, 10), b: rectSet(20, 20, 30, 30)},
		{name: "empty operand", a: rectSet(0, 0, 10, 10), b: &PolySet{}},
		{
			// The common area is a sliver under one unit wide.
			name: "sliver",
			a:    NewPolySet(Polygon{Outline: Contour{Pt(-184, -78), Pt(-63, -189), Pt(-56, -191)}}),
			b: NewPolySet(Polygon{Outline: Contour{
				Pt(-69, 14), Pt(-205, 8), Pt(-214, -51), Pt(-145, -113), Pt(-59, -63),
			}}),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, got := Overlaps(tt.a, tt.b)
			assert.Equal(t, tt.want, got)
			_, swapped := Overlaps(tt.b, tt.a)
			assert.Equal(t, tt.want, swapped)
			if got {
				assert.True(t, tt.a.BBox().Intersect(tt.b.BBox()).Contains(pos), "position %v", pos)
			}
		})
	}
}

func TestBooleanIntersection_DoesNotMutateOperands(t *testing.T) {
	a := rectSet(0, 0, 10, 10)
	b := rectSet(5, 5, 15, 15)
	before := a.Clone()

	_ = BooleanIntersection(a, b, ModeFast)

	assert.Equal(t, before.Polygons(), a.Polygons())
	assert.False(t, a.bboxValid)
}

func TestBooleanUnion(t *testing.T) {
	t.Run("overlapping", func(t *testing.T) {
		got := BooleanUnion(rectSet(0, 0, 10, 10), rectSet(5, 5, 15, 15), ModeFast)
		require.Equal(t, 1, got.OutlineCount())
		assert.InDelta(t, 175, got.Area(), 0)
	})

	t.Run("disjoint keeps both", func(t *testing.T) {
		got := BooleanUnion(rectSet(0, 0, 10, 10), rectSet(20, 20, 30, 30), ModeFast)
		assert.Equal(t, 2, got.OutlineCount())
		assert.InDelta(t, 200, got.Area(), 0)
	})

	t.Run("shared edge merges", func(t *testing.T) {
		got := BooleanUnion(rectSet(0, 0, 10, 10), rectSet(10, 0, 20, 10), ModeFast)
		require.Equal(t, 1, got.OutlineCount())
		assert.InDelta(t, 200, got.Area(), 0)
	})

	t.Run("strictly simple drops collinear vertices", func(t *testing.T) {
		got := BooleanUnion(rectSet(0, 0, 10, 10), rectSet(10, 0, 20, 10), ModeStrictlySimple)
		require.Equal(t, 1, got.OutlineCount())
		assert.Len(t, got.Contour(0, -1), 4)
	})
}

func TestBooleanSubtract(t *testing.T) {
	t.Run("overlapping", func(t *testing.T) {
		got := BooleanSubtract(rectSet(0, 0, 10, 10), rectSet(5, 5, 15, 15), ModeFast)
		require.Equal(t, 1, got.OutlineCount())
		assert.InDelta(t, 75, got.Area(), 0)
	})

	t.Run("creates hole", func(t *testing.T) {
		got := BooleanSubtract(rectSet(0, 0, 10, 10), rectSet(2, 2, 4, 4), ModeFast)
		require.Equal(t, 1, got.OutlineCount())
		assert.Equal(t, 1, got.HoleCount(0))
		assert.InDelta(t, 96, got.Area(), 0)
	})

	t.Run("shared edge leaves operand", func(t *testing.T) {
		got := BooleanSubtract(rectSet(0, 0, 10, 10), rectSet(10, 0, 20, 10), ModeFast)
		assert.InDelta(t, 100, got.Area(), 0)
	})

	t.Run("covered", func(t *testing.T) {
		got := BooleanSubtract(rectSet(2, 2, 4, 4), rectSet(0, 0, 10, 10), ModeFast)
		assert.True(t, got.IsEmpty())
	})
}

func TestMerge(t *testing.T) {
	ps := rectSet(0, 0, 10, 10)
	ps.Append(rectSet(5, 5, 15, 15))
	ps.Append(rectSet(40, 40, 50, 50))

	got := Merge(ps)
	assert.Equal(t, 2, got.OutlineCount())
	assert.InDelta(t, 275, got.Area(), 0)
}
