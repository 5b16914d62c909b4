package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMaxError = 5000
	testEpsilon  = 20000
	mm           = 1_000_000
)

func TestBuildClosedOutline(t *testing.T) {
	tests := []struct {
		name      string
		shapes    []Shape
		wantOut   int
		wantHoles int
		wantArea  float64
		wantErr   error
	}{
		{
			name:   "empty",
			shapes: nil,
		},
		{
			name: "segments in any order and direction",
			shapes: []Shape{
				Segment{Start: Pt(10*mm, 10*mm), End: Pt(10*mm, 0)},
				Segment{Start: Pt(0, 0), End: Pt(10*mm, 0)},
				Segment{Start: Pt(0, 10*mm), End: Pt(0, 0)},
				Segment{Start: Pt(0, 10*mm), End: Pt(10*mm, 10*mm)},
			},
			wantOut:  1,
			wantArea: 100 * mm * mm,
		},
		{
			name: "gap within chaining epsilon",
			shapes: []Shape{
				Segment{Start: Pt(0, 0), End: Pt(10*mm, 0)},
				Segment{Start: Pt(10*mm+5000, 0), End: Pt(10*mm, 10*mm)},
				Segment{Start: Pt(10*mm, 10*mm), End: Pt(0, 0)},
			},
			wantOut:  1,
			wantArea: 50 * mm * mm,
		},
		{
			name: "rectangle",
			shapes: []Shape{
				RectShape{Start: Pt(0, 0), End: Pt(2*mm, 3*mm)},
			},
			wantOut:  1,
			wantArea: 6 * mm * mm,
		},
		{
			name: "polygon",
			shapes: []Shape{
				PolygonShape{Points: []Point{Pt(0, 0), Pt(4*mm, 0), Pt(0, 4*mm)}},
			},
			wantOut:  1,
			wantArea: 8 * mm * mm,
		},
		{
			name: "rectangle with rectangular hole",
			shapes: []Shape{
				RectShape{Start: Pt(0, 0), End: Pt(10*mm, 10*mm)},
				RectShape{Start: Pt(2*mm, 2*mm), End: Pt(4*mm, 4*mm)},
			},
			wantOut:   1,
			wantHoles: 1,
			wantArea:  96 * mm * mm,
		},
		{
			name: "two separate rectangles",
			shapes: []Shape{
				RectShape{Start: Pt(0, 0), End: Pt(1*mm, 1*mm)},
				RectShape{Start: Pt(5*mm, 5*mm), End: Pt(6*mm, 6*mm)},
			},
			wantOut:  2,
			wantArea: 2 * mm * mm,
		},
		{
			name: "open chain",
			shapes: []Shape{
				Segment{Start: Pt(0, 0), End: Pt(10*mm, 0)},
				Segment{Start: Pt(10*mm, 0), End: Pt(10*mm, 10*mm)},
				Segment{Start: Pt(10*mm, 10*mm), End: Pt(0, 10*mm)},
			},
			wantErr: ErrNotClosed,
		},
		{
			name: "single segment",
			shapes: []Shape{
				Segment{Start: Pt(0, 0), End: Pt(10*mm, 0)},
			},
			wantErr: ErrNotClosed,
		},
		{
			name: "gap beyond chaining epsilon",
			shapes: []Shape{
				Segment{Start: Pt(0, 0), End: Pt(10*mm, 0)},
				Segment{Start: Pt(10*mm+50000, 0), End: Pt(10*mm, 10*mm)},
				Segment{Start: Pt(10*mm, 10*mm), End: Pt(0, 0)},
			},
			wantErr: ErrNotClosed,
		},
		{
			name: "flat rectangle",
			shapes: []Shape{
				RectShape{Start: Pt(0, 0), End: Pt(10*mm, 0)},
			},
			wantErr: ErrDegenerate,
		},
		{
			name: "zero radius circle",
			shapes: []Shape{
				Circle{Center: Pt(0, 0)},
			},
			wantErr: ErrDegenerate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildClosedOutline(tt.shapes, testMaxError, testEpsilon)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantOut, got.OutlineCount())
			holes := 0
			for i := range got.OutlineCount() {
				holes += got.HoleCount(i)
			}
			assert.Equal(t, tt.wantHoles, holes)
			assert.InDelta(t, tt.wantArea, got.Area(), 1)
		})
	}
}

func TestBuildClosedOutline_Circle(t *testing.T) {
	r := int64(1 * mm)
	got, err := BuildClosedOutline([]Shape{Circle{Center: Pt(5*mm, 5*mm), Radius: r}}, testMaxError, testEpsilon)
	require.NoError(t, err)
	require.Equal(t, 1, got.OutlineCount())

	assert.InEpsilon(t, math.Pi*float64(r)*float64(r), got.Area(), 0.01)
	for _, p := range got.Contour(0, -1) {
		d := p.Sub(Pt(5*mm, 5*mm)).Length()
		assert.InDelta(t, float64(r), d, 1)
	}
}

func TestBuildClosedOutline_ArcAndSegment(t *testing.T) {
	r := int64(10 * mm)
	shapes := []Shape{
		Arc{Start: Pt(0, -r), Mid: Pt(r, 0), End: Pt(0, r)},
		Segment{Start: Pt(0, r), End: Pt(0, -r)},
	}

	got, err := BuildClosedOutline(shapes, testMaxError, testEpsilon)
	require.NoError(t, err)
	require.Equal(t, 1, got.OutlineCount())

	half := math.Pi * float64(r) * float64(r) / 2
	assert.InEpsilon(t, half, got.Area(), 0.01)
	assert.Equal(t, NewRect(Pt(0, -r), Pt(r, r)), got.BBox())
}

func TestArcSegmentCount(t *testing.T) {
	tests := []struct {
		name     string
		radius   int64
		sweep    float64
		maxError int64
		want     int
	}{
		{"radius below error", 1000, 2 * math.Pi, 5000, 8},
		{"one millimetre circle", 1 * mm, 2 * math.Pi, 5000, 32},
		{"tiny sweep", 1 * mm, 0.01, 5000, 2},
		{"zero radius", 0, math.Pi, 5000, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ArcSegmentCount(tt.radius, tt.sweep, tt.maxError))
		})
	}
}

func TestApproximateArc(t *testing.T) {
	r := int64(1 * mm)
	start, end := Pt(r, 0), Pt(-r, 0)

	t.Run("counter-clockwise through top", func(t *testing.T) {
		pts := ApproximateArc(start, Pt(0, r), end, testMaxError)
		require.GreaterOrEqual(t, len(pts), 3)
		assert.Equal(t, start, pts[0])
		assert.Equal(t, end, pts[len(pts)-1])
		for _, p := range pts[1 : len(pts)-1] {
			assert.Positive(t, p.Y)
			assert.InDelta(t, float64(r), p.Length(), 1)
		}
	})

	t.Run("clockwise through bottom", func(t *testing.T) {
		pts := ApproximateArc(start, Pt(0, -r), end, testMaxError)
		for _, p := range pts[1 : len(pts)-1] {
			assert.Negative(t, p.Y)
		}
	})

	t.Run("collinear degrades to segment", func(t *testing.T) {
		pts := ApproximateArc(start, Pt(0, 0), end, testMaxError)
		assert.Equal(t, []Point{start, end}, pts)
	})
}
