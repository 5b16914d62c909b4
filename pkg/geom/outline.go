package geom

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotClosed is returned when open shapes do not chain into closed
	// contours.
	ErrNotClosed = errors.New("not a closed shape")
	// ErrDegenerate is returned when a contour encloses no area.
	ErrDegenerate = errors.New("degenerate shape")
)

// Shape is a drawing primitive that can contribute to an outline.
type Shape interface {
	isShape()
}

// Segment is a straight line.
type Segment struct {
	Start, End Point
}

func (Segment) isShape() {}

// Arc is a circular arc through three points.
type Arc struct {
	Start, Mid, End Point
}

func (Arc) isShape() {}

// Circle is a closed circle.
type Circle struct {
	Center Point
	Radius int64
}

func (Circle) isShape() {}

// RectShape is a closed axis-aligned rectangle given by opposite corners.
type RectShape struct {
	Start, End Point
}

func (RectShape) isShape() {}

// PolygonShape is a closed polygon.
type PolygonShape struct {
	Points []Point
}

func (PolygonShape) isShape() {}

// BuildClosedOutline assembles shapes into a polygon set. Closed shapes
// become contours directly; segments and arcs are chained end to end, with
// endpoints within chainingEpsilon treated as coincident. Contours nested
// inside another contour at odd depth become holes.
//
// An empty shape list yields an empty set and no error.
func BuildClosedOutline(shapes []Shape, maxError, chainingEpsilon int64) (*PolySet, error) {
	var contours []Contour
	var open [][]Point

	for _, s := range shapes {
		switch s := s.(type) {
		case Segment:
			if s.Start != s.End {
				open = append(open, []Point{s.Start, s.End})
			}
		case Arc:
			open = append(open, ApproximateArc(s.Start, s.Mid, s.End, maxError))
		case Circle:
			if s.Radius <= 0 {
				return nil, fmt.Errorf("%w: circle at %v with radius %d", ErrDegenerate, s.Center, s.Radius)
			}
			contours = append(contours, ApproximateCircle(s.Center, s.Radius, maxError))
		case RectShape:
			if s.Start.X == s.End.X || s.Start.Y == s.End.Y {
				return nil, fmt.Errorf("%w: rectangle %v-%v", ErrDegenerate, s.Start, s.End)
			}
			contours = append(contours, Contour{
				s.Start, {X: s.End.X, Y: s.Start.Y}, s.End, {X: s.Start.X, Y: s.End.Y},
			})
		case PolygonShape:
			contours = append(contours, append(Contour(nil), s.Points...))
		default:
			return nil, fmt.Errorf("unsupported shape %T", s)
		}
	}

	chained, err := chainOpen(open, chainingEpsilon)
	if err != nil {
		return nil, err
	}
	contours = append(contours, chained...)

	for i, c := range contours {
		c = c.simplify(false)
		if c.IsDegenerate() {
			return nil, fmt.Errorf("%w: contour %d has no area", ErrDegenerate, i)
		}
		contours[i] = c
	}

	return nestContours(contours), nil
}

// chainOpen links open polylines into closed contours.
func chainOpen(open [][]Point, eps int64) ([]Contour, error) {
	used := make([]bool, len(open))
	var out []Contour

	for i := range open {
		if used[i] {
			continue
		}
		used[i] = true
		chain := append([]Point(nil), open[i]...)

		for {
			first, last := chain[0], chain[len(chain)-1]
			if len(chain) > 2 && last.Near(first, eps) {
				chain = chain[:len(chain)-1]
				break
			}

			j, reverse := nextLink(open, used, last, eps)
			if j < 0 {
				return nil, fmt.Errorf("%w: chain from %v ends at %v", ErrNotClosed, first, last)
			}
			used[j] = true
			next := open[j]
			if reverse {
				for k := len(next) - 2; k >= 0; k-- {
					chain = append(chain, next[k])
				}
			} else {
				chain = append(chain, next[1:]...)
			}
		}
		out = append(out, Contour(chain))
	}
	return out, nil
}

// nextLink finds the unused polyline with an endpoint nearest to p, within
// eps. reverse is true when the match is at the polyline's end.
func nextLink(open [][]Point, used []bool, p Point, eps int64) (idx int, reverse bool) {
	idx = -1
	best := math.Inf(1)
	for j, pl := range open {
		if used[j] {
			continue
		}
		if s := pl[0]; s.Near(p, eps) {
			if d := s.Sub(p).Length(); d < best {
				idx, reverse, best = j, false, d
			}
		}
		if e := pl[len(pl)-1]; e.Near(p, eps) {
			if d := e.Sub(p).Length(); d < best {
				idx, reverse, best = j, true, d
			}
		}
	}
	return idx, reverse
}

// nestContours classifies contours by containment depth. Even depth becomes
// an outline, odd depth a hole of the innermost enclosing outline.
func nestContours(contours []Contour) *PolySet {
	depth := make([]int, len(contours))
	parent := make([]int, len(contours))
	for i, c := range contours {
		parent[i] = -1
		bestArea := math.Inf(1)
		for j, o := range contours {
			if i == j || o.Classify(c[0]) != Inside {
				continue
			}
			depth[i]++
			if a := o.Area(); a < bestArea {
				parent[i], bestArea = j, a
			}
		}
	}

	ps := &PolySet{}
	index := make(map[int]int)
	for i, c := range contours {
		if depth[i]%2 == 0 {
			index[i] = ps.AddOutline(c)
		}
	}
	for i, c := range contours {
		if depth[i]%2 == 1 {
			if idx, ok := index[parent[i]]; ok {
				ps.AddHole(idx, c)
			}
		}
	}
	return ps
}
