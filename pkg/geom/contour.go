package geom

// Contour is a closed ring of points. The closing edge from the last point
// back to the first is implicit.
type Contour []Point

// PointClass is the result of classifying a point against a region.
type PointClass int

const (
	Outside PointClass = iota
	OnBoundary
	Inside
)

// String returns the name of the class.
func (c PointClass) String() string {
	switch c {
	case Outside:
		return "outside"
	case OnBoundary:
		return "on boundary"
	case Inside:
		return "inside"
	default:
		return "unknown"
	}
}

// signedArea2 returns twice the signed area (shoelace formula), exactly.
func (c Contour) signedArea2() int128 {
	var sum int128
	n := len(c)
	if n < 3 {
		return sum
	}
	o := c[0]
	for i := 1; i < n-1; i++ {
		sum = sum.add(cross128(c[i].Sub(o), c[i+1].Sub(o)))
	}
	return sum
}

// SignedArea returns the signed area in nm². Positive for counter-clockwise.
func (c Contour) SignedArea() float64 {
	return c.signedArea2().float() / 2
}

// Area returns the absolute area in nm².
func (c Contour) Area() float64 {
	a := c.SignedArea()
	if a < 0 {
		return -a
	}
	return a
}

// Orientation returns 1 for counter-clockwise, -1 for clockwise and 0 for
// degenerate contours.
func (c Contour) Orientation() int {
	return c.signedArea2().sign()
}

// IsDegenerate reports whether the contour encloses no area.
func (c Contour) IsDegenerate() bool {
	return len(c) < 3 || c.Orientation() == 0
}

// Reversed returns a copy with the opposite winding.
func (c Contour) Reversed() Contour {
	out := make(Contour, len(c))
	for i, p := range c {
		out[len(c)-1-i] = p
	}
	return out
}

// BBox returns the bounding box of the contour.
func (c Contour) BBox() Rect {
	r := EmptyRect()
	for _, p := range c {
		r = r.Expand(p)
	}
	return r
}

// Classify reports whether p is inside, on the boundary of, or outside the
// contour. The contour's own orientation is ignored.
func (c Contour) Classify(p Point) PointClass {
	q := double(p)
	if c.onBoundary2(q) {
		return OnBoundary
	}
	if c.winding2(q) != 0 {
		return Inside
	}
	return Outside
}

// The *2 helpers take a point in doubled coordinates so that edge midpoints
// of integer segments can be classified exactly.

func (c Contour) onBoundary2(q Point) bool {
	n := len(c)
	for i := 0; i < n; i++ {
		if onSegment(double(c[i]), double(c[(i+1)%n]), q) {
			return true
		}
	}
	return false
}

// winding2 computes the winding number of q (doubled coordinates) using
// the crossing rule with exact orientation tests.
func (c Contour) winding2(q Point) int {
	wn := 0
	n := len(c)
	for i := 0; i < n; i++ {
		wn += windingStep(double(c[i]), double(c[(i+1)%n]), q)
	}
	return wn
}

// windingStep is the contribution of the directed edge ab to the winding
// number of q.
func windingStep(a, b, q Point) int {
	if a.Y <= q.Y {
		if b.Y > q.Y && orient(a, b, q) > 0 {
			return 1
		}
	} else if b.Y <= q.Y && orient(a, b, q) < 0 {
		return -1
	}
	return 0
}

func double(p Point) Point {
	return Point{X: 2 * p.X, Y: 2 * p.Y}
}

// onSegment reports whether p lies on the closed segment ab.
func onSegment(a, b, p Point) bool {
	if p.X < min(a.X, b.X) || p.X > max(a.X, b.X) ||
		p.Y < min(a.Y, b.Y) || p.Y > max(a.Y, b.Y) {
		return false
	}
	return orient(a, b, p) == 0
}

// simplify removes repeated points and, if requested, collinear vertices.
func (c Contour) simplify(dropCollinear bool) Contour {
	out := make(Contour, 0, len(c))
	for _, p := range c {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}

	changed := dropCollinear
	for changed && len(out) >= 3 {
		changed = false
		for i := 0; i < len(out) && len(out) >= 3; i++ {
			prev := out[(i+len(out)-1)%len(out)]
			next := out[(i+1)%len(out)]
			if orient(prev, out[i], next) == 0 {
				out = append(out[:i], out[i+1:]...)
				changed = true
				i--
			}
		}
	}
	return out
}
