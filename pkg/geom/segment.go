package geom

// segmentBBoxOverlap is a quick reject for segment pairs.
func segmentBBoxOverlap(a0, a1, b0, b1 Point) bool {
	return max(a0.X, a1.X) >= min(b0.X, b1.X) &&
		max(b0.X, b1.X) >= min(a0.X, a1.X) &&
		max(a0.Y, a1.Y) >= min(b0.Y, b1.Y) &&
		max(b0.Y, b1.Y) >= min(a0.Y, a1.Y)
}

// strictlyInside reports whether p lies on segment ab but is neither endpoint.
func strictlyInside(a, b, p Point) bool {
	return p != a && p != b && onSegment(a, b, p)
}

// splitPoints returns the points at which segment a must be split and the
// points at which segment b must be split so that the two never cross or
// partially overlap. A proper crossing point is computed once, rounded, and
// returned for both segments so the fragments meet at an identical vertex.
func splitPoints(a0, a1, b0, b1 Point) (onA, onB []Point) {
	if !segmentBBoxOverlap(a0, a1, b0, b1) {
		return nil, nil
	}

	if properCrossing(a0, a1, b0, b1) {
		p := crossingPoint(a0, a1, b0, b1)
		if p != a0 && p != a1 {
			onA = append(onA, p)
		}
		if p != b0 && p != b1 {
			onB = append(onB, p)
		}
		return onA, onB
	}

	// Touching and collinear overlap: endpoints of one segment lying in the
	// interior of the other.
	for _, p := range []Point{b0, b1} {
		if strictlyInside(a0, a1, p) {
			onA = append(onA, p)
		}
	}
	for _, p := range []Point{a0, a1} {
		if strictlyInside(b0, b1, p) {
			onB = append(onB, p)
		}
	}
	return onA, onB
}

// properCrossing reports whether the segments cross at a single point
// interior to both.
func properCrossing(a0, a1, b0, b1 Point) bool {
	d1 := orient(b0, b1, a0)
	d2 := orient(b0, b1, a1)
	d3 := orient(a0, a1, b0)
	d4 := orient(a0, a1, b1)
	return d1*d2 < 0 && d3*d4 < 0
}

// crossingPoint returns the rounded intersection of two properly crossing
// segments.
func crossingPoint(a0, a1, b0, b1 Point) Point {
	r := a1.Sub(a0)
	s := b1.Sub(b0)
	denom := cross128(r, s).float()
	t := cross128(b0.Sub(a0), s).float() / denom
	return roundPoint(float64(a0.X)+t*float64(r.X), float64(a0.Y)+t*float64(r.Y))
}
