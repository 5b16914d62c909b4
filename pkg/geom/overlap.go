package geom

// Overlaps reports whether the interiors of a and b share any area and
// returns a point of the common area or its boundary. Only exact predicates
// are used, so overlaps narrower than the nanometre grid, which vanish from
// BooleanIntersection, are still found. Touching boundaries do not overlap.
func Overlaps(a, b *PolySet) (Point, bool) {
	if a.IsEmpty() || b.IsEmpty() || !peekBBox(a).Intersects(peekBBox(b)) {
		return Point{}, false
	}

	ea, eb := collectEdges(a), collectEdges(b)
	for _, x := range ea {
		for _, y := range eb {
			if segmentBBoxOverlap(x.a, x.b, y.a, y.b) && properCrossing(x.a, x.b, y.a, y.b) {
				return crossingPoint(x.a, x.b, y.a, y.b), true
			}
		}
	}

	for _, e := range ea {
		if b.classify2(double(e.a)) == Inside {
			return e.a, true
		}
	}
	for _, e := range eb {
		if a.classify2(double(e.a)) == Inside {
			return e.a, true
		}
	}

	// The boundaries only touch, so every cut lands on an existing vertex.
	fa, fb := splitEdges(ea, eb)
	inB := make(map[edge]struct{}, len(fb))
	for _, f := range fb {
		inB[f] = struct{}{}
	}
	for _, f := range fa {
		if _, same := inB[f]; same {
			return f.a, true
		}
		if b.classify2(f.a.Add(f.b)) == Inside {
			return midpoint(f), true
		}
	}
	for _, f := range fb {
		if a.classify2(f.a.Add(f.b)) == Inside {
			return midpoint(f), true
		}
	}
	return Point{}, false
}

func midpoint(e edge) Point {
	return roundPoint((float64(e.a.X)+float64(e.b.X))/2, (float64(e.a.Y)+float64(e.b.Y))/2)
}
