package geom

import "math"

// Mode selects how boolean operands are prepared and results normalized.
type Mode int

const (
	// ModeFast uses the operands as they are. Polygons within one operand
	// must not overlap each other and contours must not self-intersect.
	ModeFast Mode = iota
	// ModeStrictlySimple merges overlapping polygons within each operand
	// first and removes collinear vertices from the result.
	ModeStrictlySimple
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeStrictlySimple {
		return "strictly-simple"
	}
	return "fast"
}

type boolOp int

const (
	opIntersection boolOp = iota
	opUnion
	opDifference
)

// edge is a directed segment. Its region lies on the left.
type edge struct {
	a, b Point
}

func (e edge) reversed() edge {
	return edge{a: e.b, b: e.a}
}

// BooleanIntersection returns the region covered by both a and b.
// Neither operand is modified.
func BooleanIntersection(a, b *PolySet, mode Mode) *PolySet {
	return boolean(a, b, opIntersection, mode)
}

// BooleanUnion returns the region covered by a or b.
func BooleanUnion(a, b *PolySet, mode Mode) *PolySet {
	return boolean(a, b, opUnion, mode)
}

// BooleanSubtract returns the region covered by a but not by b.
func BooleanSubtract(a, b *PolySet, mode Mode) *PolySet {
	return boolean(a, b, opDifference, mode)
}

// Merge returns a copy of ps in which overlapping polygons are combined.
func Merge(ps *PolySet) *PolySet {
	out := &PolySet{}
	for _, p := range ps.Polygons() {
		out = boolean(out, NewPolySet(p), opUnion, ModeFast)
	}
	return out
}

func boolean(a, b *PolySet, op boolOp, mode Mode) *PolySet {
	if mode == ModeStrictlySimple {
		a, b = Merge(a), Merge(b)
	}

	switch {
	case a.IsEmpty() && b.IsEmpty():
		return &PolySet{}
	case a.IsEmpty():
		if op == opUnion {
			return b.Clone()
		}
		return &PolySet{}
	case b.IsEmpty():
		if op == opIntersection {
			return &PolySet{}
		}
		return a.Clone()
	}

	if !peekBBox(a).Intersects(peekBBox(b)) {
		switch op {
		case opIntersection:
			return &PolySet{}
		case opUnion:
			out := a.Clone()
			out.Append(b)
			return out
		default:
			return a.Clone()
		}
	}

	fa, fb := node(collectEdges(a), collectEdges(b))
	kept := selectFragments(fa, fb, op)
	return assemble(link(kept), mode == ModeStrictlySimple)
}

// peekBBox returns the cached bbox if valid without populating the cache,
// so boolean operations never write to their operands.
func peekBBox(ps *PolySet) Rect {
	if ps.bboxValid {
		return ps.bbox
	}
	return ps.BBox()
}

func collectEdges(ps *PolySet) []edge {
	var edges []edge
	add := func(c Contour) {
		n := len(c)
		for i := 0; i < n; i++ {
			e := edge{a: c[i], b: c[(i+1)%n]}
			if e.a != e.b {
				edges = append(edges, e)
			}
		}
	}
	for _, p := range ps.Polygons() {
		add(p.Outline)
		for _, h := range p.Holes {
			add(h)
		}
	}
	return edges
}

// maxNodingPasses bounds the re-splitting in node.
const maxNodingPasses = 32

type taggedEdge struct {
	edge
	fromB bool
}

// node splits the edges of both operands against each other and against
// their own operand until no two fragments cross or partially overlap.
// Rounded crossing points move fragments slightly, which can create new
// crossings near the rounded point, so splitting repeats on the result.
// The fragments of each operand still form closed rings.
func node(ea, eb []edge) (fa, fb []edge) {
	all := make([]taggedEdge, 0, len(ea)+len(eb))
	for _, e := range ea {
		all = append(all, taggedEdge{edge: e})
	}
	for _, e := range eb {
		all = append(all, taggedEdge{edge: e, fromB: true})
	}

	for range maxNodingPasses {
		cuts := make([][]Point, len(all))
		split := false
		for i := range all {
			for j := i + 1; j < len(all); j++ {
				onI, onJ := splitPoints(all[i].a, all[i].b, all[j].a, all[j].b)
				if len(onI) == 0 && len(onJ) == 0 {
					continue
				}
				cuts[i] = append(cuts[i], onI...)
				cuts[j] = append(cuts[j], onJ...)
				split = true
			}
		}
		if !split {
			break
		}

		next := make([]taggedEdge, 0, len(all))
		for i, e := range all {
			for _, f := range fragmentsOfEdge(e.edge, cuts[i]) {
				next = append(next, taggedEdge{edge: f, fromB: e.fromB})
			}
		}
		all = next
	}

	for _, e := range all {
		if e.fromB {
			fb = append(fb, e.edge)
		} else {
			fa = append(fa, e.edge)
		}
	}
	return fa, fb
}

// splitEdges cuts every edge of ea against every edge of eb once and
// returns the resulting fragments of each side, in edge order. The cuts are
// exact only when no two edges cross properly.
func splitEdges(ea, eb []edge) (fa, fb []edge) {
	cutsA := make([][]Point, len(ea))
	cutsB := make([][]Point, len(eb))
	for i, x := range ea {
		for j, y := range eb {
			onA, onB := splitPoints(x.a, x.b, y.a, y.b)
			cutsA[i] = append(cutsA[i], onA...)
			cutsB[j] = append(cutsB[j], onB...)
		}
	}
	for i, e := range ea {
		fa = append(fa, fragmentsOfEdge(e, cutsA[i])...)
	}
	for j, e := range eb {
		fb = append(fb, fragmentsOfEdge(e, cutsB[j])...)
	}
	return fa, fb
}

func fragmentsOfEdge(e edge, pts []Point) []edge {
	if len(pts) == 0 {
		return []edge{e}
	}
	sortByProjection(pts, e.a, e.b.Sub(e.a))
	var out []edge
	prev := e.a
	for _, p := range pts {
		if p == prev || p == e.b {
			continue
		}
		out = append(out, edge{a: prev, b: p})
		prev = p
	}
	return append(out, edge{a: prev, b: e.b})
}

// sortByProjection orders points along dir starting at origin.
// Cut lists are short, so insertion sort is enough.
func sortByProjection(pts []Point, origin, dir Point) {
	key := func(p Point) float64 { return p.Sub(origin).Dot(dir) }
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0 && key(pts[j]) < key(pts[j-1]); j-- {
			pts[j], pts[j-1] = pts[j-1], pts[j]
		}
	}
}

// selectFragments keeps the fragments that bound the result of op. Each
// side is classified against the noded fragments of the other side rather
// than the original operand, so that a fragment and the rounded geometry it
// is linked with always agree.
func selectFragments(fa, fb []edge, op boolOp) []edge {
	inB := make(map[edge]struct{}, len(fb))
	for _, f := range fb {
		inB[f] = struct{}{}
	}

	var kept []edge
	for _, f := range fa {
		switch classifyEdges2(fb, f.a.Add(f.b)) {
		case Inside:
			if op == opIntersection {
				kept = append(kept, f)
			}
		case Outside:
			if op != opIntersection {
				kept = append(kept, f)
			}
		case OnBoundary:
			_, same := inB[f]
			_, opposite := inB[f.reversed()]
			if (op == opDifference && opposite) || (op != opDifference && same) {
				kept = append(kept, f)
			}
		}
	}

	// Shared boundary fragments were decided from the a side above.
	for _, f := range fb {
		switch classifyEdges2(fa, f.a.Add(f.b)) {
		case Inside:
			switch op {
			case opIntersection:
				kept = append(kept, f)
			case opDifference:
				kept = append(kept, f.reversed())
			}
		case Outside:
			if op == opUnion {
				kept = append(kept, f)
			}
		}
	}
	return kept
}

// classifyEdges2 classifies q (doubled coordinates) against the region
// bounded by a set of directed edges forming closed rings.
func classifyEdges2(edges []edge, q Point) PointClass {
	wn := 0
	for _, e := range edges {
		a, b := double(e.a), double(e.b)
		if onSegment(a, b, q) {
			return OnBoundary
		}
		wn += windingStep(a, b, q)
	}
	if wn != 0 {
		return Inside
	}
	return Outside
}

// link joins fragments end to start into closed contours. At a vertex with
// several unused outgoing fragments the leftmost turn is taken, which keeps
// regions that only touch at a vertex in separate contours.
func link(frags []edge) []Contour {
	outgoing := make(map[Point][]int, len(frags))
	for i, f := range frags {
		outgoing[f.a] = append(outgoing[f.a], i)
	}
	used := make([]bool, len(frags))

	var contours []Contour
	for i := range frags {
		if used[i] {
			continue
		}
		used[i] = true

		path := []Point{frags[i].a}
		seen := map[Point]int{frags[i].a: 0}
		dir := frags[i].b.Sub(frags[i].a)
		at := frags[i].b

		for {
			if k, ok := seen[at]; ok {
				if len(path)-k >= 3 {
					contours = append(contours, append(Contour(nil), path[k:]...))
				}
				for _, p := range path[k+1:] {
					delete(seen, p)
				}
				path = path[:k+1]
				if k == 0 {
					break
				}
			} else {
				seen[at] = len(path)
				path = append(path, at)
			}

			next := pickLeftmost(frags, outgoing[at], used, dir)
			if next < 0 {
				// Only reachable when noding gave up; the partial chain is dropped.
				break
			}
			used[next] = true
			dir = frags[next].b.Sub(frags[next].a)
			at = frags[next].b
		}
	}
	return contours
}

func pickLeftmost(frags []edge, candidates []int, used []bool, dir Point) int {
	best := -1
	bestAngle := math.Inf(-1)
	for _, c := range candidates {
		if used[c] {
			continue
		}
		d := frags[c].b.Sub(frags[c].a)
		angle := math.Atan2(cross128(dir, d).float(), dir.Dot(d))
		if angle >= math.Pi {
			angle = -math.Pi
		}
		if angle > bestAngle {
			best, bestAngle = c, angle
		}
	}
	return best
}

// assemble turns linked contours into a polygon set: counter-clockwise
// contours become outlines and clockwise ones holes of the smallest outline
// containing them.
func assemble(contours []Contour, dropCollinear bool) *PolySet {
	var outlines, holes []Contour
	for _, c := range contours {
		c = c.simplify(dropCollinear)
		if c.IsDegenerate() {
			continue
		}
		if c.Orientation() > 0 {
			outlines = append(outlines, c)
		} else {
			holes = append(holes, c)
		}
	}

	out := &PolySet{}
	for _, c := range outlines {
		out.AddOutline(c)
	}
	for _, h := range holes {
		if idx := containingOutline(out, h); idx >= 0 {
			out.AddHole(idx, h)
		}
	}
	return out
}

func containingOutline(ps *PolySet, hole Contour) int {
	q := holeSamplePoint(hole)
	best := -1
	bestArea := math.Inf(1)
	for i, p := range ps.Polygons() {
		if p.Outline.onBoundary2(q) || p.Outline.winding2(q) == 0 {
			continue
		}
		if a := p.Outline.Area(); a < bestArea {
			best, bestArea = i, a
		}
	}
	return best
}

// holeSamplePoint returns, in doubled coordinates, a point on the hole's
// boundary that is not one of its vertices. Holes only touch their outline
// at isolated vertices, so an edge midpoint is strictly inside the outline.
func holeSamplePoint(c Contour) Point {
	return c[0].Add(c[1])
}
