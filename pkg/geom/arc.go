package geom

import "math"

// minSegCountForCircle is the lowest number of segments a full circle is
// ever approximated with.
const minSegCountForCircle = 8

// ArcSegmentCount returns how many straight segments approximate an arc of
// the given radius and sweep (radians) so that no point of the arc is
// farther than maxError from the chords. At least two segments are used.
func ArcSegmentCount(radius int64, sweep float64, maxError int64) int {
	if radius <= 0 {
		return 2
	}
	relErr := float64(maxError) / float64(radius)
	increment := 2 * math.Pi / minSegCountForCircle
	if relErr < 1 {
		increment = min(increment, 2*math.Acos(1-relErr))
	}
	n := int(math.Ceil(math.Abs(sweep) / increment))
	return max(n, 2)
}

// ApproximateCircle returns a counter-clockwise contour with its vertices
// on the circle.
func ApproximateCircle(center Point, radius, maxError int64) Contour {
	n := max(ArcSegmentCount(radius, 2*math.Pi, maxError), minSegCountForCircle)
	c := make(Contour, n)
	r := float64(radius)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		c[i] = roundPoint(float64(center.X)+r*math.Cos(a), float64(center.Y)+r*math.Sin(a))
	}
	return c
}

// ApproximateArc returns a polyline from start through mid to end. The first
// and last points are exactly start and end. Collinear inputs yield a
// straight segment.
func ApproximateArc(start, mid, end Point, maxError int64) []Point {
	cx, cy, ok := circumcenter(start, mid, end)
	if !ok {
		return []Point{start, end}
	}

	angle := func(p Point) float64 {
		return math.Atan2(float64(p.Y)-cy, float64(p.X)-cx)
	}
	a0 := angle(start)
	sweep := normalizeAngle(angle(end) - a0)
	if normalizeAngle(angle(mid)-a0) > sweep {
		sweep -= 2 * math.Pi
	}

	r := math.Hypot(float64(start.X)-cx, float64(start.Y)-cy)
	n := ArcSegmentCount(int64(math.Round(r)), sweep, maxError)

	pts := make([]Point, 0, n+1)
	pts = append(pts, start)
	for i := 1; i < n; i++ {
		a := a0 + sweep*float64(i)/float64(n)
		pts = append(pts, roundPoint(cx+r*math.Cos(a), cy+r*math.Sin(a)))
	}
	return append(pts, end)
}

// circumcenter returns the center of the circle through three points.
func circumcenter(a, b, c Point) (x, y float64, ok bool) {
	if orient(a, b, c) == 0 {
		return 0, 0, false
	}
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X)-ax, float64(b.Y)-ay
	cx, cy := float64(c.X)-ax, float64(c.Y)-ay
	d := 2 * (bx*cy - by*cx)
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	x = (cy*b2 - by*c2) / d
	y = (bx*c2 - cx*b2) / d
	return ax + x, ay + y, true
}

// normalizeAngle maps a to [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
