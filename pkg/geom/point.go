package geom

import (
	"fmt"
	"math"
)

// Point is a 2D point in nanometres.
type Point struct {
	X, Y int64
}

// Pt is a convenience function to create a Point.
func Pt(x, y int64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dot returns the dot product of two vectors as a float64.
// Only used for ordering, never for constructing coordinates.
func (p Point) Dot(q Point) float64 {
	return float64(p.X)*float64(q.X) + float64(p.Y)*float64(q.Y)
}

// Length returns the euclidean length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(float64(p.X), float64(p.Y))
}

// Near reports whether q lies within eps of p.
func (p Point) Near(q Point, eps int64) bool {
	dx := abs64(p.X - q.X)
	dy := abs64(p.Y - q.Y)
	if dx > eps || dy > eps {
		return false
	}
	return dx*dx+dy*dy <= eps*eps
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// roundPoint converts float coordinates to the nearest integer point.
func roundPoint(x, y float64) Point {
	return Point{X: int64(math.Round(x)), Y: int64(math.Round(y))}
}
