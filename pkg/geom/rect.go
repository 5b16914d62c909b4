package geom

// Rect is an axis-aligned rectangle with inclusive bounds.
// The zero Rect is a single point at the origin; use EmptyRect for "no area".
type Rect struct {
	Min, Max Point
}

// EmptyRect returns a rectangle that contains nothing and acts as the
// identity for Union.
func EmptyRect() Rect {
	return Rect{Min: Point{X: 1, Y: 1}, Max: Point{X: 0, Y: 0}}
}

// NewRect creates a normalized Rect spanning two corners.
func NewRect(a, b Point) Rect {
	r := Rect{Min: a, Max: b}
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// IsEmpty returns true if the rectangle contains no points.
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Width returns the horizontal extent.
func (r Rect) Width() int64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() int64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.Y - r.Min.Y
}

// Area returns the rectangle area in nm².
func (r Rect) Area() float64 {
	return float64(r.Width()) * float64(r.Height())
}

// Contains returns true if the point is inside or on the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects returns true if two rectangles share at least one point.
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return !(other.Min.X > r.Max.X || other.Max.X < r.Min.X ||
		other.Min.Y > r.Max.Y || other.Max.Y < r.Min.Y)
}

// Intersect returns the common part of two rectangles.
// Returns EmptyRect if they don't intersect.
func (r Rect) Intersect(other Rect) Rect {
	if !r.Intersects(other) {
		return EmptyRect()
	}
	return Rect{
		Min: Point{X: max(r.Min.X, other.Min.X), Y: max(r.Min.Y, other.Min.Y)},
		Max: Point{X: min(r.Max.X, other.Max.X), Y: min(r.Max.Y, other.Max.Y)},
	}
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		Min: Point{X: min(r.Min.X, other.Min.X), Y: min(r.Min.Y, other.Min.Y)},
		Max: Point{X: max(r.Max.X, other.Max.X), Y: max(r.Max.Y, other.Max.Y)},
	}
}

// Expand grows the rectangle to include p.
func (r Rect) Expand(p Point) Rect {
	return r.Union(Rect{Min: p, Max: p})
}
