package geom

// Polygon is one outline with zero or more holes.
type Polygon struct {
	Outline Contour
	Holes   []Contour
}

// Area returns the outline area minus the hole areas in nm².
func (p Polygon) Area() float64 {
	a := p.Outline.Area()
	for _, h := range p.Holes {
		a -= h.Area()
	}
	return a
}

// Classify reports where pt lies relative to the polygon.
func (p Polygon) Classify(pt Point) PointClass {
	q := double(pt)
	return p.classify2(q)
}

func (p Polygon) classify2(q Point) PointClass {
	if p.Outline.onBoundary2(q) {
		return OnBoundary
	}
	if p.Outline.winding2(q) == 0 {
		return Outside
	}
	for _, h := range p.Holes {
		if h.onBoundary2(q) {
			return OnBoundary
		}
		if h.winding2(q) != 0 {
			return Outside
		}
	}
	return Inside
}

func (p Polygon) clone() Polygon {
	out := Polygon{Outline: append(Contour(nil), p.Outline...)}
	if len(p.Holes) > 0 {
		out.Holes = make([]Contour, len(p.Holes))
		for i, h := range p.Holes {
			out.Holes[i] = append(Contour(nil), h...)
		}
	}
	return out
}

// PolySet is an ordered list of polygons with a cached bounding box.
//
// The zero value is an empty set ready for use. A PolySet is not safe for
// concurrent mutation; concurrent readers are fine once BuildBBoxCaches has
// been called.
type PolySet struct {
	polys     []Polygon
	bbox      Rect
	bboxValid bool
}

// NewPolySet creates a set from the given polygons. Outlines are normalized
// to counter-clockwise and holes to clockwise.
func NewPolySet(polys ...Polygon) *PolySet {
	ps := &PolySet{}
	for _, p := range polys {
		ps.AddPolygon(p)
	}
	return ps
}

// AddPolygon appends a polygon and returns its outline index.
func (ps *PolySet) AddPolygon(p Polygon) int {
	p = p.clone()
	if p.Outline.Orientation() < 0 {
		p.Outline = p.Outline.Reversed()
	}
	for i, h := range p.Holes {
		if h.Orientation() > 0 {
			p.Holes[i] = h.Reversed()
		}
	}
	ps.polys = append(ps.polys, p)
	ps.bboxValid = false
	return len(ps.polys) - 1
}

// AddOutline appends an outline without holes and returns its index.
func (ps *PolySet) AddOutline(c Contour) int {
	return ps.AddPolygon(Polygon{Outline: c})
}

// AddHole adds a hole to the outline at index outline.
func (ps *PolySet) AddHole(outline int, c Contour) {
	if c.Orientation() > 0 {
		c = c.Reversed()
	} else {
		c = append(Contour(nil), c...)
	}
	ps.polys[outline].Holes = append(ps.polys[outline].Holes, c)
	ps.bboxValid = false
}

// Append adds all polygons of other to the set.
func (ps *PolySet) Append(other *PolySet) {
	if other == nil {
		return
	}
	for _, p := range other.polys {
		ps.polys = append(ps.polys, p.clone())
	}
	ps.bboxValid = false
}

// RemoveAllContours empties the set.
func (ps *PolySet) RemoveAllContours() {
	ps.polys = nil
	ps.bboxValid = false
}

// OutlineCount returns the number of polygons.
func (ps *PolySet) OutlineCount() int {
	if ps == nil {
		return 0
	}
	return len(ps.polys)
}

// HoleCount returns the number of holes of the given outline.
func (ps *PolySet) HoleCount(outline int) int {
	return len(ps.polys[outline].Holes)
}

// IsEmpty reports whether the set holds no polygons.
func (ps *PolySet) IsEmpty() bool {
	return ps.OutlineCount() == 0
}

// Polygon returns the polygon at index i.
func (ps *PolySet) Polygon(i int) Polygon {
	return ps.polys[i]
}

// Polygons returns the polygons of the set. The slice must not be modified.
func (ps *PolySet) Polygons() []Polygon {
	if ps == nil {
		return nil
	}
	return ps.polys
}

// Contour returns the contour of an outline; hole -1 selects the outline
// itself, otherwise the hole with that index.
func (ps *PolySet) Contour(outline, hole int) Contour {
	p := ps.polys[outline]
	if hole < 0 {
		return p.Outline
	}
	return p.Holes[hole]
}

// Vertex returns vertex index of the given contour. A negative index counts
// from the end.
func (ps *PolySet) Vertex(index, outline, hole int) Point {
	c := ps.Contour(outline, hole)
	if index < 0 {
		index += len(c)
	}
	return c[index]
}

// VertexCount returns the total number of vertices in the set.
func (ps *PolySet) VertexCount() int {
	n := 0
	for _, p := range ps.Polygons() {
		n += len(p.Outline)
		for _, h := range p.Holes {
			n += len(h)
		}
	}
	return n
}

// Area returns the total area in nm².
func (ps *PolySet) Area() float64 {
	var a float64
	for _, p := range ps.Polygons() {
		a += p.Area()
	}
	return a
}

// Classify reports where pt lies relative to the union of all polygons.
// Polygons are assumed not to overlap one another.
func (ps *PolySet) Classify(pt Point) PointClass {
	return ps.classify2(double(pt))
}

func (ps *PolySet) classify2(q Point) PointClass {
	result := Outside
	for _, p := range ps.Polygons() {
		switch p.classify2(q) {
		case Inside:
			return Inside
		case OnBoundary:
			result = OnBoundary
		}
	}
	return result
}

// BBox computes the bounding box without touching the cache.
func (ps *PolySet) BBox() Rect {
	r := EmptyRect()
	for _, p := range ps.Polygons() {
		r = r.Union(p.Outline.BBox())
	}
	return r
}

// BuildBBoxCaches computes and stores the bounding box.
func (ps *PolySet) BuildBBoxCaches() {
	ps.bbox = ps.BBox()
	ps.bboxValid = true
}

// BBoxFromCaches returns the cached bounding box, computing it first if the
// cache is stale.
func (ps *PolySet) BBoxFromCaches() Rect {
	if !ps.bboxValid {
		ps.BuildBBoxCaches()
	}
	return ps.bbox
}

// Clone returns a deep copy of the set.
func (ps *PolySet) Clone() *PolySet {
	out := &PolySet{}
	if ps == nil {
		return out
	}
	out.Append(ps)
	out.bbox, out.bboxValid = ps.bbox, ps.bboxValid
	return out
}
