// Package geom is the integer geometry kernel used by the design rule checks.
//
// # Coordinates
//
// All coordinates are int64 nanometres. Nothing in the pipeline accumulates
// floating point state: arc approximation and segment intersection compute
// each output vertex once from integer inputs and round it, and every
// orientation or containment predicate is evaluated exactly with 128-bit
// intermediates. Inputs are expected to stay within ±2^31 nm (about ±2.1 m).
//
// # Polygon sets
//
// A [PolySet] is an ordered list of polygons, each with one outline and zero
// or more holes. Outlines are counter-clockwise (positive signed area) and
// holes clockwise. The bounding box of a set is cached and invalidated by any
// mutation, so repeated reject tests within one check pass are O(1):
//
//	ps.BuildBBoxCaches()
//	if !ps.BBoxFromCaches().Intersects(other.BBoxFromCaches()) {
//		return // cheap reject
//	}
//	common := geom.BooleanIntersection(ps, other, geom.ModeFast)
//
// # Outlines
//
// [BuildClosedOutline] assembles segments, arcs, circles, rectangles and
// polygons into closed contours. Open chains fail with [ErrNotClosed].
package geom
