// Package geometry provides the geometric primitives used by the placement
// engine: points, closed rings, centroid and bounding-box helpers, Manhattan
// distance, and the ray-casting point-in-polygon test.
//
// All distances in this package are Manhattan (L1): placements route nets
// orthogonally, so Euclidean distance is never the right measure here.
package geometry

import "math"

// Point is a 2D point in data-space coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Ring is a closed polygon ring. By convention the first point is repeated
// as the last point; a valid ring therefore has at least 4 entries.
type Ring []Point

// Closed reports whether the ring has enough points to describe a polygon
// and ends on its starting point.
func (r Ring) Closed() bool {
	if len(r) < 4 {
		return false
	}
	return r[0] == r[len(r)-1]
}

// ManhattanDistance returns |p.X-q.X| + |p.Y-q.Y|.
func ManhattanDistance(p, q Point) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y)
}

// Centroid returns the arithmetic mean of all ring points, including the
// duplicated closing point. This double-weights the shared first/last vertex;
// it is the vertex average the rest of the engine is calibrated against, not
// an area-weighted centroid.
func Centroid(r Ring) Point {
	if len(r) == 0 {
		return Point{}
	}
	var sumX, sumY float64
	for _, p := range r {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(r))
	return Point{X: sumX / n, Y: sumY / n}
}

// Bounds returns the axis-aligned bounding box of the ring as
// (minX, minY, maxX, maxY). A nil or empty ring yields zeros.
func Bounds(r Ring) (minX, minY, maxX, maxY float64) {
	if len(r) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = r[0].X, r[0].Y
	maxX, maxY = minX, minY
	for _, p := range r[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

// BBoxArea returns (maxX-minX) * (maxY-minY), the bounding-box approximation
// of a cell footprint. For non-rectangular (L/T/U/Z) cells this overstates
// the true polygon area; it is only used for label-sizing heuristics.
func BBoxArea(r Ring) float64 {
	minX, minY, maxX, maxY := Bounds(r)
	return (maxX - minX) * (maxY - minY)
}

// PointInRing tests whether p lies inside the ring using ray casting.
//
// An edge participates when p.Y is strictly above the edge's lower Y and at
// or below its upper Y; the crossing toggles when p.X is at or left of the
// edge's x-intercept at p.Y (vertical edges toggle on the x <= max(x) gate
// alone). Points exactly on an edge have unspecified parity; that ambiguity
// is inherited from the reference formulation and deliberately kept.
func PointInRing(p Point, r Ring) bool {
	n := len(r)
	if n < 4 {
		return false
	}

	inside := false
	p1 := r[0]
	for i := 1; i <= n; i++ {
		p2 := r[i%n]
		if p.Y > math.Min(p1.Y, p2.Y) && p.Y <= math.Max(p1.Y, p2.Y) &&
			p.X <= math.Max(p1.X, p2.X) && p1.Y != p2.Y {
			if p1.X == p2.X {
				inside = !inside
			} else {
				xinters := (p.Y-p1.Y)*(p2.X-p1.X)/(p2.Y-p1.Y) + p1.X
				if p.X <= xinters {
					inside = !inside
				}
			}
		}
		p1 = p2
	}
	return inside
}
