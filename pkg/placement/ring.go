package placement

import "github.com/mpgalab/placeview/pkg/geometry"

// normalizeRing resolves the two coordinate-nesting conventions found in
// placement records and returns a single canonical closed ring.
//
// A Polygon's coordinates arrive either as a flat ring ([[x,y], ...]) or as
// a ring-of-rings ([[[x,y], ...]]). The structural probe mirrors the
// reference loader: a list with exactly one element that is itself a list
// of points is unwrapped; anything that cannot be reduced to a non-empty
// flat ring is rejected. Downstream consumers never re-check nesting.
func normalizeRing(coords []any) (geometry.Ring, bool) {
	if len(coords) == 0 {
		return nil, false
	}

	flat := coords
	if len(coords) == 1 {
		inner, ok := coords[0].([]any)
		if !ok {
			return nil, false
		}
		if len(inner) == 0 {
			return nil, false
		}
		if _, ok := inner[0].([]any); !ok {
			// Single element that is a bare point, not a nested ring.
			return nil, false
		}
		flat = inner
	}

	ring := make(geometry.Ring, 0, len(flat)+1)
	for _, c := range flat {
		p, ok := parsePoint(c)
		if !ok {
			return nil, false
		}
		ring = append(ring, p)
	}

	// Close an open ring so the >=4-point closed-ring invariant holds.
	if len(ring) >= 3 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	if !ring.Closed() {
		return nil, false
	}
	return ring, true
}

// parsePoint converts a decoded JSON coordinate pair into a Point.
func parsePoint(v any) (geometry.Point, bool) {
	pair, ok := v.([]any)
	if !ok || len(pair) < 2 {
		return geometry.Point{}, false
	}
	x, okX := toFloat(pair[0])
	y, okY := toFloat(pair[1])
	if !okX || !okY {
		return geometry.Point{}, false
	}
	return geometry.Point{X: x, Y: y}, true
}

// toFloat accepts the numeric types produced by encoding/json.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// stringProp reads a string property, returning "" when absent.
func stringProp(props map[string]any, key string) string {
	if props == nil {
		return ""
	}
	s, _ := props[key].(string)
	return s
}

// floatProp reads a numeric property, returning def when absent or not a
// number.
func floatProp(props map[string]any, key string, def float64) float64 {
	if props == nil {
		return def
	}
	if f, ok := toFloat(props[key]); ok {
		return f
	}
	return def
}

// boolProp reads a boolean property, returning false when absent.
func boolProp(props map[string]any, key string) bool {
	if props == nil {
		return false
	}
	b, _ := props[key].(bool)
	return b
}
