package placement

import "github.com/mpgalab/placeview/pkg/geometry"

// FindCellAt returns the first cell whose polygon contains p, scanning in
// entity declaration order. First match wins: overlapping cells are a known
// ambiguity and no z-order is applied. The bool result is false when no
// cell contains the point.
//
// The function is pure (it only reads the record), so it may be called
// from hover handlers while a render is in flight.
func FindCellAt(p geometry.Point, rec *Record) (*Cell, bool) {
	if rec == nil {
		return nil, false
	}
	for i := range rec.Cells {
		if geometry.PointInRing(p, rec.Cells[i].Polygon) {
			return &rec.Cells[i], true
		}
	}
	return nil, false
}
