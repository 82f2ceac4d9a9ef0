// Package view maintains the data-space view window for an interactive
// visual context and the pixel/data coordinate conversions around it.
//
// One [Window] exists per visual context; only Zoom, Pan, and Reset mutate
// it, and the host is expected to serialize those calls. The window is
// never allowed to become degenerate: both axes always keep max > min.
package view

import (
	"github.com/mpgalab/placeview/pkg/geometry"
	"github.com/mpgalab/placeview/pkg/placement"
)

// FieldMargin is the data-space margin added around the field on reset,
// so cells on the boundary are not clipped by the window edge.
const FieldMargin = 1.0

// DefaultZoomStep is the canonical zoom-in factor; its reciprocal zooms
// back out to the starting window.
const DefaultZoomStep = 0.8

// Window is a data-space view rectangle.
type Window struct {
	XMin, XMax float64
	YMin, YMax float64
}

// FromField returns the default window for a field:
// [-1, cols+1] x [-1, rows+1].
func FromField(f placement.Field) Window {
	return Window{
		XMin: -FieldMargin,
		XMax: float64(f.Cols) + FieldMargin,
		YMin: -FieldMargin,
		YMax: float64(f.Rows) + FieldMargin,
	}
}

// Width returns the data-space width of the window.
func (w Window) Width() float64 { return w.XMax - w.XMin }

// Height returns the data-space height of the window.
func (w Window) Height() float64 { return w.YMax - w.YMin }

// Contains reports whether p lies within the window.
func (w Window) Contains(p geometry.Point) bool {
	return p.X >= w.XMin && p.X <= w.XMax && p.Y >= w.YMin && p.Y <= w.YMax
}

// Zoom scales the window by factor around anchor, keeping the anchor's
// fractional position within the window constant. Factors below 1 zoom in,
// above 1 zoom out. Non-positive factors are ignored so the window can
// never collapse or invert.
func (w *Window) Zoom(factor float64, anchor geometry.Point) {
	if factor <= 0 {
		return
	}

	newWidth := w.Width() * factor
	newHeight := w.Height() * factor

	relX := (anchor.X - w.XMin) / w.Width()
	relY := (anchor.Y - w.YMin) / w.Height()

	w.XMin = anchor.X - relX*newWidth
	w.XMax = anchor.X + (1-relX)*newWidth
	w.YMin = anchor.Y - relY*newHeight
	w.YMax = anchor.Y + (1-relY)*newHeight
}

// Pan translates the window by a pixel delta. The conversion uses the
// horizontal scale (window width over viewport pixel width) for both axes,
// matching the renderer's uniform scale under an equal-aspect view. The
// delta is negated so dragging moves the content with the cursor.
func (w *Window) Pan(dxPixels, dyPixels, viewportPixelWidth float64) {
	if viewportPixelWidth <= 0 {
		return
	}
	scale := w.Width() / viewportPixelWidth

	dx := -dxPixels * scale
	dy := -dyPixels * scale

	w.XMin += dx
	w.XMax += dx
	w.YMin += dy
	w.YMax += dy
}

// Reset restores the default window for the given field.
func (w *Window) Reset(f placement.Field) {
	*w = FromField(f)
}

// ToPixel maps a data-space point to pixel coordinates in a viewport of
// the given size. Pixel Y grows downward while data Y grows upward.
func (w Window) ToPixel(p geometry.Point, pxWidth, pxHeight float64) (x, y float64) {
	x = (p.X - w.XMin) / w.Width() * pxWidth
	y = (1 - (p.Y-w.YMin)/w.Height()) * pxHeight
	return x, y
}

// FromPixel maps viewport pixel coordinates back to a data-space point.
// It is the inverse of ToPixel and feeds cursor positions to the hit
// tester.
func (w Window) FromPixel(px, py, pxWidth, pxHeight float64) geometry.Point {
	return geometry.Point{
		X: w.XMin + px/pxWidth*w.Width(),
		Y: w.YMin + (1-py/pxHeight)*w.Height(),
	}
}
