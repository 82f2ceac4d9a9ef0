// Package render turns parsed placements into a renderer-agnostic draw
// model and maps cell metrics onto colors.
//
// # Pipeline
//
// A render pass has three inputs: the placement record, a shared
// [Context] (normalization domains plus palette), and the viewport
// window to stamp on the model. [Build] composes them into a [Model],
// an ordered draw list that sinks (SVG, JSON, the terminal inspector)
// paint without knowing anything about placements.
//
// # Paint order
//
// Connections come first so cells draw on top of their routes. Within a
// cell, the optional label paints over the fill.
package render

import (
	"fmt"
	"image/color"

	"github.com/mpgalab/placeview/pkg/geometry"
	"github.com/mpgalab/placeview/pkg/placement"
	"github.com/mpgalab/placeview/pkg/view"
)

// ==============================
// Draw primitives
// ==============================

// Segment is one axis-aligned stroke of a routed connection.
type Segment struct {
	From  geometry.Point `json:"from"`
	To    geometry.Point `json:"to"`
	Width float64        `json:"width"`
}

// Route is a two-bend orthogonal connection path with its stroke style.
type Route struct {
	Segments [2]Segment `json:"segments"`
	Color    color.RGBA `json:"color"`
	Alpha    float64    `json:"alpha"`
	Weight   float64    `json:"weight"`
}

// Label is cell text anchored at the cell centroid.
type Label struct {
	Text     string         `json:"text"`
	At       geometry.Point `json:"at"`
	FontSize float64        `json:"font_size"`
}

// Shape is one filled cell outline, optionally labelled.
type Shape struct {
	CellID    int           `json:"cell_id"`
	Ring      geometry.Ring `json:"ring"`
	Fill      color.RGBA    `json:"fill"`
	Alpha     float64       `json:"alpha"`
	EdgeColor color.RGBA    `json:"edge_color"`
	EdgeWidth float64       `json:"edge_width"`
	Label     *Label        `json:"label,omitempty"`
}

// Model is the complete draw list for one placement plus the window the
// coordinates live in. Routes paint before Shapes.
type Model struct {
	Title  string      `json:"title"`
	Window view.Window `json:"window"`
	Routes []Route     `json:"routes"`
	Shapes []Shape     `json:"shapes"`
}

// ==============================
// Builder
// ==============================

// Style constants for the default look. Connections render translucent
// so dense netlists stay readable under the cells.
var (
	connectionColor = rgb(31, 119, 180)
	cellEdgeColor   = rgb(0, 0, 0)
	flatFillColor   = rgb(173, 216, 230)
)

const (
	connectionAlpha = 0.4
	cellAlpha       = 0.7
	cellEdgeWidth   = 0.8

	baseRouteWidth  = 0.5
	routeWidthScale = 3.0

	labelMinArea  = 1.5
	labelFontMin  = 4.0
	labelFontMax  = 10.0
	labelFontArea = 5.0
)

// Options selects which layers Build emits and how cells are filled.
type Options struct {
	// ShowConnections emits the routed connection layer.
	ShowConnections bool
	// ShowLabels emits labels on cells large enough to hold them.
	ShowLabels bool
	// ThermalFill colors cells through the context palette; when false
	// every cell gets the same flat fill.
	ThermalFill bool
}

// DefaultOptions renders everything with thermal coloring on.
func DefaultOptions() Options {
	return Options{ShowConnections: true, ShowLabels: true, ThermalFill: true}
}

// Build composes a placement, a shared context and a viewport window
// into a draw model. Connections route orthogonally between cell
// centroids: horizontal leg first, then vertical.
func Build(rec *placement.Record, ctx *Context, win view.Window, opts Options) (*Model, error) {
	if rec == nil {
		return nil, fmt.Errorf("build model: nil record")
	}
	if ctx == nil {
		return nil, fmt.Errorf("build model: nil context")
	}
	m := &Model{Title: rec.Name, Window: win}

	if opts.ShowConnections {
		m.Routes = make([]Route, 0, len(rec.Conns))
		for _, conn := range rec.Conns {
			m.Routes = append(m.Routes, buildRoute(conn, ctx))
		}
	}

	m.Shapes = make([]Shape, 0, len(rec.Cells))
	for _, cell := range rec.Cells {
		shape := Shape{
			CellID:    cell.ID,
			Ring:      cell.Polygon,
			Fill:      flatFillColor,
			Alpha:     cellAlpha,
			EdgeColor: cellEdgeColor,
			EdgeWidth: cellEdgeWidth,
		}
		if opts.ThermalFill {
			shape.Fill = ctx.ThermalColor(cell.ThermalValue)
		}
		if opts.ShowLabels {
			shape.Label = buildLabel(cell)
		}
		m.Shapes = append(m.Shapes, shape)
	}
	return m, nil
}

func buildRoute(conn placement.Connection, ctx *Context) Route {
	w := baseRouteWidth + routeWidthScale*ctx.Weight.Apply(conn.Weight)
	bend := geometry.Point{X: conn.B.X, Y: conn.A.Y}
	return Route{
		Segments: [2]Segment{
			{From: conn.A, To: bend, Width: w},
			{From: bend, To: conn.B, Width: w},
		},
		Color:  connectionColor,
		Alpha:  connectionAlpha,
		Weight: conn.Weight,
	}
}

// buildLabel returns nil for unnamed cells and for cells whose bounding
// box is too small to carry readable text.
func buildLabel(cell placement.Cell) *Label {
	if cell.Name == "" {
		return nil
	}
	area := geometry.BBoxArea(cell.Polygon)
	if area <= labelMinArea {
		return nil
	}
	size := area / labelFontArea
	if size < labelFontMin {
		size = labelFontMin
	}
	if size > labelFontMax {
		size = labelFontMax
	}
	return &Label{Text: cell.Name, At: cell.Centroid(), FontSize: size}
}
