// Package netgraph renders the logical connectivity of a placement as
// a node-link diagram.
//
// Where the draw model shows cells at their physical positions, the
// netgraph ignores geometry entirely: cells become nodes, connections
// become weighted edges, and Graphviz lays the topology out. The view
// is useful for judging netlist structure independent of placement.
package netgraph

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mpgalab/placeview/pkg/geometry"
	"github.com/mpgalab/placeview/pkg/placement"
)

// Options configures netgraph rendering.
type Options struct {
	// Detailed includes thermal and power values in node labels.
	// When false, only the cell name is shown.
	Detailed bool
}

// ToDOT converts a placement's connectivity to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG] or
// [RenderPNG]. High-thermal cells get a red outline so hotspots stand
// out in the topology too.
func ToDOT(rec *placement.Record, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, cell := range rec.Cells {
		label := fmtLabel(cell, opts.Detailed)
		attrs := fmtAttrs(cell, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(cell), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, conn := range rec.Conns {
		a, okA := cellAt(rec, conn.A.X, conn.A.Y)
		b, okB := cellAt(rec, conn.B.X, conn.B.Y)
		if !okA || !okB {
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q [penwidth=%.2f, label=\"%.2f\", fontsize=8];\n",
			nodeID(*a), nodeID(*b), 0.5+3*conn.Weight, conn.Weight)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(cell placement.Cell) string {
	if cell.Name != "" {
		return cell.Name
	}
	return fmt.Sprintf("cell_%d", cell.ID)
}

func fmtLabel(cell placement.Cell, detailed bool) string {
	if !detailed {
		return nodeID(cell)
	}
	return fmt.Sprintf("%s\nthermal: %.2f\npower: %.2f",
		nodeID(cell), cell.ThermalValue, cell.PowerDensity)
}

func fmtAttrs(cell placement.Cell, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if cell.HighThermal() {
		attrs = append(attrs, "color=red", "penwidth=2")
	}
	return attrs
}

// cellAt resolves a connection endpoint back to its cell. Endpoints are
// cell centroids, so the containment test finds the owner. Endpoints
// outside every cell (centroids of concave outlines can fall in a
// notch) fall back to nearest-centroid matching.
func cellAt(rec *placement.Record, x, y float64) (*placement.Cell, bool) {
	if cell, ok := placement.FindCellAt(geometry.Point{X: x, Y: y}, rec); ok {
		return cell, true
	}
	var best *placement.Cell
	var bestDist float64
	for i := range rec.Cells {
		c := rec.Cells[i].Centroid()
		d := (c.X-x)*(c.X-x) + (c.Y-y)*(c.Y-y)
		if best == nil || d < bestDist {
			best = &rec.Cells[i]
			bestDist = d
		}
	}
	return best, best != nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
