package sink

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/mpgalab/placeview/pkg/geometry"
	"github.com/mpgalab/placeview/pkg/render"
)

// DefaultSVGWidth is the pixel width used when callers pass 0.
const DefaultSVGWidth = 800

// WriteSVG paints the draw model into a standalone SVG document. The
// model's window maps onto a canvas of the given pixel width; height
// follows the window's aspect ratio. World Y grows upward, SVG Y grows
// downward, so coordinates flip on the way out.
func WriteSVG(w io.Writer, m *render.Model, widthPx float64) error {
	if m == nil {
		return fmt.Errorf("write svg: nil model")
	}
	if widthPx <= 0 {
		widthPx = DefaultSVGWidth
	}
	win := m.Window
	if win.Width() <= 0 || win.Height() <= 0 {
		return fmt.Errorf("write svg: degenerate window")
	}
	scale := widthPx / win.Width()
	heightPx := win.Height() * scale

	px := func(x float64) float64 { return (x - win.XMin) * scale }
	py := func(y float64) float64 { return (win.YMax - y) * scale }

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		widthPx, heightPx, widthPx, heightPx)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="white"/>`+"\n")
	if m.Title != "" {
		fmt.Fprintf(&b, `<title>%s</title>`+"\n", escapeXML(m.Title))
	}

	for _, route := range m.Routes {
		stroke := cssColor(route.Color)
		for _, seg := range route.Segments {
			fmt.Fprintf(&b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.2f" stroke-width="%.2f"/>`+"\n",
				px(seg.From.X), py(seg.From.Y), px(seg.To.X), py(seg.To.Y),
				stroke, route.Alpha, seg.Width*scale)
		}
	}

	for _, shape := range m.Shapes {
		fmt.Fprintf(&b, `<polygon points="%s" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
			svgPoints(shape.Ring, px, py), cssColor(shape.Fill), shape.Alpha,
			cssColor(shape.EdgeColor), shape.EdgeWidth)
		if shape.Label != nil {
			fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif">%s</text>`+"\n",
				px(shape.Label.At.X), py(shape.Label.At.Y),
				shape.Label.FontSize*scale/10, escapeXML(shape.Label.Text))
		}
	}

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func svgPoints(r geometry.Ring, px, py func(float64) float64) string {
	parts := make([]string, 0, len(r))
	for _, p := range r {
		parts = append(parts, fmt.Sprintf("%.2f,%.2f", px(p.X), py(p.Y)))
	}
	return strings.Join(parts, " ")
}

func cssColor(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
