package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"
)

// ErrUnknownPalette is returned by LookupPalette for names outside the
// supported set. Wrap sites add the offending name.
var ErrUnknownPalette = errors.New("unknown palette")

// Palette is a continuous colormap sampled by interpolating between a
// small set of anchor colors spaced evenly on [0, 1].
type Palette struct {
	name    string
	anchors []color.RGBA
}

// Name returns the palette's registry name.
func (p Palette) Name() string { return p.name }

// At samples the palette at position t, clamped to [0, 1].
func (p Palette) At(t float64) color.RGBA {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	n := len(p.anchors)
	if n == 1 {
		return p.anchors[0]
	}
	pos := t * float64(n-1)
	i := int(pos)
	if i >= n-1 {
		return p.anchors[n-1]
	}
	frac := pos - float64(i)
	return lerpRGB(p.anchors[i], p.anchors[i+1], frac)
}

func lerpRGB(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + t*(float64(y)-float64(x))))
	}
	return color.RGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: 255,
	}
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

// Anchor colors follow the familiar scientific colormaps so renders read
// the same as other placement tooling.
var palettes = map[string]Palette{
	"hot": {name: "hot", anchors: []color.RGBA{
		rgb(10, 0, 0), rgb(230, 0, 0), rgb(255, 210, 0), rgb(255, 255, 255),
	}},
	"viridis": {name: "viridis", anchors: []color.RGBA{
		rgb(68, 1, 84), rgb(59, 82, 139), rgb(33, 145, 140), rgb(94, 201, 98), rgb(253, 231, 37),
	}},
	"plasma": {name: "plasma", anchors: []color.RGBA{
		rgb(13, 8, 135), rgb(126, 3, 168), rgb(204, 71, 120), rgb(248, 149, 64), rgb(240, 249, 33),
	}},
	"inferno": {name: "inferno", anchors: []color.RGBA{
		rgb(0, 0, 4), rgb(87, 16, 110), rgb(188, 55, 84), rgb(249, 142, 9), rgb(252, 255, 164),
	}},
	"magma": {name: "magma", anchors: []color.RGBA{
		rgb(0, 0, 4), rgb(81, 18, 124), rgb(183, 55, 121), rgb(252, 137, 97), rgb(252, 253, 191),
	}},
	"coolwarm": {name: "coolwarm", anchors: []color.RGBA{
		rgb(59, 76, 192), rgb(221, 221, 221), rgb(180, 4, 38),
	}},
}

// DefaultPalette is the palette used when callers do not pick one.
const DefaultPalette = "hot"

// LookupPalette resolves a palette by name.
func LookupPalette(name string) (Palette, error) {
	p, ok := palettes[name]
	if !ok {
		return Palette{}, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
	return p, nil
}

// PaletteNames lists the supported palette names in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PaletteList renders the supported names as a comma separated string
// for flag help and error messages.
func PaletteList() string { return strings.Join(PaletteNames(), ", ") }
