package render

import (
	"image/color"

	"github.com/mpgalab/placeview/pkg/placement"
)

// Context carries the shared color state for one render pass: the
// thermal and weight normalization domains plus the resolved palette.
//
// Build it with NewContext over every placement that will appear in the
// same view. Passing all placements of a comparison at once is what
// makes their colors comparable: the domains cover the union, so the
// same thermal value maps to the same color in every pane.
type Context struct {
	Thermal Normalizer
	Weight  Normalizer
	Palette Palette
}

// NewContext builds a shared render context over one or more placements.
// The palette name must be one of PaletteNames.
func NewContext(paletteName string, recs ...*placement.Record) (*Context, error) {
	pal, err := LookupPalette(paletteName)
	if err != nil {
		return nil, err
	}
	var thermals, weights []float64
	for _, rec := range recs {
		if rec == nil {
			continue
		}
		thermals = append(thermals, rec.ThermalValues()...)
		weights = append(weights, rec.Weights()...)
	}
	return &Context{
		Thermal: NewNormalizer(thermals),
		Weight:  NewNormalizer(weights),
		Palette: pal,
	}, nil
}

// ThermalColor maps a cell's thermal value through the shared domain and
// palette.
func (c *Context) ThermalColor(v float64) color.RGBA {
	return c.Palette.At(c.Thermal.Apply(v))
}
