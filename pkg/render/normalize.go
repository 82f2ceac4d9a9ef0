package render

// Normalizer linearly maps values from a min/max domain onto [0, 1].
//
// The zero value is unusable; build one with NewNormalizer so the
// degenerate domains (no values, all values equal) get their documented
// substitutes and Apply can never divide by zero.
type Normalizer struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NewNormalizer derives a normalization domain from a value set. An empty
// set yields the [0, 1] domain; a constant set v yields [v, v+1].
func NewNormalizer(values []float64) Normalizer {
	if len(values) == 0 {
		return Normalizer{Min: 0, Max: 1}
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		max = min + 1
	}
	return Normalizer{Min: min, Max: max}
}

// Apply maps v onto the unit interval. Values outside the domain map
// outside [0, 1]; callers that need clamping (palette lookup, widths)
// clamp at the point of use.
func (n Normalizer) Apply(v float64) float64 {
	return (v - n.Min) / (n.Max - n.Min)
}
