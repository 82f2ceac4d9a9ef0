package render

import (
	"math"
	"testing"
)

func TestNewNormalizer(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		min    float64
		max    float64
	}{
		{name: "empty set falls back to unit domain", values: nil, min: 0, max: 1},
		{name: "constant set widens to v plus one", values: []float64{0.5, 0.5, 0.5}, min: 0.5, max: 1.5},
		{name: "spread set keeps extremes", values: []float64{0.2, 0.5, 0.9}, min: 0.2, max: 0.9},
		{name: "negative values", values: []float64{-3, 1, 2}, min: -3, max: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNormalizer(tt.values)
			if n.Min != tt.min || n.Max != tt.max {
				t.Errorf("NewNormalizer(%v) = [%v, %v], want [%v, %v]",
					tt.values, n.Min, n.Max, tt.min, tt.max)
			}
		})
	}
}

func TestNormalizerApply(t *testing.T) {
	n := NewNormalizer([]float64{0.2, 0.5, 0.9})
	if got := n.Apply(0.2); got != 0 {
		t.Errorf("Apply(0.2) = %v, want 0", got)
	}
	if got := n.Apply(0.9); got != 1 {
		t.Errorf("Apply(0.9) = %v, want 1", got)
	}
	mid := n.Apply(0.5)
	want := (0.5 - 0.2) / (0.9 - 0.2)
	if math.Abs(mid-want) > 1e-12 {
		t.Errorf("Apply(0.5) = %v, want %v", mid, want)
	}
}

func TestNormalizerApplyConstantDomain(t *testing.T) {
	n := NewNormalizer([]float64{3, 3})
	if got := n.Apply(3); got != 0 {
		t.Errorf("Apply(3) on constant domain = %v, want 0", got)
	}
	if got := n.Apply(4); got != 1 {
		t.Errorf("Apply(4) on constant domain = %v, want 1", got)
	}
}
