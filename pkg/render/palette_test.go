package render

import (
	"errors"
	"testing"
)

func TestLookupPalette(t *testing.T) {
	for _, name := range PaletteNames() {
		t.Run(name, func(t *testing.T) {
			p, err := LookupPalette(name)
			if err != nil {
				t.Fatalf("LookupPalette(%q) error: %v", name, err)
			}
			if p.Name() != name {
				t.Errorf("palette name = %q, want %q", p.Name(), name)
			}
		})
	}
}

func TestLookupPaletteUnknown(t *testing.T) {
	_, err := LookupPalette("jet")
	if !errors.Is(err, ErrUnknownPalette) {
		t.Fatalf("LookupPalette(jet) error = %v, want ErrUnknownPalette", err)
	}
}

func TestPaletteAtEndpoints(t *testing.T) {
	p, err := LookupPalette("coolwarm")
	if err != nil {
		t.Fatal(err)
	}
	lo := p.At(0)
	if lo.R != 59 || lo.G != 76 || lo.B != 192 {
		t.Errorf("At(0) = %v, want first anchor", lo)
	}
	hi := p.At(1)
	if hi.R != 180 || hi.G != 4 || hi.B != 38 {
		t.Errorf("At(1) = %v, want last anchor", hi)
	}
}

func TestPaletteAtClamps(t *testing.T) {
	p, err := LookupPalette("viridis")
	if err != nil {
		t.Fatal(err)
	}
	if p.At(-0.5) != p.At(0) {
		t.Error("At below zero should clamp to the first anchor")
	}
	if p.At(2) != p.At(1) {
		t.Error("At above one should clamp to the last anchor")
	}
}

func TestPaletteAtMidpoint(t *testing.T) {
	// coolwarm has three anchors, so t=0.5 lands exactly on the middle one.
	p, err := LookupPalette("coolwarm")
	if err != nil {
		t.Fatal(err)
	}
	mid := p.At(0.5)
	if mid.R != 221 || mid.G != 221 || mid.B != 221 {
		t.Errorf("At(0.5) = %v, want middle anchor", mid)
	}
}
