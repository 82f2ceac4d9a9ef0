// Package scheme generates synthetic placement records for demos and
// benchmarks.
//
// Cells get random orthogonal outlines (rectangles plus L, T, U and Z
// cutout variants) placed at random in-field offsets, realistic IC
// block names, and thermal and power values inside fixed ranges. The
// connection set comes from a sparse symmetric weight matrix routed
// between cell centroids. A fixed seed reproduces the same record.
package scheme

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/mpgalab/placeview/pkg/geometry"
	"github.com/mpgalab/placeview/pkg/placement"
)

// ==============================
// Generation ranges
// ==============================

const (
	minCellSize = 1
	maxCellSize = 5

	minThermal = 0.2
	maxThermal = 0.95
	minPower   = 0.1
	maxPower   = 0.85

	minWeight = 0.0
	maxWeight = 1.0

	// Probability that a cell pair stays unconnected.
	connectionSparsity = 0.3
)

var cellTypes = []string{
	"CPU_Core", "GPU_Core", "Memory_Controller", "Cache_L1", "Cache_L2",
	"DDR_Controller", "PCIe_Controller", "SATA_Controller", "USB_Controller",
	"Network_Controller", "Audio_Processor", "Video_Encoder", "Video_Decoder",
	"Display_Controller", "GPIO_Controller", "Power_Management", "Clock_Generator",
	"Security_Module", "I2C_Controller", "SPI_Controller", "UART_Controller",
	"AI_Accelerator", "DSP_Unit",
}

// Params controls one generation run.
type Params struct {
	NumCells     int
	Rows         int
	Cols         int
	AllowFillers bool
	// Seed fixes the random stream; zero picks a time-based seed.
	Seed int64
}

// DefaultParams mirrors the common demo configuration.
func DefaultParams() Params {
	return Params{NumCells: 20, Rows: 25, Cols: 25}
}

// Generate builds a random placement record. Declared metadata matches
// the generated entities exactly.
func Generate(p Params) (*placement.Record, error) {
	if p.NumCells < 0 {
		return nil, fmt.Errorf("generate scheme: negative cell count %d", p.NumCells)
	}
	if p.Rows < 2 || p.Cols < 2 {
		return nil, fmt.Errorf("generate scheme: field %dx%d too small", p.Rows, p.Cols)
	}
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	rec := &placement.Record{
		Name: "generated",
		Field: placement.Field{
			Rows:         p.Rows,
			Cols:         p.Cols,
			AllowFillers: p.AllowFillers,
		},
	}

	maxW := min(maxCellSize, p.Cols/2)
	maxH := min(maxCellSize, p.Rows/2)
	for i := 0; i < p.NumCells; i++ {
		ring := orthogonalPolygon(rnd, maxW, maxH)
		ring = placeInField(rnd, ring, p.Rows, p.Cols)
		rec.Cells = append(rec.Cells, placement.Cell{
			ID:           i,
			Name:         fmt.Sprintf("%s_%d", cellTypes[rnd.Intn(len(cellTypes))], i+1),
			Polygon:      ring,
			ThermalValue: round2(uniform(rnd, minThermal, maxThermal)),
			PowerDensity: round2(uniform(rnd, minPower, maxPower)),
		})
	}

	// Upper-triangle sweep keeps weights symmetric without storing the
	// full matrix.
	for i := 0; i < p.NumCells; i++ {
		for j := i + 1; j < p.NumCells; j++ {
			if rnd.Float64() < connectionSparsity {
				continue
			}
			w := round2(uniform(rnd, minWeight, maxWeight))
			if w == 0 {
				continue
			}
			rec.Conns = append(rec.Conns, placement.Connection{
				A:      rec.Cells[i].Centroid(),
				B:      rec.Cells[j].Centroid(),
				Weight: w,
			})
		}
	}

	var total float64
	for _, c := range rec.Conns {
		total += c.Weight
	}
	rec.Declared = placement.Metadata{
		CellCount:   len(rec.Cells),
		ConnCount:   len(rec.Conns),
		TotalWeight: round2(total),
	}
	return rec, nil
}

// ==============================
// Outline shapes
// ==============================

// orthogonalPolygon builds a closed ring at the origin. Small bases stay
// rectangles because the cutouts need room.
func orthogonalPolygon(rnd *rand.Rand, maxW, maxH int) geometry.Ring {
	bw := float64(randInt(rnd, minCellSize, maxW))
	bh := float64(randInt(rnd, minCellSize, maxH))

	shape := []string{"rectangle", "L", "T", "U", "Z"}[rnd.Intn(5)]
	if shape == "rectangle" || bw <= 2 || bh <= 2 {
		return rect(bw, bh)
	}

	switch shape {
	case "L":
		cw := float64(randInt(rnd, 1, int(bw)-1))
		ch := float64(randInt(rnd, 1, int(bh)-1))
		return geometry.Ring{
			{X: 0, Y: 0}, {X: bw, Y: 0},
			{X: bw, Y: bh - ch}, {X: bw - cw, Y: bh - ch},
			{X: bw - cw, Y: bh}, {X: 0, Y: bh},
			{X: 0, Y: 0},
		}
	case "T":
		sw := randInt(rnd, 1, int(bw)-2)
		ss := randInt(rnd, 0, int(bw)-sw)
		bar := math.Floor(bh / 3)
		return geometry.Ring{
			{X: 0, Y: 0}, {X: bw, Y: 0},
			{X: bw, Y: bar}, {X: float64(ss + sw), Y: bar},
			{X: float64(ss + sw), Y: bh}, {X: float64(ss), Y: bh},
			{X: float64(ss), Y: bar}, {X: 0, Y: bar},
			{X: 0, Y: 0},
		}
	case "U":
		opening := randInt(rnd, 1, int(bw)-2)
		wall := float64(randInt(rnd, 1, (int(bw)-opening)/2))
		floor := math.Floor(bh / 3)
		return geometry.Ring{
			{X: 0, Y: 0}, {X: bw, Y: 0},
			{X: bw, Y: bh}, {X: bw - wall, Y: bh},
			{X: bw - wall, Y: floor}, {X: wall, Y: floor},
			{X: wall, Y: bh}, {X: 0, Y: bh},
			{X: 0, Y: 0},
		}
	default: // Z
		indent := float64(randInt(rnd, 1, int(bw)/2))
		half := math.Floor(bh / 2)
		return geometry.Ring{
			{X: 0, Y: 0}, {X: bw, Y: 0},
			{X: bw, Y: half}, {X: indent, Y: half},
			{X: indent, Y: bh}, {X: 0, Y: bh},
			{X: 0, Y: 0},
		}
	}
}

func rect(w, h float64) geometry.Ring {
	return geometry.Ring{
		{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}, {X: 0, Y: 0},
	}
}

// placeInField translates an origin-anchored ring to a random offset
// that keeps it fully inside the field.
func placeInField(rnd *rand.Rand, r geometry.Ring, rows, cols int) geometry.Ring {
	minX, minY, maxX, maxY := geometry.Bounds(r)
	w := maxX - minX
	h := maxY - minY
	ox := float64(randInt(rnd, 0, max(0, cols-int(w))))
	oy := float64(randInt(rnd, 0, max(0, rows-int(h))))
	out := make(geometry.Ring, len(r))
	for i, p := range r {
		out[i] = geometry.Point{X: p.X + ox, Y: p.Y + oy}
	}
	return out
}

// ==============================
// Random helpers
// ==============================

// randInt returns an integer in [lo, hi].
func randInt(rnd *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rnd.Intn(hi-lo+1)
}

func uniform(rnd *rand.Rand, lo, hi float64) float64 {
	return lo + rnd.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
