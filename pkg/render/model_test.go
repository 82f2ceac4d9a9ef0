package render

import (
	"math"
	"testing"

	"github.com/mpgalab/placeview/pkg/geometry"
	"github.com/mpgalab/placeview/pkg/placement"
	"github.com/mpgalab/placeview/pkg/view"
)

func square(id int, name string, x, y, side float64) placement.Cell {
	return placement.Cell{
		ID:   id,
		Name: name,
		Polygon: geometry.Ring{
			{X: x, Y: y}, {X: x + side, Y: y},
			{X: x + side, Y: y + side}, {X: x, Y: y + side},
			{X: x, Y: y},
		},
		ThermalValue: 0.5,
	}
}

func testRecord() *placement.Record {
	return &placement.Record{
		Name:  "demo",
		Field: placement.Field{Rows: 10, Cols: 10},
		Cells: []placement.Cell{
			square(0, "CPU_Core", 0, 0, 4),
			square(1, "Cache_L1", 6, 6, 1),
		},
		Conns: []placement.Connection{
			{A: geometry.Point{X: 2, Y: 2}, B: geometry.Point{X: 6.5, Y: 6.5}, Weight: 0.8},
		},
	}
}

func buildContext(t *testing.T, recs ...*placement.Record) *Context {
	t.Helper()
	ctx, err := NewContext("hot", recs...)
	if err != nil {
		t.Fatal(err)
	}
	return ctx
}

func TestBuildRoutesOrthogonally(t *testing.T) {
	rec := testRecord()
	ctx := buildContext(t, rec)
	m, err := Build(rec, ctx, view.FromField(rec.Field), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(m.Routes))
	}
	route := m.Routes[0]
	h, v := route.Segments[0], route.Segments[1]
	if h.From != (geometry.Point{X: 2, Y: 2}) || h.To != (geometry.Point{X: 6.5, Y: 2}) {
		t.Errorf("horizontal leg = %v -> %v, want (2,2) -> (6.5,2)", h.From, h.To)
	}
	if v.From != (geometry.Point{X: 6.5, Y: 2}) || v.To != (geometry.Point{X: 6.5, Y: 6.5}) {
		t.Errorf("vertical leg = %v -> %v, want (6.5,2) -> (6.5,6.5)", v.From, v.To)
	}
}

func TestBuildRouteWidthTracksWeight(t *testing.T) {
	rec := testRecord()
	rec.Conns = []placement.Connection{
		{A: geometry.Point{X: 0, Y: 0}, B: geometry.Point{X: 1, Y: 1}, Weight: 0.2},
		{A: geometry.Point{X: 0, Y: 0}, B: geometry.Point{X: 1, Y: 1}, Weight: 0.9},
	}
	ctx := buildContext(t, rec)
	m, err := Build(rec, ctx, view.FromField(rec.Field), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	// Weight domain is [0.2, 0.9]: the light connection sits at the base
	// width, the heavy one at base plus the full scale.
	if got := m.Routes[0].Segments[0].Width; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("min weight width = %v, want 0.5", got)
	}
	if got := m.Routes[1].Segments[0].Width; math.Abs(got-3.5) > 1e-9 {
		t.Errorf("max weight width = %v, want 3.5", got)
	}
}

func TestBuildLabels(t *testing.T) {
	rec := testRecord()
	ctx := buildContext(t, rec)
	m, err := Build(rec, ctx, view.FromField(rec.Field), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Shapes) != 2 {
		t.Fatalf("shapes = %d, want 2", len(m.Shapes))
	}
	big, small := m.Shapes[0], m.Shapes[1]
	if big.Label == nil {
		t.Fatal("large cell should carry a label")
	}
	if big.Label.Text != "CPU_Core" {
		t.Errorf("label text = %q, want CPU_Core", big.Label.Text)
	}
	// Area 16 gives 16/5 = 3.2, clamped up to the 4pt floor.
	if big.Label.FontSize != 4 {
		t.Errorf("font size = %v, want 4", big.Label.FontSize)
	}
	if small.Label != nil {
		t.Errorf("1x1 cell got a label %v, want none", small.Label)
	}
}

func TestBuildLabelFontClamp(t *testing.T) {
	rec := &placement.Record{
		Name:  "big",
		Field: placement.Field{Rows: 100, Cols: 100},
		Cells: []placement.Cell{square(0, "GPU_Core", 0, 0, 30)},
	}
	ctx := buildContext(t, rec)
	m, err := Build(rec, ctx, view.FromField(rec.Field), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	// Area 900 gives 180, clamped down to the 10pt ceiling.
	if got := m.Shapes[0].Label.FontSize; got != 10 {
		t.Errorf("font size = %v, want 10", got)
	}
}

func TestBuildOptions(t *testing.T) {
	rec := testRecord()
	ctx := buildContext(t, rec)
	m, err := Build(rec, ctx, view.FromField(rec.Field), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Routes) != 0 {
		t.Errorf("routes = %d, want 0 with connections off", len(m.Routes))
	}
	for _, shape := range m.Shapes {
		if shape.Label != nil {
			t.Error("labels emitted with labels off")
		}
		if shape.Fill != flatFillColor {
			t.Errorf("fill = %v, want flat fill with thermal off", shape.Fill)
		}
	}
}

func TestBuildSharedContextUnifiesColors(t *testing.T) {
	cool := testRecord()
	cool.Cells[0].ThermalValue = 0.1
	cool.Cells[1].ThermalValue = 0.2
	hot := testRecord()
	hot.Cells[0].ThermalValue = 0.9
	hot.Cells[1].ThermalValue = 0.2

	shared := buildContext(t, cool, hot)
	mc, err := Build(cool, shared, view.FromField(cool.Field), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	mh, err := Build(hot, shared, view.FromField(hot.Field), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	// The 0.2 cells must land on the same color in both models because
	// the normalization domain covers the union of all placements.
	if mc.Shapes[1].Fill != mh.Shapes[1].Fill {
		t.Errorf("same thermal value rendered differently: %v vs %v",
			mc.Shapes[1].Fill, mh.Shapes[1].Fill)
	}
	if mc.Shapes[0].Fill == mh.Shapes[0].Fill {
		t.Error("distinct thermal extremes rendered identically")
	}
}

func TestBuildNilInputs(t *testing.T) {
	rec := testRecord()
	ctx := buildContext(t, rec)
	if _, err := Build(nil, ctx, view.Window{}, DefaultOptions()); err == nil {
		t.Error("Build(nil record) should fail")
	}
	if _, err := Build(rec, nil, view.Window{}, DefaultOptions()); err == nil {
		t.Error("Build(nil context) should fail")
	}
}
