package placement

import (
	"errors"
	"testing"

	"github.com/mpgalab/placeview/pkg/geometry"
)

func TestParseBasicRecord(t *testing.T) {
	data := []byte(`{
		"features": [
			{"geometry": {"type": "Polygon", "coordinates": [[0,0],[2,0],[2,2],[0,2],[0,0]]},
			 "properties": {"type": "CPU_Core", "id": 1, "name": "CPU_Core_1", "thermal_value": 0.8, "power_density": 0.4}},
			{"geometry": {"type": "LineString", "coordinates": [[1,1],[4,3]]},
			 "properties": {"type": "connection", "weight": 0.5}}
		],
		"metadata": {
			"cell_count": 1, "connection_count": 1, "total_connection_weight": 0.5,
			"field": {"rows": 25, "cols": 30, "allow_fillers": true}
		}
	}`)

	rec, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(rec.Cells) != 1 {
		t.Fatalf("got %d cells, want 1", len(rec.Cells))
	}
	cell := rec.Cells[0]
	if cell.ID != 1 || cell.Name != "CPU_Core_1" {
		t.Errorf("cell identity = (%d, %q), want (1, CPU_Core_1)", cell.ID, cell.Name)
	}
	if cell.ThermalValue != 0.8 || cell.PowerDensity != 0.4 {
		t.Errorf("cell values = (%v, %v), want (0.8, 0.4)", cell.ThermalValue, cell.PowerDensity)
	}
	if !cell.HighThermal() {
		t.Error("cell with thermal 0.8 should be high-thermal")
	}

	if len(rec.Conns) != 1 {
		t.Fatalf("got %d connections, want 1", len(rec.Conns))
	}
	conn := rec.Conns[0]
	if conn.A != (geometry.Point{X: 1, Y: 1}) || conn.B != (geometry.Point{X: 4, Y: 3}) {
		t.Errorf("connection endpoints = %v, %v", conn.A, conn.B)
	}
	if conn.Weight != 0.5 {
		t.Errorf("connection weight = %v, want 0.5", conn.Weight)
	}
	if conn.Length() != 5 {
		t.Errorf("connection length = %v, want 5", conn.Length())
	}

	if rec.Field != (Field{Rows: 25, Cols: 30, AllowFillers: true}) {
		t.Errorf("field = %+v", rec.Field)
	}
	if rec.Declared != (Metadata{CellCount: 1, ConnCount: 1, TotalWeight: 0.5}) {
		t.Errorf("declared metadata = %+v", rec.Declared)
	}
}

func TestParseRingNesting(t *testing.T) {
	flat := []byte(`{"features": [
		{"geometry": {"type": "Polygon", "coordinates": [[0,0],[2,0],[2,2],[0,2],[0,0]]},
		 "properties": {"type": "cell"}}]}`)
	nested := []byte(`{"features": [
		{"geometry": {"type": "Polygon", "coordinates": [[[0,0],[2,0],[2,2],[0,2],[0,0]]]},
		 "properties": {"type": "cell"}}]}`)

	recFlat, err := Parse(flat)
	if err != nil {
		t.Fatalf("Parse(flat) error = %v", err)
	}
	recNested, err := Parse(nested)
	if err != nil {
		t.Fatalf("Parse(nested) error = %v", err)
	}

	if len(recFlat.Cells) != 1 || len(recNested.Cells) != 1 {
		t.Fatalf("cell counts = %d, %d, want 1, 1", len(recFlat.Cells), len(recNested.Cells))
	}

	want := geometry.Ring{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 0}}
	for name, ring := range map[string]geometry.Ring{
		"flat":   recFlat.Cells[0].Polygon,
		"nested": recNested.Cells[0].Polygon,
	} {
		if len(ring) != len(want) {
			t.Fatalf("%s ring length = %d, want %d", name, len(ring), len(want))
		}
		for i := range want {
			if ring[i] != want[i] {
				t.Errorf("%s ring[%d] = %v, want %v", name, i, ring[i], want[i])
			}
		}
	}
}

func TestParseSkipsMalformedFeatures(t *testing.T) {
	tests := []struct {
		name     string
		features string
	}{
		{"missing geometry", `{"properties": {"type": "cell"}}`},
		{"empty coordinates", `{"geometry": {"type": "Polygon", "coordinates": []}, "properties": {"type": "cell"}}`},
		{"geometry type mismatch", `{"geometry": {"type": "LineString", "coordinates": [[0,0],[1,1]]}, "properties": {"type": "cell"}}`},
		{"connection with polygon", `{"geometry": {"type": "Polygon", "coordinates": [[0,0],[1,0],[1,1],[0,0]]}, "properties": {"type": "connection"}}`},
		{"connection single endpoint", `{"geometry": {"type": "LineString", "coordinates": [[0,0]]}, "properties": {"type": "connection"}}`},
		{"nested but empty inner", `{"geometry": {"type": "Polygon", "coordinates": [[]]}, "properties": {"type": "cell"}}`},
		{"ring below minimum", `{"geometry": {"type": "Polygon", "coordinates": [[0,0],[1,1]]}, "properties": {"type": "cell"}}`},
		{"non-numeric coordinates", `{"geometry": {"type": "Polygon", "coordinates": [["a","b"],[1,0],[1,1],[0,1]]}, "properties": {"type": "cell"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(`{"features": [` + tt.features + `]}`)
			rec, err := Parse(data)
			if err != nil {
				t.Fatalf("Parse() error = %v, malformed features must be skipped, not fatal", err)
			}
			if len(rec.Cells) != 0 || len(rec.Conns) != 0 {
				t.Errorf("got %d cells, %d connections, want 0, 0", len(rec.Cells), len(rec.Conns))
			}
		})
	}
}

func TestParseSkipKeepsValidFeatures(t *testing.T) {
	data := []byte(`{"features": [
		{"geometry": {"type": "Polygon", "coordinates": []}, "properties": {"type": "cell"}},
		{"geometry": {"type": "Polygon", "coordinates": [[0,0],[1,0],[1,1],[0,1],[0,0]]}, "properties": {"type": "cell", "id": 7}},
		{"properties": {"type": "connection"}},
		{"geometry": {"type": "LineString", "coordinates": [[0,0],[2,2]]}, "properties": {"type": "connection", "weight": 1.5}}
	]}`)

	rec, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(rec.Cells) != 1 || rec.Cells[0].ID != 7 {
		t.Errorf("surviving cells = %+v, want single cell with ID 7", rec.Cells)
	}
	if len(rec.Conns) != 1 || rec.Conns[0].Weight != 1.5 {
		t.Errorf("surviving connections = %+v, want single weight-1.5 connection", rec.Conns)
	}
}

func TestParseUnparseable(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json at all`},
		{"json array", `[1, 2, 3]`},
		{"missing features", `{"metadata": {}}`},
		{"features not a list", `{"features": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, ErrUnparseable) {
				t.Errorf("Parse() error = %v, want ErrUnparseable", err)
			}
		})
	}
}

func TestParseOpenRingIsClosed(t *testing.T) {
	data := []byte(`{"features": [
		{"geometry": {"type": "Polygon", "coordinates": [[0,0],[2,0],[2,2],[0,2]]},
		 "properties": {"type": "cell"}}]}`)

	rec, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(rec.Cells) != 1 {
		t.Fatalf("got %d cells, want 1", len(rec.Cells))
	}
	ring := rec.Cells[0].Polygon
	if !ring.Closed() {
		t.Errorf("parsed ring should be closed, got %v", ring)
	}
	if len(ring) != 5 {
		t.Errorf("ring length = %d, want 5 (closing point appended)", len(ring))
	}
}

func TestParseMissingWeightDefaultsToOne(t *testing.T) {
	data := []byte(`{"features": [
		{"geometry": {"type": "LineString", "coordinates": [[0,0],[3,0]]},
		 "properties": {"type": "connection"}}]}`)

	rec, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(rec.Conns) != 1 || rec.Conns[0].Weight != 1 {
		t.Errorf("connections = %+v, want single weight-1 connection", rec.Conns)
	}
}

func TestFieldOrDefault(t *testing.T) {
	rec := &Record{}
	f := rec.FieldOrDefault()
	if f.Rows != DefaultFieldSize || f.Cols != DefaultFieldSize {
		t.Errorf("FieldOrDefault() = %+v, want %dx%d", f, DefaultFieldSize, DefaultFieldSize)
	}

	rec.Field = Field{Rows: 10, Cols: 15}
	f = rec.FieldOrDefault()
	if f.Rows != 10 || f.Cols != 15 {
		t.Errorf("FieldOrDefault() = %+v, want 10x15", f)
	}
}
