package scheme

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mpgalab/placeview/pkg/geometry"
	"github.com/mpgalab/placeview/pkg/placement"
)

// Feature-collection wire types. Coordinates nest one ring per polygon,
// which is what the parser's structural probe unwraps.
type featureCollection struct {
	Type     string         `json:"type"`
	Features []feature      `json:"features"`
	Metadata map[string]any `json:"metadata"`
}

type feature struct {
	Type       string         `json:"type"`
	Geometry   featureGeom    `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type featureGeom struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// EncodeJSON writes a placement record as an indented feature
// collection that round-trips through the parser.
func EncodeJSON(w io.Writer, rec *placement.Record) error {
	if rec == nil {
		return fmt.Errorf("encode scheme: nil record")
	}

	fc := featureCollection{
		Type:     "FeatureCollection",
		Features: make([]feature, 0, len(rec.Cells)+len(rec.Conns)),
		Metadata: map[string]any{
			"cell_count":              rec.Declared.CellCount,
			"connection_count":        rec.Declared.ConnCount,
			"total_connection_weight": rec.Declared.TotalWeight,
			"field": map[string]any{
				"rows":          rec.Field.Rows,
				"cols":          rec.Field.Cols,
				"allow_fillers": rec.Field.AllowFillers,
			},
		},
	}

	for _, cell := range rec.Cells {
		fc.Features = append(fc.Features, feature{
			Type: "Feature",
			Geometry: featureGeom{
				Type:        "Polygon",
				Coordinates: []any{ringCoords(cell.Polygon)},
			},
			Properties: map[string]any{
				"id":            cell.ID,
				"name":          cell.Name,
				"thermal_value": cell.ThermalValue,
				"power_density": cell.PowerDensity,
			},
		})
	}

	for _, conn := range rec.Conns {
		fc.Features = append(fc.Features, feature{
			Type: "Feature",
			Geometry: featureGeom{
				Type: "LineString",
				Coordinates: [][]float64{
					{conn.A.X, conn.A.Y},
					{conn.B.X, conn.B.Y},
				},
			},
			Properties: map[string]any{
				"type":   "connection",
				"weight": conn.Weight,
			},
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("encode scheme: %w", err)
	}
	return nil
}

func ringCoords(r geometry.Ring) [][]float64 {
	out := make([][]float64, len(r))
	for i, p := range r {
		out[i] = []float64{p.X, p.Y}
	}
	return out
}
