package placement

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrUnparseable is returned when an input record cannot be interpreted at
// all (not a JSON object, or no features array). Individual malformed
// features never trigger it; they are skipped.
var ErrUnparseable = errors.New("unparseable placement record")

// Feature type tag distinguishing connection features from cell features.
// Any other type tag (or none) marks a cell.
const typeConnection = "connection"

// ParseFile reads and parses a placement record from a JSON file.
func ParseFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ParseReader(f)
}

// ParseReader parses a placement record from an io.Reader.
func ParseReader(r io.Reader) (*Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	return Parse(data)
}

// Parse parses a placement record from JSON bytes.
//
// The input is a feature collection: each feature carries a geometry
// (Polygon for cells, LineString for connections) and a properties object.
// Malformed features are skipped; the result is the best-effort set of
// valid entities. Only structurally unusable input returns an error, which
// wraps [ErrUnparseable].
func Parse(data []byte) (*Record, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	features, ok := raw["features"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing features array", ErrUnparseable)
	}

	rec := &Record{}
	for _, f := range features {
		feature, ok := f.(map[string]any)
		if !ok {
			continue
		}
		props, _ := feature["properties"].(map[string]any)
		geom, ok := feature["geometry"].(map[string]any)
		if !ok {
			continue
		}

		if stringProp(props, "type") == typeConnection {
			if conn, ok := parseConnection(geom, props); ok {
				rec.Conns = append(rec.Conns, conn)
			}
			continue
		}
		if cell, ok := parseCell(geom, props); ok {
			rec.Cells = append(rec.Cells, cell)
		}
	}

	if meta, ok := raw["metadata"].(map[string]any); ok {
		rec.Declared = Metadata{
			CellCount:   int(floatProp(meta, "cell_count", 0)),
			ConnCount:   int(floatProp(meta, "connection_count", 0)),
			TotalWeight: floatProp(meta, "total_connection_weight", 0),
		}
		if field, ok := meta["field"].(map[string]any); ok {
			rec.Field = Field{
				Rows:         int(floatProp(field, "rows", 0)),
				Cols:         int(floatProp(field, "cols", 0)),
				AllowFillers: boolProp(field, "allow_fillers"),
			}
		}
	}

	return rec, nil
}

// parseCell converts a Polygon feature into a Cell. Returns false for any
// malformed geometry so the caller can skip the feature.
func parseCell(geom, props map[string]any) (Cell, bool) {
	if s, _ := geom["type"].(string); s != "Polygon" {
		return Cell{}, false
	}
	coords, ok := geom["coordinates"].([]any)
	if !ok {
		return Cell{}, false
	}

	ring, ok := normalizeRing(coords)
	if !ok {
		return Cell{}, false
	}

	return Cell{
		ID:           int(floatProp(props, "id", 0)),
		Name:         stringProp(props, "name"),
		Polygon:      ring,
		ThermalValue: floatProp(props, "thermal_value", 0),
		PowerDensity: floatProp(props, "power_density", 0),
	}, true
}

// parseConnection converts a LineString feature into a Connection. Features
// with fewer than two coordinate pairs are skipped. A missing weight
// defaults to 1 so declared and computed totals stay comparable.
func parseConnection(geom, props map[string]any) (Connection, bool) {
	if s, _ := geom["type"].(string); s != "LineString" {
		return Connection{}, false
	}
	coords, ok := geom["coordinates"].([]any)
	if !ok || len(coords) < 2 {
		return Connection{}, false
	}

	a, okA := parsePoint(coords[0])
	b, okB := parsePoint(coords[1])
	if !okA || !okB {
		return Connection{}, false
	}

	w := floatProp(props, "weight", 1)
	if w < 0 {
		w = 0
	}
	return Connection{A: a, B: b, Weight: w}, true
}
