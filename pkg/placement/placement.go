// Package placement defines the typed entities of a placement record and the
// parser that produces them from the loosely-structured feature collection
// emitted by the optimizer.
//
// # Data model
//
// A [Record] holds the logical [Field], the parsed [Cell] and [Connection]
// entities, and the producer-declared summary [Metadata]. Entities are owned
// by the record that parsed them and are not mutated afterwards; every
// derived quantity (metrics, draw models) is recomputed from them on demand.
//
// # Parsing contract
//
// [Parse] never fails on an individual feature: a feature with a missing
// geometry, an empty coordinate list, or a geometry/type mismatch is skipped
// and parsing continues with the rest. Only a record that cannot be
// interpreted at all (not a JSON object, no features array) is rejected,
// with an error wrapping [ErrUnparseable].
package placement

import (
	"github.com/mpgalab/placeview/pkg/geometry"
)

// HighThermalThreshold is the fixed thermal value above which a cell counts
// as a heat source. It is a constant of the interface, not a configurable.
const HighThermalThreshold = 0.7

// Field is the logical grid bounding a placement.
type Field struct {
	Rows         int  `json:"rows"`
	Cols         int  `json:"cols"`
	AllowFillers bool `json:"allow_fillers"`
}

// Cell is a rectilinear component placed on the field.
type Cell struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Polygon      geometry.Ring `json:"polygon"`
	ThermalValue float64       `json:"thermal_value"`
	PowerDensity float64       `json:"power_density"`
}

// HighThermal reports whether the cell exceeds the fixed thermal threshold.
func (c *Cell) HighThermal() bool { return c.ThermalValue > HighThermalThreshold }

// Centroid returns the vertex-average centroid of the cell polygon.
func (c *Cell) Centroid() geometry.Point { return geometry.Centroid(c.Polygon) }

// Connection is a weighted net between two cell anchor points. It is always
// routed orthogonally (horizontal then vertical), never as a direct diagonal.
type Connection struct {
	A      geometry.Point `json:"a"`
	B      geometry.Point `json:"b"`
	Weight float64        `json:"weight"`
}

// Length returns the Manhattan length of the connection.
func (c Connection) Length() float64 { return geometry.ManhattanDistance(c.A, c.B) }

// Metadata is the producer-declared summary block. It is passed through
// untouched: the engine never recomputes these three values, only the
// derived metrics (average length, thermal clustering) are always computed
// fresh from the entities.
type Metadata struct {
	CellCount   int     `json:"cell_count"`
	ConnCount   int     `json:"connection_count"`
	TotalWeight float64 `json:"total_connection_weight"`
}

// Record is one parsed placement: a candidate spatial layout of cells and
// connections on a field.
type Record struct {
	Name     string       `json:"name,omitempty"`
	Field    Field        `json:"field"`
	Cells    []Cell       `json:"cells"`
	Conns    []Connection `json:"connections"`
	Declared Metadata     `json:"declared_metadata"`
}

// DefaultFieldSize is assumed when a record carries no field definition,
// matching the viewer's historical 20x20 fallback.
const DefaultFieldSize = 20

// FieldOrDefault returns the record's field, substituting the default extent
// for missing dimensions.
func (r *Record) FieldOrDefault() Field {
	f := r.Field
	if f.Rows <= 0 {
		f.Rows = DefaultFieldSize
	}
	if f.Cols <= 0 {
		f.Cols = DefaultFieldSize
	}
	return f
}

// ThermalValues returns the thermal value of every cell in declaration order.
func (r *Record) ThermalValues() []float64 {
	vals := make([]float64, len(r.Cells))
	for i := range r.Cells {
		vals[i] = r.Cells[i].ThermalValue
	}
	return vals
}

// Weights returns the weight of every connection in declaration order.
func (r *Record) Weights() []float64 {
	vals := make([]float64, len(r.Conns))
	for i, c := range r.Conns {
		vals[i] = c.Weight
	}
	return vals
}
