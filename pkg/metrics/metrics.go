// Package metrics derives comparative quality metrics from parsed
// placements.
//
// A [Metric] is computed fresh on every call; nothing is cached across
// mutations of the underlying records. Counts and total weight are the
// producer-declared values passed through; average connection length and
// thermal clustering are always recomputed from the entities.
//
// Lower is better for both comparative metrics: average weighted net length
// measures routing cost, thermal clustering measures how tightly heat
// sources bunch together.
package metrics

import (
	"errors"

	"gonum.org/v1/gonum/stat"

	"github.com/mpgalab/placeview/pkg/geometry"
	"github.com/mpgalab/placeview/pkg/placement"
)

// ErrNeedTwoPlacements is returned by Compare when fewer than two
// placements are supplied. This is a user-facing precondition, not a crash.
var ErrNeedTwoPlacements = errors.New("comparison requires at least 2 placements")

// Metric is the per-placement summary row of a comparison table.
type Metric struct {
	Name        string  `json:"name"`
	CellCount   int     `json:"cell_count"`
	ConnCount   int     `json:"connection_count"`
	TotalWeight float64 `json:"total_weight"`

	AvgLength         float64 `json:"avg_length"`
	HighThermalCount  int     `json:"high_thermal_count"`
	ThermalClustering float64 `json:"thermal_clustering"`

	// BestLength and BestClustering are set by Compare on the placement(s)
	// with the minimum value of the respective metric; ties all qualify.
	BestLength     bool `json:"best_length,omitempty"`
	BestClustering bool `json:"best_clustering,omitempty"`
}

// Compute derives the metric row for a single placement.
func Compute(rec *placement.Record) Metric {
	m := Metric{
		Name:        rec.Name,
		CellCount:   rec.Declared.CellCount,
		ConnCount:   rec.Declared.ConnCount,
		TotalWeight: rec.Declared.TotalWeight,
	}

	m.AvgLength = avgLength(rec.Conns)

	centroids := HighThermalCentroids(rec)
	m.HighThermalCount = len(centroids)
	m.ThermalClustering = clustering(centroids)

	return m
}

// Compare computes metrics for each placement and flags the minimum average
// length and minimum thermal clustering as best. All placements tied on a
// minimum are flagged.
func Compare(recs []*placement.Record) ([]Metric, error) {
	if len(recs) < 2 {
		return nil, ErrNeedTwoPlacements
	}

	rows := make([]Metric, len(recs))
	for i, rec := range recs {
		rows[i] = Compute(rec)
	}

	minLength := rows[0].AvgLength
	minClustering := rows[0].ThermalClustering
	for _, r := range rows[1:] {
		if r.AvgLength < minLength {
			minLength = r.AvgLength
		}
		if r.ThermalClustering < minClustering {
			minClustering = r.ThermalClustering
		}
	}
	for i := range rows {
		rows[i].BestLength = rows[i].AvgLength == minLength
		rows[i].BestClustering = rows[i].ThermalClustering == minClustering
	}

	return rows, nil
}

// HighThermalCentroids returns the centroids of all cells above the fixed
// thermal threshold, in declaration order.
func HighThermalCentroids(rec *placement.Record) []geometry.Point {
	var pts []geometry.Point
	for i := range rec.Cells {
		if rec.Cells[i].HighThermal() {
			pts = append(pts, rec.Cells[i].Centroid())
		}
	}
	return pts
}

// avgLength is the weight-scaled mean Manhattan length over all
// connections: sum(length*weight) / count. Zero when there are no
// connections.
func avgLength(conns []placement.Connection) float64 {
	if len(conns) == 0 {
		return 0
	}
	var total float64
	for _, c := range conns {
		total += c.Length() * c.Weight
	}
	return total / float64(len(conns))
}

// clustering is the mean pairwise Manhattan distance between high-thermal
// centroids. Zero when fewer than two cells qualify. The pairwise step is
// O(n^2) in the number of high-thermal cells only.
func clustering(centroids []geometry.Point) float64 {
	if len(centroids) < 2 {
		return 0
	}
	dists := make([]float64, 0, len(centroids)*(len(centroids)-1)/2)
	for i := 0; i < len(centroids); i++ {
		for j := i + 1; j < len(centroids); j++ {
			dists = append(dists, geometry.ManhattanDistance(centroids[i], centroids[j]))
		}
	}
	return stat.Mean(dists, nil)
}
