package dataset

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ============================================================================
// SCHEMA INSPECTOR — Per-Column Metadata
// ============================================================================
// Read-only views recomputed from the table snapshot on every call.
// ============================================================================

// ColumnDescriptor is derived per-column metadata for display.
type ColumnDescriptor struct {
	Name       string  `json:"name"`
	Kind       Kind    `json:"kind"`
	Missing    int     `json:"missing"`
	MissingPct float64 `json:"missingPct"`
}

// Describe computes a descriptor for every column.
// Missing percentage is rounded half-away-from-zero to 2 decimal places.
func Describe(t *Table) []ColumnDescriptor {
	rows := t.RowCount()
	out := make([]ColumnDescriptor, len(t.Columns))
	for i, c := range t.Columns {
		missing := c.MissingCount()
		pct := 0.0
		if rows > 0 {
			pct = roundTo2(float64(missing) / float64(rows) * 100)
		}
		out[i] = ColumnDescriptor{
			Name:       c.Name,
			Kind:       c.Kind,
			Missing:    missing,
			MissingPct: pct,
		}
	}
	return out
}

// ColumnSummary holds descriptive statistics for one numeric column.
type ColumnSummary struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Summarize computes descriptive statistics for every numeric column.
// Missing cells are excluded; columns with no usable values are skipped.
func Summarize(t *Table) []ColumnSummary {
	var out []ColumnSummary
	for _, name := range t.NumericColumns() {
		values, present := t.ColumnFloats(name)
		var kept []float64
		for i, ok := range present {
			if ok {
				kept = append(kept, values[i])
			}
		}
		if len(kept) == 0 {
			continue
		}
		sort.Float64s(kept)

		s := ColumnSummary{
			Name:   name,
			Count:  len(kept),
			Mean:   roundTo2(stat.Mean(kept, nil)),
			Min:    kept[0],
			Q1:     stat.Quantile(0.25, stat.LinInterp, kept, nil),
			Median: stat.Quantile(0.5, stat.LinInterp, kept, nil),
			Q3:     stat.Quantile(0.75, stat.LinInterp, kept, nil),
			Max:    kept[len(kept)-1],
		}
		if len(kept) > 1 {
			s.StdDev = roundTo2(stat.StdDev(kept, nil))
		}
		out = append(out, s)
	}
	return out
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
