package chart

import (
	"fmt"
	"log"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/huzzy12/data-analysis-tool/dataset"
)

// ============================================================================
// CHART BUILDER — Table + Request → Spec
// ============================================================================
// Validation happens against the table's current column set before any
// computation. Derived aggregates (group means, histogram buckets, Pearson
// correlation, five-number summaries) are computed here; the Spec hands a
// finished description to whichever renderer the caller wires in.
// ============================================================================

// Build validates a chart request against a table and computes the chart
// description. Every failure is recoverable; the table is never mutated.
func Build(t *dataset.Table, req Request) (*Spec, error) {
	if _, ok := ParseKind(string(req.Kind)); !ok {
		return nil, fmt.Errorf("%w: unknown chart kind %q", ErrInvalidRequest, req.Kind)
	}

	if req.Kind != CorrelationMatrix {
		if req.X == "" || t.ColumnIndex(req.X) < 0 {
			return nil, fmt.Errorf("%w: x column %q not in table", ErrInvalidRequest, req.X)
		}
	}
	if needsY(req.Kind) {
		if req.Y == "" {
			return nil, fmt.Errorf("%w: %s chart requires a y column", ErrInvalidRequest, req.Kind)
		}
		if !isNumericColumn(t, req.Y) {
			return nil, fmt.Errorf("%w: y column %q is not numeric", ErrInvalidRequest, req.Y)
		}
	}

	if req.Title == "" {
		req.Title = defaultTitle(req)
	}

	var (
		spec *Spec
		err  error
	)
	switch req.Kind {
	case Bar:
		spec, err = buildBar(t, req)
	case Line:
		spec, err = buildLine(t, req)
	case Scatter:
		spec, err = buildScatter(t, req)
	case Histogram:
		spec, err = buildHistogram(t, req)
	case Box:
		spec, err = buildBox(t, req)
	case CorrelationMatrix:
		spec, err = buildCorrelation(t, req)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("chart: built %s with %d series", spec.Kind, len(spec.Series))
	return spec, nil
}

func isNumericColumn(t *dataset.Table, name string) bool {
	col := t.Column(name)
	return col != nil && col.Kind == dataset.Number
}

// ============================================================================
// BAR — group by x, mean of y per group
// ============================================================================

// buildBar groups rows by the raw x value in first-seen order and plots
// the mean of y per group.
func buildBar(t *dataset.Table, req Request) (*Spec, error) {
	xCol := t.Column(req.X)
	yVals, yPresent := t.ColumnFloats(req.Y)

	grouped := make(map[string][]float64)
	var order []string
	for i := 0; i < t.RowCount(); i++ {
		if xCol.Cells[i].Missing || !yPresent[i] {
			continue
		}
		key := xCol.Cells[i].Value
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], yVals[i])
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("%w: no rows with both %q and %q present", ErrChart, req.X, req.Y)
	}

	points := make([]Point, 0, len(order))
	for _, key := range order {
		points = append(points, Point{
			Label: key,
			Y:     stat.Mean(grouped[key], nil),
		})
	}

	return &Spec{
		Kind:   Bar,
		Title:  req.Title,
		XLabel: req.X,
		YLabel: fmt.Sprintf("mean %s", req.Y),
		Labels: order,
		Series: []Series{{Name: req.Y, Points: points}},
		Colors: assignColors(1),
	}, nil
}

// ============================================================================
// LINE / SCATTER — per-row, no aggregation
// ============================================================================

// buildLine plots y against x in the table's current row order.
// The x value is carried as a point label; rows without a usable y are skipped.
func buildLine(t *dataset.Table, req Request) (*Spec, error) {
	xCol := t.Column(req.X)
	yVals, yPresent := t.ColumnFloats(req.Y)

	var points []Point
	for i := 0; i < t.RowCount(); i++ {
		if !yPresent[i] {
			continue
		}
		points = append(points, Point{
			Label: xCol.Cells[i].Value,
			X:     float64(len(points)),
			Y:     yVals[i],
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: column %q has no numeric values", ErrChart, req.Y)
	}

	return &Spec{
		Kind:   Line,
		Title:  req.Title,
		XLabel: req.X,
		YLabel: req.Y,
		Series: []Series{{Name: req.Y, Points: points}},
		Colors: assignColors(1),
	}, nil
}

// buildScatter plots one point per row; both axes must carry numbers.
func buildScatter(t *dataset.Table, req Request) (*Spec, error) {
	xVals, xPresent := t.ColumnFloats(req.X)
	yVals, yPresent := t.ColumnFloats(req.Y)

	xCol := t.Column(req.X)
	var points []Point
	for i := 0; i < t.RowCount(); i++ {
		if !yPresent[i] || xCol.Cells[i].Missing {
			continue
		}
		if !xPresent[i] {
			return nil, fmt.Errorf("%w: x column %q has non-numeric value %q", ErrChart, req.X, xCol.Cells[i].Value)
		}
		points = append(points, Point{X: xVals[i], Y: yVals[i]})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no rows with both %q and %q present", ErrChart, req.X, req.Y)
	}

	return &Spec{
		Kind:   Scatter,
		Title:  req.Title,
		XLabel: req.X,
		YLabel: req.Y,
		Series: []Series{{Name: req.Y, Points: points}},
		Colors: assignColors(1),
	}, nil
}

// ============================================================================
// HISTOGRAM — equal-width buckets over a numeric column
// ============================================================================

const defaultBins = 10

// buildHistogram buckets the numeric x values into equal-width bins.
// Buckets are right-open except the last, which includes the maximum.
func buildHistogram(t *dataset.Table, req Request) (*Spec, error) {
	values, err := numericValues(t, req.X)
	if err != nil {
		return nil, err
	}

	bins := req.Bins
	if bins <= 0 {
		bins = defaultBins
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		bins = 1
	}

	counts := make([]float64, bins)
	width := (max - min) / float64(bins)
	for _, v := range values {
		idx := bins - 1
		if width > 0 {
			idx = int((v - min) / width)
			if idx >= bins {
				idx = bins - 1 // max lands in the last bucket
			}
		}
		counts[idx]++
	}

	labels := make([]string, bins)
	points := make([]Point, bins)
	for i := 0; i < bins; i++ {
		lo := min + float64(i)*width
		hi := lo + width
		labels[i] = fmt.Sprintf("%.4g–%.4g", lo, hi)
		points[i] = Point{Label: labels[i], X: (lo + hi) / 2, Y: counts[i]}
	}

	return &Spec{
		Kind:   Histogram,
		Title:  req.Title,
		XLabel: req.X,
		YLabel: "count",
		Labels: labels,
		Series: []Series{{Name: req.X, Points: points}},
		Colors: assignColors(1),
	}, nil
}

// ============================================================================
// BOX — five-number summary of a numeric column
// ============================================================================

func buildBox(t *dataset.Table, req Request) (*Spec, error) {
	values, err := numericValues(t, req.X)
	if err != nil {
		return nil, err
	}
	sort.Float64s(values)

	summary := &FiveNumber{
		Min:    values[0],
		Q1:     stat.Quantile(0.25, stat.LinInterp, values, nil),
		Median: stat.Quantile(0.5, stat.LinInterp, values, nil),
		Q3:     stat.Quantile(0.75, stat.LinInterp, values, nil),
		Max:    values[len(values)-1],
	}

	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{Y: v}
	}

	return &Spec{
		Kind:    Box,
		Title:   req.Title,
		XLabel:  req.X,
		Summary: summary,
		Series:  []Series{{Name: req.X, Points: points}},
		Colors:  assignColors(1),
	}, nil
}

// numericValues collects the usable numbers of a column for single-axis
// charts, rejecting non-numeric columns the way the computation would.
func numericValues(t *dataset.Table, name string) ([]float64, error) {
	if !isNumericColumn(t, name) {
		return nil, fmt.Errorf("%w: column %q is not numeric", ErrChart, name)
	}
	vals, present := t.ColumnFloats(name)
	var kept []float64
	for i, ok := range present {
		if ok {
			kept = append(kept, vals[i])
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: column %q has no numeric values", ErrChart, name)
	}
	return kept, nil
}

// ============================================================================
// CORRELATION MATRIX — pairwise Pearson over numeric columns
// ============================================================================

// buildCorrelation computes pairwise Pearson correlation across all numeric
// columns using pairwise-complete rows. The matrix is symmetric with an
// exact 1.0 diagonal.
func buildCorrelation(t *dataset.Table, req Request) (*Spec, error) {
	numeric := t.NumericColumns()
	if len(numeric) < 2 {
		return nil, fmt.Errorf("%w: table has %d", ErrInsufficientNumeric, len(numeric))
	}

	cols := make([][]float64, len(numeric))
	masks := make([][]bool, len(numeric))
	for i, name := range numeric {
		cols[i], masks[i] = t.ColumnFloats(name)
	}

	n := len(numeric)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1.0
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := pairwisePearson(cols[i], masks[i], cols[j], masks[j])
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}

	return &Spec{
		Kind:   CorrelationMatrix,
		Title:  req.Title,
		Labels: numeric,
		Matrix: matrix,
	}, nil
}

// pairwisePearson correlates two columns over rows where both are present.
// Returns NaN when fewer than two complete pairs exist or a column has
// zero variance.
func pairwisePearson(xs []float64, xok []bool, ys []float64, yok []bool) float64 {
	var px, py []float64
	for i := range xs {
		if xok[i] && yok[i] {
			px = append(px, xs[i])
			py = append(py, ys[i])
		}
	}
	if len(px) < 2 {
		return math.NaN()
	}
	return stat.Correlation(px, py, nil)
}
