// Package chart turns a table plus axis selections into a rendering-agnostic
// chart description. Pixel-level drawing lives elsewhere (see render).
package chart

import (
	"errors"
	"fmt"
)

// Errors returned by the chart builder.
var (
	// ErrInvalidRequest is returned when the request references columns
	// that do not exist or omits a required axis.
	ErrInvalidRequest = errors.New("invalid chart request")

	// ErrInsufficientNumeric is returned when a correlation matrix is
	// requested with fewer than two numeric columns.
	ErrInsufficientNumeric = errors.New("need at least 2 numeric columns")

	// ErrChart is returned when chart computation fails on the data.
	ErrChart = errors.New("chart computation failed")
)

// Kind identifies a chart type.
type Kind string

const (
	Bar               Kind = "bar"
	Line              Kind = "line"
	Scatter           Kind = "scatter"
	Histogram         Kind = "histogram"
	Box               Kind = "box"
	CorrelationMatrix Kind = "correlation"
)

// ParseKind maps a user-supplied chart name to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case Bar, Line, Scatter, Histogram, Box, CorrelationMatrix:
		return Kind(s), true
	}
	return "", false
}

// needsY reports whether a chart kind requires a Y axis selection.
func needsY(k Kind) bool {
	switch k {
	case Bar, Line, Scatter:
		return true
	}
	return false
}

// Request selects a chart kind and its axes.
type Request struct {
	Kind  Kind
	X     string
	Y     string // required for Bar, Line, Scatter
	Bins  int    // Histogram bin count; 0 = default
	Title string
}

// Spec is a render-ready chart description.
type Spec struct {
	Kind   Kind     `json:"kind"`
	Title  string   `json:"title"`
	XLabel string   `json:"xLabel,omitempty"`
	YLabel string   `json:"yLabel,omitempty"`
	Series []Series `json:"series,omitempty"`

	// Labels name bar groups, histogram buckets, or matrix columns.
	Labels []string `json:"labels,omitempty"`

	// Matrix is populated for CorrelationMatrix only.
	Matrix [][]float64 `json:"matrix,omitempty"`

	// Summary is populated for Box only.
	Summary *FiveNumber `json:"summary,omitempty"`

	Colors []string `json:"colors,omitempty"`
}

// Series is one named data series.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"data"`
	Color  string  `json:"color,omitempty"`
}

// Point is a single data point. Label carries the raw x value for charts
// with categorical x axes; X/Y carry numeric coordinates where defined.
type Point struct {
	Label string  `json:"label,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// FiveNumber is a box-plot summary.
type FiveNumber struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Default series palette.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}

// defaultTitle builds "Y by X" style titles matching each chart kind.
func defaultTitle(req Request) string {
	switch req.Kind {
	case Bar:
		return fmt.Sprintf("%s by %s", req.Y, req.X)
	case Line:
		return fmt.Sprintf("%s over %s", req.Y, req.X)
	case Scatter:
		return fmt.Sprintf("%s vs %s", req.Y, req.X)
	case Histogram:
		return fmt.Sprintf("Distribution of %s", req.X)
	case Box:
		return fmt.Sprintf("Box Plot of %s", req.X)
	case CorrelationMatrix:
		return "Correlation Matrix"
	}
	return ""
}
