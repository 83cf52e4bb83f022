package dataset

import (
	"strings"
	"time"
)

// ============================================================================
// KIND INFERENCE — Heuristic Column Classification
// ============================================================================
// Runs once after decode. Unlike sampling-based profilers, the loader sees
// the whole dataset, so number/date require every non-missing cell to parse:
// the declared Kind is a contract that downstream numeric operations rely on.
// Category falls out of cardinality, the same rule used for coded dimensions
// (few distinct values relative to row count).
// ============================================================================

// nullTokens are the cell values treated as missing on load.
var nullTokens = map[string]bool{
	"":     true,
	"null": true,
	"NULL": true,
	"N/A":  true,
	"n/a":  true,
	"NA":   true,
	"NaN":  true,
	"nan":  true,
}

// IsNullToken reports whether a raw value denotes a missing cell.
func IsNullToken(s string) bool {
	return nullTokens[strings.TrimSpace(s)]
}

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"01/02/2006",
	"02/01/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDate parses a cell value against the accepted date layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// inferKind classifies a column from its cells.
func inferKind(cells []Cell) Kind {
	var values []string
	for _, c := range cells {
		if !c.Missing {
			values = append(values, c.Value)
		}
	}
	if len(values) == 0 {
		return Text
	}

	allNumeric := true
	allDates := true
	unique := make(map[string]bool)
	for _, v := range values {
		if _, ok := ParseNumber(v); !ok {
			allNumeric = false
		}
		if _, ok := ParseDate(v); !ok {
			allDates = false
		}
		unique[v] = true
	}

	if allNumeric {
		return Number
	}
	if allDates {
		return Date
	}

	// Few distinct values and a low unique ratio → coded values.
	ratio := float64(len(unique)) / float64(len(values))
	if len(unique) < 20 && ratio <= 0.5 {
		return Category
	}
	return Text
}

// InferKinds classifies every column in place.
func InferKinds(t *Table) {
	for i := range t.Columns {
		t.Columns[i].Kind = inferKind(t.Columns[i].Cells)
	}
}
