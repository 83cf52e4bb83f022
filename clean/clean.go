// Package clean implements the user-triggered table cleaning steps.
//
// Every step either fully succeeds, returning a new table plus a summary
// count, or fully fails and leaves the input table untouched. Steps always
// work on a clone of the input, so partial application is impossible.
package clean

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/huzzy12/data-analysis-tool/dataset"
)

// Errors returned by cleaning steps.
var (
	// ErrConversion is returned when a column value cannot be coerced to
	// the requested kind. The table is left unchanged.
	ErrConversion = errors.New("type conversion failed")

	// ErrNoNumericColumns is returned by mean-fill when the table has no
	// numeric column to operate on.
	ErrNoNumericColumns = errors.New("no numeric columns")

	// ErrInvalidStep is returned for malformed step parameters.
	ErrInvalidStep = errors.New("invalid cleaning step")
)

// Op identifies a cleaning operation.
type Op string

const (
	RemoveDuplicates        Op = "remove_duplicates"
	DropMissing             Op = "drop_missing"
	FillMissingWithMean     Op = "fill_mean"
	FillMissingWithConstant Op = "fill_constant"
	ConvertColumnType       Op = "convert_type"
	SelectColumns           Op = "select_columns"
)

// Step is one tagged cleaning operation with its parameters.
// Steps are stateless beyond their parameters.
type Step struct {
	Op      Op
	Value   string       // FillMissingWithConstant: fill value
	Column  string       // ConvertColumnType: target column
	Target  dataset.Kind // ConvertColumnType: target kind
	Columns []string     // SelectColumns: names to keep, in order
}

// Summary reports what a successful step did.
type Summary struct {
	Affected int
	Message  string
}

// Apply runs a single cleaning step against a table.
// On success the returned table replaces the caller's working table; on
// error the input table is still valid and unchanged.
func Apply(t *dataset.Table, step Step) (*dataset.Table, Summary, error) {
	var (
		out     *dataset.Table
		summary Summary
		err     error
	)

	switch step.Op {
	case RemoveDuplicates:
		out, summary = removeDuplicates(t)
	case DropMissing:
		out, summary = dropMissing(t)
	case FillMissingWithMean:
		out, summary, err = fillMean(t)
	case FillMissingWithConstant:
		out, summary, err = fillConstant(t, step.Value)
	case ConvertColumnType:
		out, summary, err = convertColumn(t, step.Column, step.Target)
	case SelectColumns:
		out, summary, err = selectColumns(t, step.Columns)
	default:
		return t, Summary{}, fmt.Errorf("%w: unknown op %q", ErrInvalidStep, step.Op)
	}

	if err != nil {
		return t, Summary{}, err
	}
	log.Printf("clean: %s: %s", step.Op, summary.Message)
	return out, summary, nil
}

// ============================================================================
// ROW-DROPPING STEPS
// ============================================================================

// removeDuplicates drops rows that exactly equal an earlier row.
func removeDuplicates(t *dataset.Table) (*dataset.Table, Summary) {
	seen := make(map[string]bool)
	var keep []int
	for i := 0; i < t.RowCount(); i++ {
		key := rowKey(t, i)
		if seen[key] {
			continue
		}
		seen[key] = true
		keep = append(keep, i)
	}

	removed := t.RowCount() - len(keep)
	out := takeRows(t, keep)
	return out, Summary{
		Affected: removed,
		Message:  fmt.Sprintf("removed %d duplicate rows", removed),
	}
}

// dropMissing drops every row containing a missing cell in any column.
func dropMissing(t *dataset.Table) (*dataset.Table, Summary) {
	var keep []int
	for i := 0; i < t.RowCount(); i++ {
		complete := true
		for c := range t.Columns {
			if t.Columns[c].Cells[i].Missing {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}

	removed := t.RowCount() - len(keep)
	out := takeRows(t, keep)
	return out, Summary{
		Affected: removed,
		Message:  fmt.Sprintf("dropped %d rows with missing values", removed),
	}
}

// rowKey builds an exact-equality key over all cells of a row.
// The missing marker is part of the key so "" and missing stay distinct.
func rowKey(t *dataset.Table, i int) string {
	var b strings.Builder
	for c := range t.Columns {
		cell := t.Columns[c].Cells[i]
		if cell.Missing {
			b.WriteString("\x00m")
		} else {
			b.WriteString(cell.Value)
		}
		b.WriteByte('\x1f')
	}
	return b.String()
}

// takeRows builds a new table containing only the given row indices.
func takeRows(t *dataset.Table, indices []int) *dataset.Table {
	out := &dataset.Table{Columns: make([]dataset.Column, len(t.Columns))}
	for c, col := range t.Columns {
		cells := make([]dataset.Cell, 0, len(indices))
		for _, i := range indices {
			cells = append(cells, col.Cells[i])
		}
		out.Columns[c] = dataset.Column{Name: col.Name, Kind: col.Kind, Cells: cells}
	}
	return out
}

// ============================================================================
// FILL STEPS
// ============================================================================

// fillMean replaces missing cells in each numeric column with that column's
// mean over its non-missing values at the time of the call. Once a column is
// fully filled, a repeat call finds no missing values and changes nothing.
func fillMean(t *dataset.Table) (*dataset.Table, Summary, error) {
	numeric := t.NumericColumns()
	if len(numeric) == 0 {
		return nil, Summary{}, ErrNoNumericColumns
	}

	out := t.Clone()
	filled := 0
	for _, name := range numeric {
		values, present := t.ColumnFloats(name)
		var kept []float64
		for i, ok := range present {
			if ok {
				kept = append(kept, values[i])
			}
		}
		if len(kept) == 0 {
			continue // nothing to average
		}
		mean := stat.Mean(kept, nil)
		formatted := dataset.FormatNumber(mean)

		col := out.Column(name)
		for i := range col.Cells {
			if col.Cells[i].Missing {
				col.Cells[i] = dataset.Cell{Value: formatted}
				filled++
			}
		}
	}

	return out, Summary{
		Affected: filled,
		Message:  fmt.Sprintf("filled %d missing values with column means", filled),
	}, nil
}

// fillConstant replaces every missing cell in every column with v verbatim.
// No coercion is applied — the value lands as given even in numeric columns.
func fillConstant(t *dataset.Table, v string) (*dataset.Table, Summary, error) {
	if v == "" {
		return nil, Summary{}, fmt.Errorf("%w: fill value must not be empty", ErrInvalidStep)
	}

	out := t.Clone()
	filled := 0
	for c := range out.Columns {
		for i := range out.Columns[c].Cells {
			if out.Columns[c].Cells[i].Missing {
				out.Columns[c].Cells[i] = dataset.Cell{Value: v}
				filled++
			}
		}
	}

	return out, Summary{
		Affected: filled,
		Message:  fmt.Sprintf("filled %d missing values with %q", filled, v),
	}, nil
}

// ============================================================================
// STRUCTURAL STEPS
// ============================================================================

// convertColumn coerces every value of a column to the target kind.
// Validation runs over the whole column before anything is written, so a
// single bad value fails the step atomically.
func convertColumn(t *dataset.Table, name string, target dataset.Kind) (*dataset.Table, Summary, error) {
	col := t.Column(name)
	if col == nil {
		return nil, Summary{}, fmt.Errorf("%w: %q", dataset.ErrColumnNotFound, name)
	}
	switch target {
	case dataset.Text, dataset.Number, dataset.Date, dataset.Category:
	default:
		return nil, Summary{}, fmt.Errorf("%w: unknown target kind %q", ErrInvalidStep, target)
	}

	// Validate and canonicalize first.
	converted := make([]dataset.Cell, len(col.Cells))
	for i, cell := range col.Cells {
		if cell.Missing {
			converted[i] = cell
			continue
		}
		v, err := coerce(cell.Value, target)
		if err != nil {
			return nil, Summary{}, fmt.Errorf("%w: column %q row %d: %v", ErrConversion, name, i+1, err)
		}
		converted[i] = dataset.Cell{Value: v}
	}

	out := t.Clone()
	outCol := out.Column(name)
	outCol.Kind = target
	outCol.Cells = converted

	return out, Summary{
		Affected: len(converted),
		Message:  fmt.Sprintf("converted %q to %s", name, target),
	}, nil
}

// coerce converts a single value to the target kind's canonical form.
func coerce(v string, target dataset.Kind) (string, error) {
	switch target {
	case dataset.Number:
		f, ok := dataset.ParseNumber(v)
		if !ok {
			return "", fmt.Errorf("%q is not numeric", v)
		}
		return dataset.FormatNumber(f), nil
	case dataset.Date:
		t, ok := dataset.ParseDate(v)
		if !ok {
			return "", fmt.Errorf("%q is not a recognized date", v)
		}
		return t.Format("2006-01-02"), nil
	default: // text, category — any value is acceptable as-is
		return v, nil
	}
}

// selectColumns narrows the table to the named columns, in the order given.
func selectColumns(t *dataset.Table, names []string) (*dataset.Table, Summary, error) {
	if len(names) == 0 {
		return nil, Summary{}, fmt.Errorf("%w: no columns selected", ErrInvalidStep)
	}

	out := &dataset.Table{Columns: make([]dataset.Column, 0, len(names))}
	for _, name := range names {
		col := t.Column(name)
		if col == nil {
			return nil, Summary{}, fmt.Errorf("%w: %q", dataset.ErrColumnNotFound, name)
		}
		cells := make([]dataset.Cell, len(col.Cells))
		copy(cells, col.Cells)
		out.Columns = append(out.Columns, dataset.Column{Name: col.Name, Kind: col.Kind, Cells: cells})
	}

	return out, Summary{
		Affected: len(names),
		Message:  fmt.Sprintf("kept %d of %d columns", len(names), len(t.Columns)),
	}, nil
}
