package dataset

import (
	"strconv"
	"strings"
)

// ============================================================================
// TABLE — In-Memory Tabular Dataset
// ============================================================================
// A Table is an ordered sequence of named columns. Every column holds the
// same number of cells. Cells keep the original string form of each value;
// the column Kind declares how downstream consumers should read them.
// Missing values are stored canonically as {Value: "", Missing: true}.
// ============================================================================

// Kind is the semantic type of a column.
type Kind string

const (
	Text     Kind = "text"
	Number   Kind = "number"
	Date     Kind = "date"
	Category Kind = "category"
)

// ParseKind maps a user-supplied type name to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "string":
		return Text, true
	case "number", "numeric":
		return Number, true
	case "date":
		return Date, true
	case "category":
		return Category, true
	}
	return "", false
}

// Cell is a single value in a column.
type Cell struct {
	Value   string
	Missing bool
}

// Column is a named, homogeneous sequence of cells.
type Column struct {
	Name  string
	Kind  Kind
	Cells []Cell
}

// Table is the working dataset. Columns are ordered; all have equal length.
type Table struct {
	Columns []Column
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// ColumnNames returns column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of a named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column returns the named column, or nil.
func (t *Table) Column(name string) *Column {
	i := t.ColumnIndex(name)
	if i < 0 {
		return nil
	}
	return &t.Columns[i]
}

// Row returns the string values of row i in column order.
// Missing cells appear as empty strings.
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.Columns))
	for c := range t.Columns {
		row[c] = t.Columns[c].Cells[i].Value
	}
	return row
}

// NumericColumns returns the names of all columns with Kind Number.
func (t *Table) NumericColumns() []string {
	var names []string
	for _, c := range t.Columns {
		if c.Kind == Number {
			names = append(names, c.Name)
		}
	}
	return names
}

// ColumnFloats returns the parseable numeric values of a column along with
// a per-row presence mask. Missing and unparseable cells are reported as
// absent — callers decide whether that matters.
func (t *Table) ColumnFloats(name string) (values []float64, present []bool) {
	col := t.Column(name)
	if col == nil {
		return nil, nil
	}
	values = make([]float64, len(col.Cells))
	present = make([]bool, len(col.Cells))
	for i, cell := range col.Cells {
		if cell.Missing {
			continue
		}
		if f, ok := ParseNumber(cell.Value); ok {
			values[i] = f
			present[i] = true
		}
	}
	return values, present
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{Columns: make([]Column, len(t.Columns))}
	for i, c := range t.Columns {
		cells := make([]Cell, len(c.Cells))
		copy(cells, c.Cells)
		out.Columns[i] = Column{Name: c.Name, Kind: c.Kind, Cells: cells}
	}
	return out
}

// Equal reports whether two tables have identical columns, kinds, and cells.
func (t *Table) Equal(other *Table) bool {
	if other == nil || len(t.Columns) != len(other.Columns) {
		return false
	}
	for i, c := range t.Columns {
		oc := other.Columns[i]
		if c.Name != oc.Name || c.Kind != oc.Kind || len(c.Cells) != len(oc.Cells) {
			return false
		}
		for j, cell := range c.Cells {
			if cell != oc.Cells[j] {
				return false
			}
		}
	}
	return true
}

// MissingCount returns the number of missing cells in a column.
func (c *Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.Missing {
			n++
		}
	}
	return n
}

// ============================================================================
// VALUE PARSING
// ============================================================================

// ParseNumber parses a cell value as a float, tolerating thousands
// separators and common currency prefixes ("1,234.56", "$40").
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	for _, prefix := range []string{"$", "€", "£"} {
		s = strings.TrimPrefix(s, prefix)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatNumber renders a float in its shortest exact form ("2", "2.5").
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
