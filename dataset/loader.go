package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ============================================================================
// LOADER — Uploaded Bytes → Table
// ============================================================================
// Dispatches on filename extension: .csv → encoding/csv, .xls/.xlsx →
// excelize (first sheet). Decode failures come back as ErrLoad; an unknown
// extension is ErrUnsupportedFormat. Either way the caller keeps its current
// working table.
// ============================================================================

// Load decodes uploaded bytes into a Table and infers column kinds.
func Load(data []byte, filename string) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var rows [][]string
	var err error
	switch ext {
	case ".csv":
		rows, err = decodeCSV(data)
	case ".xls", ".xlsx":
		rows, err = decodeSheet(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: file has no rows", ErrLoad)
	}

	table := fromRows(rows)
	InferKinds(table)

	log.Printf("dataset: loaded %q — %d rows, %d columns", filename, table.RowCount(), len(table.Columns))
	return table, nil
}

func decodeCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func decodeSheet(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheet)
}

// fromRows builds a Table from a header row plus data rows.
// Blank headers become Column_N; short rows are padded with missing cells.
func fromRows(rows [][]string) *Table {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}

	table := &Table{Columns: make([]Column, len(headers))}
	for i, name := range headers {
		table.Columns[i] = Column{
			Name:  name,
			Kind:  Text,
			Cells: make([]Cell, 0, len(rows)-1),
		}
	}

	for _, row := range rows[1:] {
		for c := range headers {
			var cell Cell
			if c >= len(row) || IsNullToken(row[c]) {
				cell = Cell{Missing: true}
			} else {
				cell = Cell{Value: row[c]}
			}
			table.Columns[c].Cells = append(table.Columns[c].Cells, cell)
		}
	}
	return table
}
