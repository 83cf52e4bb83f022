// Package export serializes the working table to downloadable bytes.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"github.com/huzzy12/data-analysis-tool/dataset"
)

// ErrExport is returned when serialization fails.
var ErrExport = errors.New("export failed")

// Format selects the output encoding.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// SheetName is the single sheet written to spreadsheet exports.
const SheetName = "Processed_Data"

// MIME types for the download interface.
const (
	MIMECSV  = "text/csv; charset=utf-8"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case CSV, XLSX:
		return Format(s), true
	}
	if s == "excel" {
		return XLSX, true
	}
	return "", false
}

// MIME returns the download content type for a format.
func (f Format) MIME() string {
	if f == XLSX {
		return MIMEXLSX
	}
	return MIMECSV
}

// Filename assembles "<base>.<ext>" for the download interface.
func Filename(base string, f Format) string {
	return fmt.Sprintf("%s.%s", base, f)
}

// Export serializes the table. A header row is always written; there is no
// index column; missing cells become empty fields.
func Export(t *dataset.Table, format Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case CSV:
		data, err = exportCSV(t)
	case XLSX:
		data, err = exportXLSX(t)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrExport, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}

	log.Printf("export: wrote %d rows as %s (%d bytes)", t.RowCount(), format, len(data))
	return data, nil
}

// exportCSV writes standard CSV: fields containing the delimiter, quotes,
// or line breaks are quoted by encoding/csv.
func exportCSV(t *dataset.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.ColumnNames()); err != nil {
		return nil, err
	}
	for i := 0; i < t.RowCount(); i++ {
		if err := w.Write(t.Row(i)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportXLSX(t *dataset.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(t.Columns))
	for i, name := range t.ColumnNames() {
		header[i] = name
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i := 0; i < t.RowCount(); i++ {
		row := make([]interface{}, len(t.Columns))
		for c, v := range t.Row(i) {
			row[c] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
