// Package export writes extracted records to spreadsheets, CSV, SQLite and
// plain-text error logs.
package export

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/extract"
)

const (
	minColWidth = 10
	maxColWidth = 60
)

// XLSX returns a workbook (as bytes) with a header row from columns and one
// row per record. Missing keys are written as empty cells.
func XLSX(records []extract.Record, columns []string, sheet string) ([]byte, error) {
	if sheet == "" {
		sheet = "Sheet1"
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	widths := make([]int, len(columns))
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
		widths[i] = utf8.RuneCountInString(c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx header: %w", err)
	}

	for r, rec := range records {
		row := make([]any, len(columns))
		for i, v := range rec.Row(columns) {
			row[i] = v
			widths[i] = max(widths[i], utf8.RuneCountInString(v))
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx row %d: %w", r+2, err)
		}
	}

	if len(columns) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err == nil {
			_ = f.SetRowStyle(sheet, 1, 1, bold)
		}
		_ = f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	}

	// Widen columns to fit their longest value.
	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		_ = f.SetColWidth(sheet, name, name, float64(min(max(w+2, minColWidth), maxColWidth)))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
