package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser handles CSV exports of the same documents. Each row becomes one
// line with its non-empty cells separated by single spaces.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}

	var text strings.Builder
	for _, row := range records {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			if c := strings.TrimSpace(cell); c != "" {
				cells = append(cells, c)
			}
		}
		text.WriteString(strings.Join(cells, " "))
		text.WriteString("\n")
	}
	return text.String(), nil
}
