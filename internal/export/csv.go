package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/extract"
)

// CSV writes a header row and one row per record.
func CSV(w io.Writer, records []extract.Record, columns []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(rec.Row(columns)); err != nil {
			return fmt.Errorf("csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
