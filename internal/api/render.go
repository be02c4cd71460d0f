package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/export"
	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/pipeline"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// writeResult renders a batch result as JSON or as a downloadable sheet.
// Downloads of a batch with no records are refused with the error log.
func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, res pipeline.Result) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}
	columns := res.Family.Columns()
	errorLines := res.ErrorLines()
	w.Header().Set("X-Error-Count", strconv.Itoa(len(errorLines)))

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"family":  res.Family,
			"files":   res.Files,
			"records": res.Records,
			"errors":  errorLines,
			"columns": columns,
		})
		return
	case "xlsx", "csv":
	default:
		jsonError(w, fmt.Sprintf("unsupported format %q (want json, xlsx or csv)", format), http.StatusBadRequest)
		return
	}

	if len(res.Records) == 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"error":  "no valid data extracted",
			"errors": errorLines,
		})
		return
	}

	name := export.WorkbookName(res.Family)
	var body []byte
	if format == "xlsx" {
		data, err := export.XLSX(res.Records, columns, res.Family.Title())
		if err != nil {
			s.log.Error("xlsx export failed", "error", err)
			jsonError(w, "export failed", http.StatusInternalServerError)
			return
		}
		body = data
		w.Header().Set("Content-Type", xlsxContentType)
	} else {
		var buf bytes.Buffer
		if err := export.CSV(&buf, res.Records, columns); err != nil {
			s.log.Error("csv export failed", "error", err)
			jsonError(w, "export failed", http.StatusInternalServerError)
			return
		}
		body = buf.Bytes()
		name = strings.TrimSuffix(name, ".xlsx") + ".csv"
		w.Header().Set("Content-Type", "text/csv")
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(body)
}
