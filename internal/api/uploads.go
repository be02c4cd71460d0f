package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/extract"
	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/pipeline"
)

// uploadError carries the HTTP status for a rejected upload.
type uploadError struct {
	msg  string
	code int
}

func (e *uploadError) Error() string { return e.msg }

func familyParam(w http.ResponseWriter, r *http.Request) (extract.Family, bool) {
	family, err := extract.ParseFamily(chi.URLParam(r, "family"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return family, true
}

// readUploads reads every multipart "files" part into memory. Files with an
// unsupported extension are kept; the batch reports them per file.
func (s *Server) readUploads(w http.ResponseWriter, r *http.Request) ([]pipeline.Input, *uploadError) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, &uploadError{fmt.Sprintf("request body exceeds %d bytes", tooBig.Limit), http.StatusRequestEntityTooLarge}
		}
		return nil, &uploadError{"invalid multipart form: " + err.Error(), http.StatusBadRequest}
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		return nil, &uploadError{"at least one file is required", http.StatusBadRequest}
	}

	inputs := make([]pipeline.Input, 0, len(files))
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		f, err := fh.Open()
		if err != nil {
			return nil, &uploadError{"failed to open " + filename, http.StatusBadRequest}
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil {
			return nil, &uploadError{"failed to read " + filename, http.StatusInternalServerError}
		}
		if int64(len(data)) > s.cfg.MaxUploadBytes {
			return nil, &uploadError{
				fmt.Sprintf("%s exceeds max size (%d bytes)", filename, s.cfg.MaxUploadBytes),
				http.StatusRequestEntityTooLarge,
			}
		}
		inputs = append(inputs, pipeline.Input{Filename: filename, Data: data})
	}
	return inputs, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
