package api

import (
	"net/http"
)

// handleConvert runs a batch synchronously and returns the result.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	family, ok := familyParam(w, r)
	if !ok {
		return
	}
	inputs, uerr := s.readUploads(w, r)
	if uerr != nil {
		jsonError(w, uerr.msg, uerr.code)
		return
	}

	res := s.orchestrator.NewBatch().Run(r.Context(), inputs, family)
	if res.NoData() {
		s.log.Warn("no valid data extracted", "family", string(family), "files", res.Files, "errors", len(res.Errors))
	}
	s.writeResult(w, r, res)
}
