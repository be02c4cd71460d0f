package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleParseStats(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator == nil || s.orchestrator.Stats() == nil {
		jsonError(w, "parse stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       s.orchestrator.Stats().Snapshot(),
	})
}
