package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/export"
	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/pipeline"
)

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	family, ok := familyParam(w, r)
	if !ok {
		return
	}
	inputs, uerr := s.readUploads(w, r)
	if uerr != nil {
		jsonError(w, uerr.msg, uerr.code)
		return
	}

	job := pipeline.NewJob(family, inputs)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/api/jobs/%s/status", job.ID),
	})
}

func (s *Server) jobParam(w http.ResponseWriter, r *http.Request) *pipeline.Job {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
	}
	return job
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.jobParam(w, r)
	if job == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) finishedResult(w http.ResponseWriter, r *http.Request) (pipeline.Result, bool) {
	job := s.jobParam(w, r)
	if job == nil {
		return pipeline.Result{}, false
	}
	res, done := job.Result()
	if !done {
		jsonError(w, "job not finished", http.StatusConflict)
		return pipeline.Result{}, false
	}
	return res, true
}

func (s *Server) handleJobExport(w http.ResponseWriter, r *http.Request) {
	res, ok := s.finishedResult(w, r)
	if !ok {
		return
	}
	s.writeResult(w, r, res)
}

func (s *Server) handleJobErrors(w http.ResponseWriter, r *http.Request) {
	res, ok := s.finishedResult(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.ErrorLogName))
	w.Write([]byte(export.ErrorLog(res.ErrorLines())))
}
