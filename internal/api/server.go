package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/config"
	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/extract"
	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/pipeline"
)

// Server exposes batch conversion and async jobs over HTTP.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/convert/{family}", s.handleConvert)

		r.Post("/jobs/{family}", s.handleSubmitJob)
		r.Get("/jobs/{jobID}/status", s.handleJobStatus)
		r.Get("/jobs/{jobID}/export", s.handleJobExport)
		r.Get("/jobs/{jobID}/errors", s.handleJobErrors)

		r.Get("/stats/parse", s.handleParseStats)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"families": extract.Families,
	})
}
