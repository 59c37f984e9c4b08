// Package api exposes stored analysis runs over a small read-only HTTP API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pyvet/pyvet/internal/analyzer"
	"github.com/pyvet/pyvet/internal/store"
)

// Server serves stored runs and the rule inventory.
type Server struct {
	Store    store.Store
	Registry *analyzer.Registry
	Logger   *slog.Logger
	Version  string
}

// ruleInfo is the wire shape of one rule inventory entry.
type ruleInfo struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	Doc      string `json:"doc"`
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/rules", s.handleRules)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Get("/runs/{id}/findings", s.handleRunFindings)
		r.Get("/runs/{id}/verdict", s.handleRunVerdict)
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger().Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.Version,
	})
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	rules := s.Registry.Rules()
	out := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		out = append(out, ruleInfo{
			ID:       rule.ID(),
			Category: string(rule.Category()),
			Severity: string(rule.Severity()),
			Doc:      rule.Doc(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.logger().Error("listing runs", "err", err)
		writeError(w, http.StatusInternalServerError, "listing runs")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	meta, err := s.Store.ReadMeta(r.Context(), id)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		s.logger().Error("reading run", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "reading run")
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

func (s *Server) handleRunFindings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	findings, err := s.Store.ReadFindings(r.Context(), id)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		s.logger().Error("reading findings", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "reading findings")
		return
	}
	if findings == nil {
		findings = []analyzer.Finding{}
	}
	writeJSON(w, http.StatusOK, findings)
}

func (s *Server) handleRunVerdict(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	verdict, err := s.Store.ReadVerdict(r.Context(), id)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "no verdict for run")
			return
		}
		s.logger().Error("reading verdict", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "reading verdict")
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}
