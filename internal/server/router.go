// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hyundp/knowledge-explorer-sub000/internal/corpus"
	"github.com/hyundp/knowledge-explorer-sub000/internal/manager"
	"github.com/hyundp/knowledge-explorer-sub000/internal/portfolio"
)

// Router builds the chi mux with CORS and request logging (R1.1, R1.2).
func (s *Server) Router() http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)
	mux.Use(s.logRequests)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Route("/api", func(rt chi.Router) {
		rt.Get("/papers", s.wrap(s.handleListPapers))
		rt.Get("/papers/{pmcid}", s.wrap(s.handleGetPaper))
		rt.Get("/search", s.wrap(s.handleSearch))

		rt.Get("/gap", s.wrap(s.handleGap))
		rt.Get("/consensus", s.wrap(s.handleConsensus))
		rt.Get("/insights", s.wrap(s.handleInsights))

		rt.Route("/manager", func(m chi.Router) {
			m.Get("/coverage", s.wrap(s.handleCoverage))
			m.Get("/roi", s.wrap(s.handleROIRankings))
			m.Get("/roi/{gapID}", s.wrap(s.handleGapDossier))
			m.Get("/redundancy", s.wrap(s.handleRedundancy))
			m.Post("/portfolio/solve", s.wrap(s.handleSolve))
		})

		rt.Route("/portfolios", func(p chi.Router) {
			p.Get("/", s.wrap(s.handleListPortfolios))
			p.Post("/", s.wrap(s.handleCreatePortfolio))
			p.Get("/{id}", s.wrap(s.handleGetPortfolio))
			p.Put("/{id}", s.wrap(s.handleUpdatePortfolio))
			p.Delete("/{id}", s.wrap(s.handleDeletePortfolio))
			p.Post("/{id}/papers", s.wrap(s.handleAddPortfolioPaper))
			p.Put("/{id}/papers/{pmcid}", s.wrap(s.handleUpdatePortfolioPaper))
			p.Delete("/{id}/papers/{pmcid}", s.wrap(s.handleRemovePortfolioPaper))
		})
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequestError marks client input errors for a 400 response.
type badRequestError struct{ err error }

func (e badRequestError) Error() string { return e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

func badRequest(err error) error { return badRequestError{err: err} }

// wrap converts a failing handler into the JSON error envelope. Not
// found maps to 404, bad input to 400, everything else to 500 (R1.3).
func (s *Server) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		status := http.StatusInternalServerError
		var br badRequestError
		switch {
		case errors.Is(err, corpus.ErrNotFound),
			errors.Is(err, manager.ErrNotFound),
			errors.Is(err, portfolio.ErrNotFound):
			status = http.StatusNotFound
		case errors.As(err, &br):
			status = http.StatusBadRequest
		}

		if status == http.StatusInternalServerError {
			s.log.Error("request failed",
				zap.String("path", req.URL.Path), zap.Error(err))
		}

		body := struct {
			Error   string `json:"error"`
			Details string `json:"details,omitempty"`
		}{Error: err.Error()}
		if cause := errors.Unwrap(err); cause != nil && cause.Error() != body.Error {
			body.Details = cause.Error()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

// writeJSON sends v as the 200 response body.
func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)))
	})
}
