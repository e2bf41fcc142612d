// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hyundp/knowledge-explorer-sub000/internal/consensus"
	"github.com/hyundp/knowledge-explorer-sub000/internal/corpus"
	"github.com/hyundp/knowledge-explorer-sub000/internal/gap"
	"github.com/hyundp/knowledge-explorer-sub000/internal/insights"
	"github.com/hyundp/knowledge-explorer-sub000/internal/manager"
	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

func (s *Server) insightsOptions() insights.Options {
	return insights.Options{RecentWindow: s.analytics.RecentWindow}
}

// --- corpus handlers ---

func (s *Server) handleListPapers(w http.ResponseWriter, req *http.Request) error {
	papers, err := s.store.LoadAll(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]any{
		"papers": papers,
		"total":  len(papers),
	})
}

func (s *Server) handleGetPaper(w http.ResponseWriter, req *http.Request) error {
	paper, err := s.store.Get(req.Context(), chi.URLParam(req, "pmcid"))
	if err != nil {
		return err
	}
	return writeJSON(w, paper)
}

func (s *Server) handleSearch(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()

	yearFrom, err := intParam(q, "year_from")
	if err != nil {
		return err
	}
	yearTo, err := intParam(q, "year_to")
	if err != nil {
		return err
	}
	limit, err := intParam(q, "limit")
	if err != nil {
		return err
	}

	results, err := s.store.Search(req.Context(), corpus.SearchOptions{
		Query:      q.Get("q"),
		YearFrom:   yearFrom,
		YearTo:     yearTo,
		MaxResults: limit,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]any{
		"results": results,
		"total":   len(results),
	})
}

// --- analytics handlers ---

func (s *Server) handleGap(w http.ResponseWriter, req *http.Request) error {
	dim := types.Dimension(req.URL.Query().Get("dimension"))
	if dim == "" {
		dim = types.DimOrganism
	}
	if !dim.Valid() {
		return badRequest(fmt.Errorf("unknown dimension %q", dim))
	}

	papers, err := s.store.LoadAll(req.Context())
	if err != nil {
		return err
	}

	analysis, err := gap.Build(papers, dim, time.Now().Year())
	if err != nil {
		return err
	}
	return writeJSON(w, analysis)
}

func (s *Server) handleConsensus(w http.ResponseWriter, req *http.Request) error {
	filters, err := parseFilters(req.URL.Query())
	if err != nil {
		return err
	}

	papers, err := s.store.LoadAll(req.Context())
	if err != nil {
		return err
	}

	result, err := consensus.New(s.analytics.Seed).Consensus(papers, filters)
	if err != nil {
		return err
	}
	return writeJSON(w, result)
}

func (s *Server) handleInsights(w http.ResponseWriter, req *http.Request) error {
	papers, err := s.store.LoadAll(req.Context())
	if err != nil {
		return err
	}

	data, err := insights.Get(papers, s.insightsOptions())
	if err != nil {
		return err
	}
	return writeJSON(w, data)
}

// --- manager handlers ---

func (s *Server) handleCoverage(w http.ResponseWriter, req *http.Request) error {
	filters, err := parseFilters(req.URL.Query())
	if err != nil {
		return err
	}

	papers, err := s.store.LoadAll(req.Context())
	if err != nil {
		return err
	}

	m, err := manager.CoveragePriorityMap(papers, filters, s.insightsOptions())
	if err != nil {
		return err
	}
	return writeJSON(w, m)
}

func (s *Server) rankings(req *http.Request, filters consensus.Filters) (types.GapROIResponse, error) {
	papers, err := s.store.LoadAll(req.Context())
	if err != nil {
		return types.GapROIResponse{}, err
	}
	return manager.GapROIRankings(papers, filters, s.insightsOptions())
}

func (s *Server) handleROIRankings(w http.ResponseWriter, req *http.Request) error {
	filters, err := parseFilters(req.URL.Query())
	if err != nil {
		return err
	}

	resp, err := s.rankings(req, filters)
	if err != nil {
		return err
	}
	return writeJSON(w, resp)
}

func (s *Server) handleGapDossier(w http.ResponseWriter, req *http.Request) error {
	resp, err := s.rankings(req, consensus.Filters{})
	if err != nil {
		return err
	}

	item, err := manager.GapDossier(resp, chi.URLParam(req, "gapID"))
	if err != nil {
		return err
	}
	return writeJSON(w, item)
}

func (s *Server) handleRedundancy(w http.ResponseWriter, req *http.Request) error {
	threshold := s.analytics.RedundancyThreshold
	if raw := req.URL.Query().Get("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 || v > 1 {
			return badRequest(fmt.Errorf("threshold must be in (0, 1]"))
		}
		threshold = v
	}

	papers, err := s.store.LoadAll(req.Context())
	if err != nil {
		return err
	}

	resp, err := manager.DetectRedundancy(papers, threshold)
	if err != nil {
		return err
	}
	return writeJSON(w, resp)
}

func (s *Server) handleSolve(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Budget  float64           `json:"budget"`
		Filters consensus.Filters `json:"filters"`
	}
	if err := decodeJSON(req, &body); err != nil {
		return err
	}
	if body.Budget <= 0 {
		return badRequest(fmt.Errorf("budget must be positive"))
	}

	resp, err := s.rankings(req, body.Filters)
	if err != nil {
		return err
	}
	return writeJSON(w, manager.SolvePortfolio(resp.Gaps, body.Budget))
}

// --- helpers ---

// parseFilters reads the shared dimension/year/sample-size filter
// parameters. List parameters are comma separated.
func parseFilters(q url.Values) (consensus.Filters, error) {
	yearFrom, err := intParam(q, "year_from")
	if err != nil {
		return consensus.Filters{}, err
	}
	yearTo, err := intParam(q, "year_to")
	if err != nil {
		return consensus.Filters{}, err
	}
	minSample, err := intParam(q, "min_sample_size")
	if err != nil {
		return consensus.Filters{}, err
	}

	return consensus.Filters{
		Organisms:     csvParam(q, "organisms"),
		Tissues:       csvParam(q, "tissues"),
		Exposures:     csvParam(q, "exposures"),
		StudyTypes:    csvParam(q, "study_types"),
		Missions:      csvParam(q, "missions"),
		Durations:     csvParam(q, "durations"),
		YearFrom:      yearFrom,
		YearTo:        yearTo,
		MinSampleSize: minSample,
	}, nil
}

func csvParam(q url.Values, key string) []string {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func intParam(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, badRequest(fmt.Errorf("%s must be a non-negative integer", key))
	}
	return v, nil
}
