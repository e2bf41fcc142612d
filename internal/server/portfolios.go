// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

// portfolioRequest is the create/update request body (R5.1).
type portfolioRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Entries     []types.PortfolioEntry `json:"entries"`
}

func decodeJSON(req *http.Request, v any) error {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return badRequest(fmt.Errorf("decoding request body: %w", err))
	}
	return nil
}

func (s *Server) handleListPortfolios(w http.ResponseWriter, req *http.Request) error {
	all, err := s.portfolios.List(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]any{
		"portfolios": all,
		"total":      len(all),
	})
}

func (s *Server) handleCreatePortfolio(w http.ResponseWriter, req *http.Request) error {
	var body portfolioRequest
	if err := decodeJSON(req, &body); err != nil {
		return err
	}
	if body.Name == "" {
		return badRequest(fmt.Errorf("name is required"))
	}

	p, err := s.portfolios.Create(req.Context(), body.Name, body.Description, body.Entries)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(p)
}

func (s *Server) handleGetPortfolio(w http.ResponseWriter, req *http.Request) error {
	p, err := s.portfolios.Get(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		return err
	}
	return writeJSON(w, p)
}

func (s *Server) handleUpdatePortfolio(w http.ResponseWriter, req *http.Request) error {
	var body portfolioRequest
	if err := decodeJSON(req, &body); err != nil {
		return err
	}
	if body.Name == "" {
		return badRequest(fmt.Errorf("name is required"))
	}

	p, err := s.portfolios.Update(req.Context(), chi.URLParam(req, "id"),
		body.Name, body.Description, body.Entries)
	if err != nil {
		return err
	}
	return writeJSON(w, p)
}

func (s *Server) handleDeletePortfolio(w http.ResponseWriter, req *http.Request) error {
	if err := s.portfolios.Delete(req.Context(), chi.URLParam(req, "id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) handleAddPortfolioPaper(w http.ResponseWriter, req *http.Request) error {
	var entry types.PortfolioEntry
	if err := decodeJSON(req, &entry); err != nil {
		return err
	}
	if entry.PMCID == "" {
		return badRequest(fmt.Errorf("pmcid is required"))
	}

	p, err := s.portfolios.AddPaper(req.Context(), chi.URLParam(req, "id"), entry)
	if err != nil {
		return err
	}
	return writeJSON(w, p)
}

func (s *Server) handleUpdatePortfolioPaper(w http.ResponseWriter, req *http.Request) error {
	var entry types.PortfolioEntry
	if err := decodeJSON(req, &entry); err != nil {
		return err
	}
	entry.PMCID = chi.URLParam(req, "pmcid")

	p, err := s.portfolios.UpdatePaper(req.Context(), chi.URLParam(req, "id"), entry)
	if err != nil {
		return err
	}
	return writeJSON(w, p)
}

func (s *Server) handleRemovePortfolioPaper(w http.ResponseWriter, req *http.Request) error {
	p, err := s.portfolios.RemovePaper(req.Context(),
		chi.URLParam(req, "id"), chi.URLParam(req, "pmcid"))
	if err != nil {
		return err
	}
	return writeJSON(w, p)
}
