// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the corpus and analytics stages over HTTP.
// Implements: prd008-api (R1-R6);
//
//	docs/ARCHITECTURE § API Server.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hyundp/knowledge-explorer-sub000/internal/corpus"
	"github.com/hyundp/knowledge-explorer-sub000/internal/portfolio"
	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

// Server wires the stores and analytics configuration behind the router.
type Server struct {
	store      *corpus.Store
	portfolios *portfolio.Store
	analytics  types.AnalyticsConfig
	cfg        types.ServerConfig
	log        *zap.Logger
}

// New assembles a Server. A nil logger falls back to zap.NewNop.
func New(store *corpus.Store, portfolios *portfolio.Store, analytics types.AnalyticsConfig, cfg types.ServerConfig, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		store:      store,
		portfolios: portfolios,
		analytics:  analytics,
		cfg:        cfg,
		log:        log,
	}
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then
// shuts down gracefully (R6.1).
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.log.Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
