// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hyundp/knowledge-explorer-sub000/internal/portfolio"
	"github.com/hyundp/knowledge-explorer-sub000/internal/server"
	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the corpus and analytics over HTTP",
	Long: `Serve exposes every analytics stage as a JSON API for dashboards:
paper lookup and search, the gap matrix, consensus synthesis, insights,
manager scoring, and portfolio CRUD. Shuts down gracefully on SIGINT
or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if !cmd.Flags().Changed("addr") {
		if v := viper.GetString("server.addr"); v != "" {
			addr = v
		}
	}

	originsFlag, _ := cmd.Flags().GetString("allowed-origins")
	var origins []string
	for _, o := range strings.Split(originsFlag, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	dbPath, _ := cmd.Flags().GetString("portfolio-db")
	if dbPath == "" {
		dbPath = viper.GetString("server.portfolio_db_path")
	}
	if dbPath == "" {
		dbPath = "portfolios.db"
	}

	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := openCorpus(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	portfolios, err := portfolio.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer portfolios.Close()

	analytics := types.AnalyticsConfig{
		Seed:                viper.GetInt64("analytics.seed"),
		RecentWindow:        viper.GetDuration("analytics.recent_window"),
		RedundancyThreshold: viper.GetFloat64("analytics.redundancy_threshold"),
	}

	srv := server.New(store, portfolios, analytics, types.ServerConfig{
		Addr:            addr,
		AllowedOrigins:  origins,
		PortfolioDBPath: dbPath,
	}, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx)
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("allowed-origins", "*", "CORS origins (comma-separated)")
	serveCmd.Flags().String("portfolio-db", "", "path to the portfolio database")

	rootCmd.AddCommand(serveCmd)
}
