// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the spacebio CLI.
// Implements the CLI surface of prd001-corpus, prd003-gap-matrix,
// prd004-consensus, prd005-insights, prd006-scoring, prd007-portfolio,
// and prd008-api.
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the spacebio CLI.
var rootCmd = &cobra.Command{
	Use:   "spacebio",
	Short: "Derived-metrics engine over a space-biology paper corpus",
	Long: `spacebio mines a corpus of space-biology publications into derived
research metrics: dimension-level gap matrices, consensus synthesis over
effect sizes, cross-corpus insights, and program-manager ROI scoring.

Each analytics stage is a subcommand: corpus, gap, consensus, insights,
and manager. Portfolios persist manager funding decisions, and serve
exposes everything over HTTP for dashboards.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./spacebio.yaml or ~/.config/spacebio/config.yaml)")
	rootCmd.PersistentFlags().String("corpus-dir", "", "base directory for the corpus (contains metadata/, index/)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("spacebio")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "spacebio"))
		}
	}

	viper.SetEnvPrefix("SPACEBIO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
