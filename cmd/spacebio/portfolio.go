// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hyundp/knowledge-explorer-sub000/internal/portfolio"
	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Manage persisted funding portfolios",
	Long: `Portfolio manages named sets of funded papers with per-paper impact,
risk, and budget scores. Totals and per-paper ROI are derived on every
read using the shared ROI formula.`,
}

func openPortfolios(cmd *cobra.Command) (*portfolio.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("server.portfolio_db_path")
	}
	if dbPath == "" {
		dbPath = "portfolios.db"
	}
	return portfolio.NewStore(dbPath)
}

// --- list subcommand ---

var portfolioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List portfolios, most recently updated first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPortfolios(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		all, err := store.List(context.Background())
		if err != nil {
			return err
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			return printJSON(all)
		}

		fmt.Fprintf(os.Stdout, "%-36s  %-28s  %-7s  %-12s  %s\n",
			"ID", "Name", "Papers", "Budget", "Avg ROI")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 96))
		for _, p := range all {
			fmt.Fprintf(os.Stdout, "%-36s  %-28s  %-7d  $%-11.0f  %.2f\n",
				p.ID, p.Name, len(p.Entries), p.TotalBudget, p.AvgROI)
		}
		fmt.Fprintf(os.Stdout, "\n%d portfolio(s)\n", len(all))
		return nil
	},
}

// --- create subcommand ---

var portfolioCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an empty portfolio",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			return fmt.Errorf("--name is required")
		}
		description, _ := cmd.Flags().GetString("description")

		store, err := openPortfolios(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		p, err := store.Create(context.Background(), name, description, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "created portfolio %s\n", p.ID)
		return nil
	},
}

// --- show subcommand ---

var portfolioShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print one portfolio with derived totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPortfolios(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		p, err := store.Get(context.Background(), args[0])
		if err != nil {
			return err
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			return printJSON(p)
		}

		fmt.Fprintf(os.Stdout, "Portfolio: %s (%s)\n", p.Name, p.ID)
		if p.Description != "" {
			fmt.Fprintf(os.Stdout, "%s\n", p.Description)
		}
		fmt.Fprintf(os.Stdout, "Total budget: $%.0f   Avg ROI: %.2f\n\n", p.TotalBudget, p.AvgROI)

		fmt.Fprintf(os.Stdout, "%-12s  %-7s  %-6s  %-12s  %s\n",
			"PMCID", "Impact", "Risk", "Budget", "ROI")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 52))
		for _, e := range p.Entries {
			fmt.Fprintf(os.Stdout, "%-12s  %-7.1f  %-6.1f  $%-11.0f  %.2f\n",
				e.PMCID, e.Impact, e.Risk, e.Budget, e.ROI)
		}
		return nil
	},
}

// --- delete subcommand ---

var portfolioDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a portfolio and its entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPortfolios(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "deleted portfolio %s\n", args[0])
		return nil
	},
}

// --- add subcommand ---

var portfolioAddCmd = &cobra.Command{
	Use:   "add [id]",
	Short: "Add or rescore a paper in a portfolio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pmcid, _ := cmd.Flags().GetString("pmcid")
		if pmcid == "" {
			return fmt.Errorf("--pmcid is required")
		}
		impact, _ := cmd.Flags().GetFloat64("impact")
		risk, _ := cmd.Flags().GetFloat64("risk")
		budget, _ := cmd.Flags().GetFloat64("budget")

		store, err := openPortfolios(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		p, err := store.AddPaper(context.Background(), args[0], types.PortfolioEntry{
			PMCID:  pmcid,
			Impact: impact,
			Risk:   risk,
			Budget: budget,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "portfolio %s now holds %d paper(s), total budget $%.0f\n",
			p.ID, len(p.Entries), p.TotalBudget)
		return nil
	},
}

// --- remove subcommand ---

var portfolioRemoveCmd = &cobra.Command{
	Use:   "remove [id] [pmcid]",
	Short: "Remove a paper from a portfolio",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPortfolios(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		p, err := store.RemovePaper(context.Background(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "portfolio %s now holds %d paper(s)\n", p.ID, len(p.Entries))
		return nil
	},
}

func init() {
	portfolioCmd.PersistentFlags().String("db", "", "path to the portfolio database (default: portfolios.db)")

	portfolioListCmd.Flags().Bool("json", false, "output as JSON")
	portfolioShowCmd.Flags().Bool("json", false, "output as JSON")

	portfolioCreateCmd.Flags().String("name", "", "portfolio name")
	portfolioCreateCmd.Flags().String("description", "", "portfolio description")

	portfolioAddCmd.Flags().String("pmcid", "", "paper PMCID")
	portfolioAddCmd.Flags().Float64("impact", 0, "impact score [0,10]")
	portfolioAddCmd.Flags().Float64("risk", 0, "risk score [0,10]")
	portfolioAddCmd.Flags().Float64("budget", 0, "allocated budget in USD")

	portfolioCmd.AddCommand(portfolioListCmd)
	portfolioCmd.AddCommand(portfolioCreateCmd)
	portfolioCmd.AddCommand(portfolioShowCmd)
	portfolioCmd.AddCommand(portfolioDeleteCmd)
	portfolioCmd.AddCommand(portfolioAddCmd)
	portfolioCmd.AddCommand(portfolioRemoveCmd)

	rootCmd.AddCommand(portfolioCmd)
}
