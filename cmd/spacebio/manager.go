// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyundp/knowledge-explorer-sub000/internal/insights"
	"github.com/hyundp/knowledge-explorer-sub000/internal/manager"
)

var managerCmd = &cobra.Command{
	Use:   "manager",
	Short: "Program-manager scoring (coverage, roi, redundancy, solve)",
	Long: `Manager scores the corpus for funding decisions: the coverage x
priority heatmap, gap ROI rankings, redundancy clusters, and the greedy
budget solver.`,
}

// --- coverage subcommand ---

var managerCoverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Position every combination on the coverage x priority heatmap",
	RunE:  runManagerCoverage,
}

func runManagerCoverage(cmd *cobra.Command, args []string) error {
	papers, err := loadPapers(cmd)
	if err != nil {
		return err
	}

	m, err := manager.CoveragePriorityMap(papers, filtersFromFlags(cmd), insights.Options{})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(m)
	}

	fmt.Fprintf(os.Stdout, "%-24s  %-16s  %-16s  %-9s  %-9s  %s\n",
		"Organism", "Tissue", "Exposure", "Coverage", "Priority", "Quadrant")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 96))
	for _, c := range m.Cells {
		fmt.Fprintf(os.Stdout, "%-24s  %-16s  %-16s  %-9.1f  %-9.1f  %s\n",
			c.Organism, c.Tissue, c.Exposure, c.Coverage, c.Priority, c.Quadrant)
	}
	fmt.Fprintf(os.Stdout, "\n%d cell(s)\n", m.TotalCells)
	return nil
}

// --- roi subcommand ---

var managerROICmd = &cobra.Command{
	Use:   "roi [gap-id]",
	Short: "Rank understudied gaps by ROI, or show one gap's dossier",
	Long: `ROI scores every understudied combination (1-2 prior studies) for
impact, feasibility, and cost, and ranks them by the gap ROI formula.
With a gap id argument it prints that gap's full dossier instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runManagerROI,
}

func runManagerROI(cmd *cobra.Command, args []string) error {
	papers, err := loadPapers(cmd)
	if err != nil {
		return err
	}

	rankings, err := manager.GapROIRankings(papers, filtersFromFlags(cmd), insights.Options{})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")

	if len(args) == 1 {
		item, err := manager.GapDossier(rankings, args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(item)
		}
		fmt.Fprintf(os.Stdout, "Gap:         %s\n", item.ID)
		fmt.Fprintf(os.Stdout, "Impact:      %.1f\n", item.Impact)
		fmt.Fprintf(os.Stdout, "Feasibility: %.1f\n", item.Feasibility)
		fmt.Fprintf(os.Stdout, "Est. cost:   $%.0f\n", item.Cost)
		fmt.Fprintf(os.Stdout, "ROI:         %.2f\n", item.ROI)
		fmt.Fprintf(os.Stdout, "Urgency:     %s\n", item.Urgency)
		fmt.Fprintf(os.Stdout, "Rationale:   %s\n", item.Rationale)
		fmt.Fprintf(os.Stdout, "Papers:      %s\n", strings.Join(item.PMCIDs, ", "))
		return nil
	}

	if jsonOutput {
		return printJSON(rankings)
	}

	fmt.Fprintf(os.Stdout, "%-48s  %-7s  %-7s  %-12s  %-6s  %s\n",
		"Gap", "Impact", "Feas.", "Cost", "ROI", "Urgency")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 96))
	for _, g := range rankings.Gaps {
		id := g.ID
		if len(id) > 48 {
			id = id[:45] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-48s  %-7.1f  %-7.1f  $%-11.0f  %-6.2f  %s\n",
			id, g.Impact, g.Feasibility, g.Cost, g.ROI, g.Urgency)
	}
	fmt.Fprintf(os.Stdout, "\n%d gap(s)\n", rankings.TotalGaps)
	return nil
}

// --- redundancy subcommand ---

var managerRedundancyCmd = &cobra.Command{
	Use:   "redundancy",
	Short: "Cluster near-duplicate studies within shared combinations",
	RunE:  runManagerRedundancy,
}

func runManagerRedundancy(cmd *cobra.Command, args []string) error {
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("threshold must be in (0, 1]")
	}

	papers, err := loadPapers(cmd)
	if err != nil {
		return err
	}

	resp, err := manager.DetectRedundancy(papers, threshold)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(resp)
	}

	for i, c := range resp.Clusters {
		fmt.Fprintf(os.Stdout, "Cluster %d: %s / %s / %s (similarity %.2f, %s)\n",
			i+1, c.Organism, c.Tissue, c.Exposure, c.MeanSimilarity, c.Suggestion)
		fmt.Fprintf(os.Stdout, "  %s\n", strings.Join(c.PMCIDs, ", "))
	}
	fmt.Fprintf(os.Stdout, "\n%d cluster(s), redundancy index %.2f\n",
		resp.TotalClusters, resp.RedundancyIndex)
	return nil
}

// --- solve subcommand ---

var managerSolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Greedily allocate a budget across the ranked gaps",
	RunE:  runManagerSolve,
}

func runManagerSolve(cmd *cobra.Command, args []string) error {
	budget, _ := cmd.Flags().GetFloat64("budget")
	if budget <= 0 {
		return fmt.Errorf("--budget must be positive")
	}

	papers, err := loadPapers(cmd)
	if err != nil {
		return err
	}

	rankings, err := manager.GapROIRankings(papers, filtersFromFlags(cmd), insights.Options{})
	if err != nil {
		return err
	}
	solution := manager.SolvePortfolio(rankings.Gaps, budget)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(solution)
	}

	for _, g := range solution.Selected {
		fmt.Fprintf(os.Stdout, "  %-48s  $%-11.0f  ROI %.2f\n", g.ID, g.Cost, g.ROI)
	}
	fmt.Fprintf(os.Stdout, "\nselected %d of %d gap(s)\n", len(solution.Selected), rankings.TotalGaps)
	fmt.Fprintf(os.Stdout, "total cost      $%.0f of $%.0f\n", solution.TotalCost, budget)
	fmt.Fprintf(os.Stdout, "total ROI       %.2f\n", solution.TotalROI)
	fmt.Fprintf(os.Stdout, "coverage lift   %.1f%%\n", solution.CoverageLift)
	fmt.Fprintf(os.Stdout, "risk reduction  %.1f\n", solution.RiskReduction)
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{managerCoverageCmd, managerROICmd, managerSolveCmd} {
		addFilterFlags(cmd)
		cmd.Flags().Bool("json", false, "output as JSON")
	}

	managerRedundancyCmd.Flags().Float64("threshold", 0, "pairwise similarity threshold (0 = default 0.7)")
	managerRedundancyCmd.Flags().Bool("json", false, "output as JSON")

	managerSolveCmd.Flags().Float64("budget", 0, "total budget in USD")

	managerCmd.AddCommand(managerCoverageCmd)
	managerCmd.AddCommand(managerROICmd)
	managerCmd.AddCommand(managerRedundancyCmd)
	managerCmd.AddCommand(managerSolveCmd)

	rootCmd.AddCommand(managerCmd)
}
