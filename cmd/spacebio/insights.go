// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyundp/knowledge-explorer-sub000/internal/insights"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Aggregate top areas, research gaps, trends, and the timeline",
	Long: `Insights cross-tabulates organism x tissue x exposure combinations
into well-studied top areas and understudied research gaps, derives
methodology growth trends, and reports the publication timeline.`,
	RunE: runInsights,
}

func runInsights(cmd *cobra.Command, args []string) error {
	papers, err := loadPapers(cmd)
	if err != nil {
		return err
	}

	data, err := insights.Get(papers, insights.Options{})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(data)
	}

	fmt.Fprintf(os.Stdout, "Corpus: %d papers\n\n", data.TotalPapers)

	fmt.Fprintln(os.Stdout, "Top research areas:")
	fmt.Fprintf(os.Stdout, "%-24s  %-16s  %-16s  %-8s  %s\n",
		"Organism", "Tissue", "Exposure", "Studies", "Priority")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
	for _, a := range data.TopAreas {
		fmt.Fprintf(os.Stdout, "%-24s  %-16s  %-16s  %-8d  %s\n",
			a.Organism, a.Tissue, a.Exposure, a.StudyCount, a.Priority)
	}

	fmt.Fprintln(os.Stdout, "\nResearch gaps:")
	fmt.Fprintf(os.Stdout, "%-24s  %-16s  %-16s  %-8s  %s\n",
		"Organism", "Tissue", "Exposure", "Studies", "Priority")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
	for _, g := range data.ResearchGaps {
		fmt.Fprintf(os.Stdout, "%-24s  %-16s  %-16s  %-8d  %s\n",
			g.Organism, g.Tissue, g.Exposure, g.StudyCount, g.Priority)
	}

	fmt.Fprintln(os.Stdout, "\nEmerging methodologies:")
	for _, tr := range data.EmergingTrends {
		fmt.Fprintf(os.Stdout, "  %-20s  %s (%+.0f%%, %d recent)\n",
			tr.StudyType, tr.Trend, tr.GrowthPct, tr.RecentCount)
	}

	return nil
}

func init() {
	insightsCmd.Flags().Bool("json", false, "output insights as JSON")

	rootCmd.AddCommand(insightsCmd)
}
