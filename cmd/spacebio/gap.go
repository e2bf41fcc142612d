// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyundp/knowledge-explorer-sub000/internal/gap"
	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

var gapCmd = &cobra.Command{
	Use:   "gap",
	Short: "Build the label x publication-age gap matrix for one dimension",
	Long: `Gap cross-tabulates the corpus along one extraction dimension
(organism, tissue, exposure, study_type, mission, duration) against
publication-age buckets. Sparse cells reveal understudied areas.`,
	RunE: runGap,
}

func runGap(cmd *cobra.Command, args []string) error {
	dimName, _ := cmd.Flags().GetString("dimension")
	dim := types.Dimension(dimName)
	if !dim.Valid() {
		return fmt.Errorf("unknown dimension %q: use one of organism, tissue, exposure, study_type, mission, duration", dimName)
	}

	papers, err := loadPapers(cmd)
	if err != nil {
		return err
	}

	analysis, err := gap.Build(papers, dim, time.Now().Year())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(analysis)
	}

	fmt.Fprintf(os.Stdout, "%-28s  %-12s  %-8s  %s\n", "Label", "Age", "Studies", "Evidence")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 62))
	for _, c := range analysis.Cells {
		fmt.Fprintf(os.Stdout, "%-28s  %-12s  %-8d  %.2f\n",
			c.Label, c.Bucket, c.StudyCount, c.AvgEvidenceStrength)
	}
	fmt.Fprintf(os.Stdout, "\n%d populated cell(s), coverage %.1f%%\n",
		analysis.TotalCells, analysis.Coverage*100)
	return nil
}

func init() {
	gapCmd.Flags().String("dimension", "organism", "extraction dimension to cross-tabulate")
	gapCmd.Flags().Bool("json", false, "output the matrix as JSON")

	rootCmd.AddCommand(gapCmd)
}
