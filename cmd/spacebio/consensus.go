// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hyundp/knowledge-explorer-sub000/internal/consensus"
)

var consensusCmd = &cobra.Command{
	Use:   "consensus",
	Short: "Synthesize effect sizes and agreement for a filtered slice",
	Long: `Consensus filters the corpus, derives a per-paper effect size for
the dominant phenotype, and reports direction agreement, outliers, and
an interpretation band. The synthesizer is seeded: the same corpus,
filters, and seed always produce the same synthesis.`,
	RunE: runConsensus,
}

func runConsensus(cmd *cobra.Command, args []string) error {
	papers, err := loadPapers(cmd)
	if err != nil {
		return err
	}

	seed, _ := cmd.Flags().GetInt64("seed")
	if !cmd.Flags().Changed("seed") {
		if v := viper.GetInt64("analytics.seed"); v != 0 {
			seed = v
		}
	}

	result, err := consensus.New(seed).Consensus(papers, filtersFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(result)
	}

	fmt.Fprintf(os.Stdout, "Papers:         %d\n", result.TotalPapers)
	fmt.Fprintf(os.Stdout, "Direction:      %s\n", result.ConsensusDirection)
	fmt.Fprintf(os.Stdout, "Agreement:      %.2f\n", result.Statistics.Agreement)
	fmt.Fprintf(os.Stdout, "Mean magnitude: %.3f (median %.3f, sd %.3f)\n",
		result.Statistics.Mean, result.Statistics.Median, result.Statistics.StdDev)
	fmt.Fprintf(os.Stdout, "Interpretation: %s\n", result.Interpretation)

	if len(result.Outliers) > 0 {
		fmt.Fprintf(os.Stdout, "Outliers:       %s\n", strings.Join(result.Outliers, ", "))
	}

	fmt.Fprintf(os.Stdout, "\n%-12s  %-24s  %-10s  %-8s  %-8s  %s\n",
		"PMCID", "Phenotype", "Direction", "Effect", "p", "n")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
	for _, e := range result.EffectSizes {
		fmt.Fprintf(os.Stdout, "%-12s  %-24s  %-10s  %+8.3f  %-8.3f  %d\n",
			e.PMCID, e.Phenotype, e.Direction, e.Magnitude, e.PValue, e.SampleSize)
	}
	return nil
}

// --- shared filter flags ---

// addFilterFlags registers the corpus slice filters shared by the
// consensus and manager commands. List flags are comma separated.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("organisms", "", "filter by organism labels (comma-separated)")
	cmd.Flags().String("tissues", "", "filter by tissue labels (comma-separated)")
	cmd.Flags().String("exposures", "", "filter by exposure labels (comma-separated)")
	cmd.Flags().String("study-types", "", "filter by study-type labels (comma-separated)")
	cmd.Flags().String("missions", "", "filter by mission labels (comma-separated)")
	cmd.Flags().String("durations", "", "filter by duration labels (comma-separated)")
	cmd.Flags().Int("year-from", 0, "earliest publication year (inclusive)")
	cmd.Flags().Int("year-to", 0, "latest publication year (inclusive)")
	cmd.Flags().Int("min-sample-size", 0, "minimum parsed sample size")
}

func filtersFromFlags(cmd *cobra.Command) consensus.Filters {
	yearFrom, _ := cmd.Flags().GetInt("year-from")
	yearTo, _ := cmd.Flags().GetInt("year-to")
	minSample, _ := cmd.Flags().GetInt("min-sample-size")

	return consensus.Filters{
		Organisms:     csvFlag(cmd, "organisms"),
		Tissues:       csvFlag(cmd, "tissues"),
		Exposures:     csvFlag(cmd, "exposures"),
		StudyTypes:    csvFlag(cmd, "study-types"),
		Missions:      csvFlag(cmd, "missions"),
		Durations:     csvFlag(cmd, "durations"),
		YearFrom:      yearFrom,
		YearTo:        yearTo,
		MinSampleSize: minSample,
	}
}

func csvFlag(cmd *cobra.Command, name string) []string {
	raw, _ := cmd.Flags().GetString(name)
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

func init() {
	addFilterFlags(consensusCmd)
	consensusCmd.Flags().Int64("seed", 0, "PRNG seed for the synthesizer")
	consensusCmd.Flags().Bool("json", false, "output the synthesis as JSON")

	rootCmd.AddCommand(consensusCmd)
}
