// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hyundp/knowledge-explorer-sub000/internal/corpus"
	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the paper corpus (ingest, show, search, stats)",
	Long: `Corpus manages the local SQLite paper index built from per-paper
YAML metadata files. Use subcommands to ingest metadata, look up a
paper, or run full-text searches.`,
}

// --- ingest subcommand ---

var corpusIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index paper metadata into the corpus database",
	Long: `Ingest reads paper YAML files from corpus/metadata/, indexes them
into a SQLite database with FTS5 full-text search, and reports a
summary. Unchanged papers are skipped on subsequent runs; malformed
files are logged and counted, never fatal.`,
	RunE: runCorpusIngest,
}

func runCorpusIngest(cmd *cobra.Command, args []string) error {
	store, err := openCorpus(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d paper(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- show subcommand ---

var corpusShowCmd = &cobra.Command{
	Use:   "show [pmcid]",
	Short: "Print one paper record",
	Args:  cobra.ExactArgs(1),
	RunE:  runCorpusShow,
}

func runCorpusShow(cmd *cobra.Command, args []string) error {
	store, err := openCorpus(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	paper, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	return printJSON(paper)
}

// --- search subcommand ---

var corpusSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over titles, abstracts, and section text",
	Long: `Search runs an FTS5 query over the corpus, ranked by relevance.
Year bounds narrow the result set; an empty query lists papers by
year descending.`,
	RunE: runCorpusSearch,
}

func runCorpusSearch(cmd *cobra.Command, args []string) error {
	store, err := openCorpus(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	yearFrom, _ := cmd.Flags().GetInt("year-from")
	yearTo, _ := cmd.Flags().GetInt("year-to")
	limit, _ := cmd.Flags().GetInt("limit")

	results, err := store.Search(context.Background(), corpus.SearchOptions{
		Query:      strings.Join(args, " "),
		YearFrom:   yearFrom,
		YearTo:     yearTo,
		MaxResults: limit,
	})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-6s  %-60s  %s\n", "PMCID", "Year", "Title", "Snippet")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 120))
	for _, r := range results {
		title := r.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		snippet := strings.ReplaceAll(r.Snippet, "\n", " ")
		if len(snippet) > 40 {
			snippet = snippet[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-12s  %-6d  %-60s  %s\n", r.PMCID, r.Year, title, snippet)
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- stats subcommand ---

var corpusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print corpus size and coverage statistics",
	RunE:  runCorpusStats,
}

func runCorpusStats(cmd *cobra.Command, args []string) error {
	store, err := openCorpus(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}
	papers, err := store.LoadAll(ctx)
	if err != nil {
		return err
	}

	minYear, maxYear := 0, 0
	journals := map[string]struct{}{}
	for _, p := range papers {
		if p.Year > 0 && (minYear == 0 || p.Year < minYear) {
			minYear = p.Year
		}
		if p.Year > maxYear {
			maxYear = p.Year
		}
		if p.Journal != "" {
			journals[p.Journal] = struct{}{}
		}
	}

	fmt.Printf("Papers indexed: %d\n", total)
	if minYear > 0 {
		fmt.Printf("Year span:      %d-%d\n", minYear, maxYear)
	}
	fmt.Printf("Journals:       %d\n", len(journals))
	return nil
}

// --- shared helpers ---

// openCorpus builds a corpus store from flags, falling back to config
// file values.
func openCorpus(cmd *cobra.Command) (*corpus.Store, error) {
	corpusDir, _ := cmd.Flags().GetString("corpus-dir")
	if corpusDir == "" {
		corpusDir = viper.GetString("corpus.dir")
	}
	if corpusDir == "" {
		corpusDir = "corpus"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return corpus.NewStore(types.CorpusConfig{
		CorpusDir:  corpusDir,
		MaxResults: maxResults,
	})
}

// loadPapers opens the corpus and loads the full in-memory snapshot the
// analytics stages operate on.
func loadPapers(cmd *cobra.Command) ([]types.Paper, error) {
	store, err := openCorpus(cmd)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	return store.LoadAll(context.Background())
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	corpusCmd.PersistentFlags().Int("max-results", 20, "maximum number of search results")

	corpusSearchCmd.Flags().Int("year-from", 0, "earliest publication year (inclusive)")
	corpusSearchCmd.Flags().Int("year-to", 0, "latest publication year (inclusive)")
	corpusSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	corpusSearchCmd.Flags().Bool("json", false, "output results as JSON")

	corpusCmd.AddCommand(corpusIngestCmd)
	corpusCmd.AddCommand(corpusShowCmd)
	corpusCmd.AddCommand(corpusSearchCmd)
	corpusCmd.AddCommand(corpusStatsCmd)

	rootCmd.AddCommand(corpusCmd)
}
