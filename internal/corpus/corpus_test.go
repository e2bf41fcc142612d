package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(tmpDir, metadataDir), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := types.CorpusConfig{CorpusDir: tmpDir, MaxResults: 20}
	store, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, tmpDir
}

func writeMeta(t *testing.T, tmpDir string, paper types.Paper) {
	t.Helper()
	data, err := yaml.Marshal(&paper)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(tmpDir, metadataDir, paper.PMCID+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func samplePaper(pmcid string) types.Paper {
	return types.Paper{
		PMCID:   pmcid,
		Title:   "Microgravity induced bone loss in mice",
		Authors: []string{"Smith, J.", "Doe, A."},
		Year:    2020,
		Journal: "NPJ Microgravity",
		Sections: types.Sections{
			Abstract: "Femur bone density declined after 30 days of spaceflight.",
			Methods:  "Micro-CT imaging of tibia samples, n=12 per group.",
			Results:  "Trabecular bone volume decreased significantly (p<0.01).",
		},
		Provenance: types.Provenance{
			SourceType: "pmc",
			FetchedAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
			SourceURL:  "https://www.ncbi.nlm.nih.gov/pmc/articles/" + pmcid,
		},
	}
}

func ingestNoFail(t *testing.T, store *Store) IngestSummary {
	t.Helper()
	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	return summary
}

// --- schema tests ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store, _ := testSetup(t)

	tables := []string{"papers", "papers_fts", "indexing_status"}
	for _, table := range tables {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type IN ('table','view') AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatal(err)
		}
		if count != 1 {
			t.Errorf("table %s not created", table)
		}
	}
}

func TestNewStoreIdempotent(t *testing.T) {
	_, tmpDir := testSetup(t)

	cfg := types.CorpusConfig{CorpusDir: tmpDir}
	again, err := NewStore(cfg)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	again.Close()
}

// --- ingest tests ---

func TestIngestIndexesPapers(t *testing.T) {
	store, tmpDir := testSetup(t)

	writeMeta(t, tmpDir, samplePaper("PMC100"))
	writeMeta(t, tmpDir, samplePaper("PMC200"))

	summary := ingestNoFail(t, store)
	if summary.Indexed != 2 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 2 indexed", summary)
	}

	got, err := store.Get(context.Background(), "PMC100")
	if err != nil {
		t.Fatal(err)
	}
	want := samplePaper("PMC100")
	if got.Title != want.Title {
		t.Errorf("Title = %q, want %q", got.Title, want.Title)
	}
	if len(got.Authors) != 2 || got.Authors[0] != "Smith, J." {
		t.Errorf("Authors = %v", got.Authors)
	}
	if got.Sections.Methods != want.Sections.Methods {
		t.Errorf("Methods = %q", got.Sections.Methods)
	}
	if !got.Provenance.FetchedAt.Equal(want.Provenance.FetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", got.Provenance.FetchedAt, want.Provenance.FetchedAt)
	}
}

func TestIngestSkipsUnchanged(t *testing.T) {
	store, tmpDir := testSetup(t)

	writeMeta(t, tmpDir, samplePaper("PMC100"))
	ingestNoFail(t, store)

	summary := ingestNoFail(t, store)
	if summary.Skipped != 1 || summary.Indexed != 0 {
		t.Errorf("summary = %+v, want 1 skipped", summary)
	}
}

func TestIngestUpdatesChanged(t *testing.T) {
	store, tmpDir := testSetup(t)

	writeMeta(t, tmpDir, samplePaper("PMC100"))
	ingestNoFail(t, store)

	changed := samplePaper("PMC100")
	changed.Title = "Revised: microgravity and murine bone loss"
	writeMeta(t, tmpDir, changed)

	// Force a distinct modification time regardless of clock resolution.
	path := filepath.Join(tmpDir, metadataDir, "PMC100.yaml")
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	summary := ingestNoFail(t, store)
	if summary.Updated != 1 {
		t.Fatalf("summary = %+v, want 1 updated", summary)
	}

	got, err := store.Get(context.Background(), "PMC100")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != changed.Title {
		t.Errorf("Title = %q, want updated title", got.Title)
	}

	n, err := store.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1 after update", n)
	}
}

func TestIngestMalformedFileNotFatal(t *testing.T) {
	store, tmpDir := testSetup(t)

	writeMeta(t, tmpDir, samplePaper("PMC100"))
	bad := filepath.Join(tmpDir, metadataDir, "PMC999.yaml")
	if err := os.WriteFile(bad, []byte("title: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf)
	if err != nil {
		t.Fatalf("malformed file should not abort ingest: %v", err)
	}
	if summary.Indexed != 1 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want 1 indexed, 1 failed", summary)
	}
	if !strings.Contains(buf.String(), "failed  PMC999") {
		t.Errorf("log missing failure line:\n%s", buf.String())
	}
}

func TestIngestRejectsIncompletePaper(t *testing.T) {
	store, tmpDir := testSetup(t)

	p := samplePaper("PMC100")
	p.Sections.Abstract = ""
	writeMeta(t, tmpDir, p)

	summary := ingestNoFail(t, store)
	if summary.Failed != 1 || summary.Indexed != 0 {
		t.Errorf("summary = %+v, want 1 failed", summary)
	}
}

// --- lookup tests ---

func TestGetNotFound(t *testing.T) {
	store, _ := testSetup(t)

	_, err := store.Get(context.Background(), "PMC404")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadAllOrdered(t *testing.T) {
	store, tmpDir := testSetup(t)

	for _, id := range []string{"PMC300", "PMC100", "PMC200"} {
		writeMeta(t, tmpDir, samplePaper(id))
	}
	ingestNoFail(t, store)

	papers, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(papers) != 3 {
		t.Fatalf("len = %d, want 3", len(papers))
	}
	for i, want := range []string{"PMC100", "PMC200", "PMC300"} {
		if papers[i].PMCID != want {
			t.Errorf("papers[%d] = %s, want %s", i, papers[i].PMCID, want)
		}
	}
}

// --- search tests ---

func TestSearchFullText(t *testing.T) {
	store, tmpDir := testSetup(t)

	bone := samplePaper("PMC100")
	heart := samplePaper("PMC200")
	heart.Title = "Cardiac remodeling during long-duration spaceflight"
	heart.Sections.Abstract = "Myocardial mass and cardiac output were measured in crew members."
	heart.Sections.Methods = "Echocardiography before and after six-month missions."
	heart.Year = 2022
	writeMeta(t, tmpDir, bone)
	writeMeta(t, tmpDir, heart)
	ingestNoFail(t, store)

	results, err := store.Search(context.Background(), SearchOptions{Query: "cardiac"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].PMCID != "PMC200" {
		t.Fatalf("results = %+v, want only PMC200", results)
	}
	if !strings.Contains(results[0].Snippet, "[cardiac]") {
		t.Errorf("snippet %q missing highlight", results[0].Snippet)
	}
}

func TestSearchYearBounds(t *testing.T) {
	store, tmpDir := testSetup(t)

	old := samplePaper("PMC100")
	old.Year = 2015
	recent := samplePaper("PMC200")
	recent.Year = 2023
	writeMeta(t, tmpDir, old)
	writeMeta(t, tmpDir, recent)
	ingestNoFail(t, store)

	results, err := store.Search(context.Background(), SearchOptions{Query: "bone", YearFrom: 2020})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].PMCID != "PMC200" {
		t.Fatalf("results = %+v, want only PMC200", results)
	}
}

func TestSearchEmptyQueryListsByYear(t *testing.T) {
	store, tmpDir := testSetup(t)

	a := samplePaper("PMC100")
	a.Year = 2018
	b := samplePaper("PMC200")
	b.Year = 2024
	writeMeta(t, tmpDir, a)
	writeMeta(t, tmpDir, b)
	ingestNoFail(t, store)

	results, err := store.Search(context.Background(), SearchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || results[0].PMCID != "PMC200" {
		t.Fatalf("results = %+v, want PMC200 first (year desc)", results)
	}
}

func TestSearchMaxResults(t *testing.T) {
	store, tmpDir := testSetup(t)

	for _, id := range []string{"PMC100", "PMC200", "PMC300"} {
		writeMeta(t, tmpDir, samplePaper(id))
	}
	ingestNoFail(t, store)

	results, err := store.Search(context.Background(), SearchOptions{Query: "bone", MaxResults: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("len = %d, want 2", len(results))
	}
}
