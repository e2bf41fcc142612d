// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus persists paper records and builds the full-text
// retrieval index every analytics endpoint reads from.
// Implements: prd001-corpus (R1-R5);
//
//	docs/ARCHITECTURE § Corpus Store.
package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

const (
	metadataDir = "metadata"
	indexDir    = "index"
	dbFile      = "corpus.db"
)

// ErrNotFound signals a lookup of a PMCID absent from the corpus.
var ErrNotFound = errors.New("paper not found")

// Store manages the corpus SQLite database.
type Store struct {
	db         *sql.DB
	corpusDir  string
	maxResults int
}

// NewStore opens or creates the corpus database at
// corpusDir/index/corpus.db, creating the schema if needed (R1.1).
func NewStore(cfg types.CorpusConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.CorpusDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, corpusDir: cfg.CorpusDir, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			pmcid TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			authors TEXT,
			year INTEGER,
			journal TEXT,
			doi TEXT,
			abstract TEXT NOT NULL,
			methods TEXT,
			results TEXT,
			discussion TEXT,
			conclusion TEXT,
			source_type TEXT,
			fetched_at TEXT,
			source_url TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(year)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			pmcid TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, abstract, body, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, abstract, body)
				VALUES (new.rowid, new.title, new.abstract,
					coalesce(new.methods,'') || ' ' || coalesce(new.results,'') || ' ' ||
					coalesce(new.discussion,'') || ' ' || coalesce(new.conclusion,''));
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract, body)
				VALUES ('delete', old.rowid, old.title, old.abstract,
					coalesce(old.methods,'') || ' ' || coalesce(old.results,'') || ' ' ||
					coalesce(old.discussion,'') || ' ' || coalesce(old.conclusion,''));
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract, body)
				VALUES ('delete', old.rowid, old.title, old.abstract,
					coalesce(old.methods,'') || ' ' || coalesce(old.results,'') || ' ' ||
					coalesce(old.discussion,'') || ' ' || coalesce(old.conclusion,''));
				INSERT INTO papers_fts(rowid, title, abstract, body)
				VALUES (new.rowid, new.title, new.abstract,
					coalesce(new.methods,'') || ' ' || coalesce(new.results,'') || ' ' ||
					coalesce(new.discussion,'') || ' ' || coalesce(new.conclusion,''));
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a corpus indexing run (R2.4).
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of metadata files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads paper YAML files from corpusDir/metadata/ and populates
// the database. File modification times drive incremental updates: an
// unchanged file is skipped, a changed one replaces the stored record
// (R2.1-R2.4). A malformed file is logged and counted, never fatal
// (R2.5).
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	metaDir := filepath.Join(s.corpusDir, metadataDir)

	entries, err := os.ReadDir(metaDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading metadata directory %s: %w", metaDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		pmcid := strings.TrimSuffix(entry.Name(), ".yaml")
		filePath := filepath.Join(metaDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", pmcid, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE pmcid = ?`, pmcid,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", pmcid)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", pmcid, err)
			summary.Failed++
			continue
		}

		var paper types.Paper
		if err := yaml.Unmarshal(data, &paper); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", pmcid, err)
			summary.Failed++
			continue
		}
		if paper.PMCID == "" {
			paper.PMCID = pmcid
		}
		if paper.Title == "" || paper.Sections.Abstract == "" {
			fmt.Fprintf(w, "failed  %s: missing title or abstract\n", pmcid)
			summary.Failed++
			continue
		}

		if err := s.upsertPaper(ctx, paper, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", pmcid, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s\n", pmcid)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s\n", pmcid)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) upsertPaper(ctx context.Context, paper types.Paper, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	authorsJSON, _ := json.Marshal(paper.Authors)
	fetchedAt := ""
	if !paper.Provenance.FetchedAt.IsZero() {
		fetchedAt = paper.Provenance.FetchedAt.UTC().Format(time.RFC3339)
	}

	// Delete-then-insert keeps the FTS triggers simple.
	if _, err := tx.ExecContext(ctx, `DELETE FROM papers WHERE pmcid = ?`, paper.PMCID); err != nil {
		return fmt.Errorf("deleting old record: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO papers (pmcid, title, authors, year, journal, doi,
			abstract, methods, results, discussion, conclusion,
			source_type, fetched_at, source_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		paper.PMCID, paper.Title, string(authorsJSON), paper.Year,
		paper.Journal, paper.DOI,
		paper.Sections.Abstract, paper.Sections.Methods, paper.Sections.Results,
		paper.Sections.Discussion, paper.Sections.Conclusion,
		paper.Provenance.SourceType, fetchedAt, paper.Provenance.SourceURL,
	)
	if err != nil {
		return fmt.Errorf("inserting paper: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (pmcid, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(pmcid) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		paper.PMCID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}

const paperColumns = `pmcid, title, authors, year, journal, doi,
	abstract, methods, results, discussion, conclusion,
	source_type, fetched_at, source_url`

func scanPaper(scan func(...any) error) (types.Paper, error) {
	var (
		p           types.Paper
		authorsJSON sql.NullString
		fetchedAt   sql.NullString
		journal     sql.NullString
		doi         sql.NullString
		methods     sql.NullString
		results     sql.NullString
		discussion  sql.NullString
		conclusion  sql.NullString
		sourceType  sql.NullString
		sourceURL   sql.NullString
	)

	err := scan(
		&p.PMCID, &p.Title, &authorsJSON, &p.Year, &journal, &doi,
		&p.Sections.Abstract, &methods, &results, &discussion, &conclusion,
		&sourceType, &fetchedAt, &sourceURL,
	)
	if err != nil {
		return types.Paper{}, err
	}

	if authorsJSON.Valid {
		json.Unmarshal([]byte(authorsJSON.String), &p.Authors)
	}
	p.Journal = journal.String
	p.DOI = doi.String
	p.Sections.Methods = methods.String
	p.Sections.Results = results.String
	p.Sections.Discussion = discussion.String
	p.Sections.Conclusion = conclusion.String
	p.Provenance.SourceType = sourceType.String
	p.Provenance.SourceURL = sourceURL.String
	if fetchedAt.Valid && fetchedAt.String != "" {
		if t, err := time.Parse(time.RFC3339, fetchedAt.String); err == nil {
			p.Provenance.FetchedAt = t
		}
	}

	return p, nil
}

// Get returns one paper by PMCID. A missing id fails with ErrNotFound.
func (s *Store) Get(ctx context.Context, pmcid string) (types.Paper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+paperColumns+` FROM papers WHERE pmcid = ?`, pmcid)

	p, err := scanPaper(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Paper{}, fmt.Errorf("paper %q: %w", pmcid, ErrNotFound)
		}
		return types.Paper{}, fmt.Errorf("loading paper %s: %w", pmcid, err)
	}
	return p, nil
}

// LoadAll returns every paper in the corpus ordered by PMCID. The
// analytics stages operate on this in-memory snapshot (R3.1).
func (s *Store) LoadAll(ctx context.Context) ([]types.Paper, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paperColumns+` FROM papers ORDER BY pmcid`)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var papers []types.Paper
	for rows.Next() {
		p, err := scanPaper(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

// Count returns the number of papers in the corpus.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting papers: %w", err)
	}
	return n, nil
}
