// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"fmt"
	"strings"
)

// SearchOptions holds parameters for corpus queries (R4).
type SearchOptions struct {
	// Query is the FTS5 full-text search string (R4.1).
	Query string

	// YearFrom and YearTo bound the publication year, inclusive when
	// nonzero (R4.2).
	YearFrom int
	YearTo   int

	// MaxResults limits result count. Zero uses the store default (R4.3).
	MaxResults int
}

// SearchResult is one full-text hit with a highlighted snippet (R4.4).
type SearchResult struct {
	PMCID   string  `json:"pmcid" yaml:"pmcid"`
	Title   string  `json:"title" yaml:"title"`
	Year    int     `json:"year" yaml:"year"`
	Journal string  `json:"journal,omitempty" yaml:"journal,omitempty"`
	Snippet string  `json:"snippet" yaml:"snippet"`
	Rank    float64 `json:"rank" yaml:"rank"`
}

// Search runs a full-text query over title, abstract, and body text,
// ranked by FTS5 relevance. Year bounds apply after the match (R4.1,
// R4.2). An empty query lists papers by year descending instead.
func (s *Store) Search(ctx context.Context, opts SearchOptions) ([]SearchResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT p.pmcid, p.title, p.year, p.journal,
				snippet(papers_fts, 1, '[', ']', '...', 12), papers_fts.rank
			FROM papers_fts
			JOIN papers p ON p.rowid = papers_fts.rowid
			WHERE papers_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT p.pmcid, p.title, p.year, p.journal,
				substr(p.abstract, 1, 200), 0 AS rank
			FROM papers p
			WHERE 1=1`)
	}

	if opts.YearFrom > 0 {
		qb.WriteString(` AND p.year >= ?`)
		args = append(args, opts.YearFrom)
	}
	if opts.YearTo > 0 {
		qb.WriteString(` AND p.year <= ?`)
		args = append(args, opts.YearTo)
	}

	if useFTS {
		qb.WriteString(` ORDER BY papers_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY p.year DESC, p.pmcid`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.PMCID, &r.Title, &r.Year, &r.Journal, &r.Snippet, &r.Rank); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
