// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package portfolio persists manager portfolios: named sets of funded
// papers with per-paper impact/risk/budget scores and derived totals.
// Implements: prd007-portfolio (R1-R4);
//
//	docs/ARCHITECTURE § Portfolios.
package portfolio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hyundp/knowledge-explorer-sub000/internal/manager"
	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

// ErrNotFound signals a lookup of a nonexistent portfolio or entry.
var ErrNotFound = errors.New("portfolio not found")

// Store manages the portfolio SQLite database. Writes are
// last-write-wins; the store makes no attempt at optimistic locking.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the portfolio database at dbPath,
// creating the schema if needed (R1.1).
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS portfolios (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS portfolio_papers (
			portfolio_id TEXT NOT NULL REFERENCES portfolios(id) ON DELETE CASCADE,
			pmcid TEXT NOT NULL,
			impact REAL NOT NULL,
			risk REAL NOT NULL,
			budget REAL NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (portfolio_id, pmcid)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Create stores a new portfolio with a generated UUID (R1.2). Derived
// totals are computed before the caller sees the result.
func (s *Store) Create(ctx context.Context, name, description string, entries []types.PortfolioEntry) (types.Portfolio, error) {
	now := time.Now().UTC()
	p := types.Portfolio{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Entries:     entries,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Portfolio{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO portfolios (id, name, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return types.Portfolio{}, fmt.Errorf("inserting portfolio: %w", err)
	}

	if err := replaceEntries(ctx, tx, p.ID, entries); err != nil {
		return types.Portfolio{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Portfolio{}, fmt.Errorf("committing: %w", err)
	}
	return s.Get(ctx, p.ID)
}

// Update replaces a portfolio's name, description, and entries
// (last-write-wins, R1.4).
func (s *Store) Update(ctx context.Context, id, name, description string, entries []types.PortfolioEntry) (types.Portfolio, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Portfolio{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE portfolios SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		name, description, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return types.Portfolio{}, fmt.Errorf("updating portfolio: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.Portfolio{}, fmt.Errorf("portfolio %q: %w", id, ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM portfolio_papers WHERE portfolio_id = ?`, id); err != nil {
		return types.Portfolio{}, fmt.Errorf("clearing entries: %w", err)
	}
	if err := replaceEntries(ctx, tx, id, entries); err != nil {
		return types.Portfolio{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Portfolio{}, fmt.Errorf("committing: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a portfolio and its entries.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM portfolios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting portfolio: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("portfolio %q: %w", id, ErrNotFound)
	}
	return nil
}

// Get loads one portfolio with entries and derived totals (R1.3).
func (s *Store) Get(ctx context.Context, id string) (types.Portfolio, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM portfolios WHERE id = ?`, id)

	p, err := scanPortfolio(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Portfolio{}, fmt.Errorf("portfolio %q: %w", id, ErrNotFound)
		}
		return types.Portfolio{}, fmt.Errorf("loading portfolio %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT pmcid, impact, risk, budget FROM portfolio_papers
		 WHERE portfolio_id = ? ORDER BY position`, id)
	if err != nil {
		return types.Portfolio{}, fmt.Errorf("loading entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e types.PortfolioEntry
		if err := rows.Scan(&e.PMCID, &e.Impact, &e.Risk, &e.Budget); err != nil {
			return types.Portfolio{}, fmt.Errorf("scanning entry: %w", err)
		}
		e.ROI = manager.CalculateROI(e.Impact, e.Risk, e.Budget)
		p.Entries = append(p.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return types.Portfolio{}, err
	}

	deriveTotals(&p)
	return p, nil
}

// List returns all portfolios, most recently updated first (R1.5).
func (s *Store) List(ctx context.Context) ([]types.Portfolio, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM portfolios ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing portfolios: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]types.Portfolio, 0, len(ids))
	for _, id := range ids {
		p, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// AddPaper appends one scored paper to a portfolio. Adding an already
// present PMCID replaces its scores (R2.1).
func (s *Store) AddPaper(ctx context.Context, id string, entry types.PortfolioEntry) (types.Portfolio, error) {
	if err := s.touch(ctx, id); err != nil {
		return types.Portfolio{}, err
	}

	var next int
	if err := s.db.QueryRowContext(ctx,
		`SELECT coalesce(max(position), -1) + 1 FROM portfolio_papers WHERE portfolio_id = ?`, id,
	).Scan(&next); err != nil {
		return types.Portfolio{}, fmt.Errorf("computing position: %w", err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO portfolio_papers (portfolio_id, pmcid, impact, risk, budget, position)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(portfolio_id, pmcid) DO UPDATE SET
			impact=excluded.impact, risk=excluded.risk, budget=excluded.budget`,
		id, entry.PMCID, entry.Impact, entry.Risk, entry.Budget, next)
	if err != nil {
		return types.Portfolio{}, fmt.Errorf("adding paper: %w", err)
	}
	return s.Get(ctx, id)
}

// UpdatePaper rewrites one entry's scores (R2.2).
func (s *Store) UpdatePaper(ctx context.Context, id string, entry types.PortfolioEntry) (types.Portfolio, error) {
	if err := s.touch(ctx, id); err != nil {
		return types.Portfolio{}, err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE portfolio_papers SET impact = ?, risk = ?, budget = ?
		 WHERE portfolio_id = ? AND pmcid = ?`,
		entry.Impact, entry.Risk, entry.Budget, id, entry.PMCID)
	if err != nil {
		return types.Portfolio{}, fmt.Errorf("updating paper: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.Portfolio{}, fmt.Errorf("paper %q in portfolio %q: %w", entry.PMCID, id, ErrNotFound)
	}
	return s.Get(ctx, id)
}

// RemovePaper drops one entry (R2.3).
func (s *Store) RemovePaper(ctx context.Context, id, pmcid string) (types.Portfolio, error) {
	if err := s.touch(ctx, id); err != nil {
		return types.Portfolio{}, err
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM portfolio_papers WHERE portfolio_id = ? AND pmcid = ?`, id, pmcid)
	if err != nil {
		return types.Portfolio{}, fmt.Errorf("removing paper: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.Portfolio{}, fmt.Errorf("paper %q in portfolio %q: %w", pmcid, id, ErrNotFound)
	}
	return s.Get(ctx, id)
}

// touch bumps updated_at, failing with ErrNotFound for unknown ids.
func (s *Store) touch(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE portfolios SET updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("touching portfolio: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("portfolio %q: %w", id, ErrNotFound)
	}
	return nil
}

func replaceEntries(ctx context.Context, tx *sql.Tx, id string, entries []types.PortfolioEntry) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO portfolio_papers (portfolio_id, pmcid, impact, risk, budget, position)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(portfolio_id, pmcid) DO UPDATE SET
			impact=excluded.impact, risk=excluded.risk, budget=excluded.budget,
			position=excluded.position`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, id, e.PMCID, e.Impact, e.Risk, e.Budget, i); err != nil {
			return fmt.Errorf("inserting entry %s: %w", e.PMCID, err)
		}
	}
	return nil
}

func scanPortfolio(scan func(...any) error) (types.Portfolio, error) {
	var (
		p                    types.Portfolio
		description          sql.NullString
		createdAt, updatedAt string
	)
	if err := scan(&p.ID, &p.Name, &description, &createdAt, &updatedAt); err != nil {
		return types.Portfolio{}, err
	}
	p.Description = description.String
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		p.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		p.UpdatedAt = t
	}
	return p, nil
}

// deriveTotals recomputes TotalBudget and AvgROI from the entries.
// Stored scores are the inputs; ROI is always derived, never stored
// (R3.1, R3.2).
func deriveTotals(p *types.Portfolio) {
	if len(p.Entries) == 0 {
		p.TotalBudget = 0
		p.AvgROI = 0
		return
	}
	var budget, roi float64
	for _, e := range p.Entries {
		budget += e.Budget
		roi += e.ROI
	}
	p.TotalBudget = budget
	p.AvgROI = roi / float64(len(p.Entries))
}
