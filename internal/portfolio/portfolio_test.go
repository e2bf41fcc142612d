package portfolio

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/hyundp/knowledge-explorer-sub000/internal/manager"
	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "portfolios.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleEntries() []types.PortfolioEntry {
	return []types.PortfolioEntry{
		{PMCID: "PMC100", Impact: 8, Risk: 3, Budget: 500_000},
		{PMCID: "PMC200", Impact: 6, Risk: 5, Budget: 1_200_000},
	}
}

func TestCreateAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, "Bone research FY26", "Priority bone studies", sampleEntries())
	if err != nil {
		t.Fatal(err)
	}
	if p.ID == "" {
		t.Fatal("expected generated id")
	}
	if p.Name != "Bone research FY26" {
		t.Errorf("Name = %q", p.Name)
	}
	if len(p.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(p.Entries))
	}

	// Entry order is insertion order.
	if p.Entries[0].PMCID != "PMC100" || p.Entries[1].PMCID != "PMC200" {
		t.Errorf("entry order = %s, %s", p.Entries[0].PMCID, p.Entries[1].PMCID)
	}

	// ROI is derived from the shared formula, never stored.
	wantROI := manager.CalculateROI(8, 3, 500_000)
	if math.Abs(p.Entries[0].ROI-wantROI) > 1e-9 {
		t.Errorf("Entries[0].ROI = %v, want %v", p.Entries[0].ROI, wantROI)
	}

	if p.TotalBudget != 1_700_000 {
		t.Errorf("TotalBudget = %v, want 1700000", p.TotalBudget)
	}
	wantAvg := (manager.CalculateROI(8, 3, 500_000) + manager.CalculateROI(6, 5, 1_200_000)) / 2
	if math.Abs(p.AvgROI-wantAvg) > 1e-9 {
		t.Errorf("AvgROI = %v, want %v", p.AvgROI, wantAvg)
	}

	got, err := store.Get(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != p.ID || len(got.Entries) != 2 {
		t.Errorf("Get mismatch: %+v", got)
	}
}

func TestGetNotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.Get(context.Background(), "missing-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateReplacesEntries(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, "Draft", "", sampleEntries())
	if err != nil {
		t.Fatal(err)
	}

	updated, err := store.Update(ctx, p.ID, "Final", "Approved set",
		[]types.PortfolioEntry{{PMCID: "PMC300", Impact: 9, Risk: 2, Budget: 800_000}})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Final" || updated.Description != "Approved set" {
		t.Errorf("updated = %+v", updated)
	}
	if len(updated.Entries) != 1 || updated.Entries[0].PMCID != "PMC300" {
		t.Errorf("Entries = %+v, want only PMC300", updated.Entries)
	}
	if updated.TotalBudget != 800_000 {
		t.Errorf("TotalBudget = %v", updated.TotalBudget)
	}

	_, err = store.Update(ctx, "missing-id", "x", "", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, "Short lived", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound after delete", err)
	}
	if err := store.Delete(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, "First", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Create(ctx, "Second", "", sampleEntries()); err != nil {
		t.Fatal(err)
	}

	// Touching the first portfolio moves it to the front.
	if _, err := store.AddPaper(ctx, first.ID,
		types.PortfolioEntry{PMCID: "PMC300", Impact: 5, Risk: 5, Budget: 100_000}); err != nil {
		t.Fatal(err)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].Name != "First" {
		t.Errorf("all[0] = %q, want most recently updated first", all[0].Name)
	}
}

func TestAddPaperUpsertsAndRecomputes(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, "Incremental", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.TotalBudget != 0 || p.AvgROI != 0 {
		t.Errorf("empty portfolio totals = %v / %v, want zero", p.TotalBudget, p.AvgROI)
	}

	p, err = store.AddPaper(ctx, p.ID,
		types.PortfolioEntry{PMCID: "PMC100", Impact: 8, Risk: 3, Budget: 500_000})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Entries) != 1 || p.TotalBudget != 500_000 {
		t.Errorf("after add: %+v", p)
	}

	// Re-adding the same PMCID replaces its scores, not duplicates it.
	p, err = store.AddPaper(ctx, p.ID,
		types.PortfolioEntry{PMCID: "PMC100", Impact: 9, Risk: 2, Budget: 600_000})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1 after upsert", len(p.Entries))
	}
	if p.Entries[0].Impact != 9 || p.TotalBudget != 600_000 {
		t.Errorf("after upsert: %+v", p.Entries[0])
	}

	_, err = store.AddPaper(ctx, "missing-id", types.PortfolioEntry{PMCID: "PMC1"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateAndRemovePaper(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, "Editable", "", sampleEntries())
	if err != nil {
		t.Fatal(err)
	}

	p, err = store.UpdatePaper(ctx, p.ID,
		types.PortfolioEntry{PMCID: "PMC200", Impact: 7, Risk: 4, Budget: 900_000})
	if err != nil {
		t.Fatal(err)
	}
	if p.Entries[1].Impact != 7 || p.Entries[1].Budget != 900_000 {
		t.Errorf("updated entry = %+v", p.Entries[1])
	}
	if p.TotalBudget != 1_400_000 {
		t.Errorf("TotalBudget = %v, want 1400000", p.TotalBudget)
	}

	_, err = store.UpdatePaper(ctx, p.ID, types.PortfolioEntry{PMCID: "PMC404"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown pmcid err = %v, want ErrNotFound", err)
	}

	p, err = store.RemovePaper(ctx, p.ID, "PMC100")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Entries) != 1 || p.Entries[0].PMCID != "PMC200" {
		t.Errorf("after remove: %+v", p.Entries)
	}

	_, err = store.RemovePaper(ctx, p.ID, "PMC100")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("second remove err = %v, want ErrNotFound", err)
	}
}

func TestZeroScoreEntryDerivesZeroROI(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, "Unscored", "",
		[]types.PortfolioEntry{{PMCID: "PMC100"}})
	if err != nil {
		t.Fatal(err)
	}
	if p.Entries[0].ROI != 0 {
		t.Errorf("ROI = %v, want 0 for unscored entry", p.Entries[0].ROI)
	}
	if p.AvgROI != 0 {
		t.Errorf("AvgROI = %v, want 0", p.AvgROI)
	}
}
