// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manager

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hyundp/knowledge-explorer-sub000/internal/consensus"
	"github.com/hyundp/knowledge-explorer-sub000/internal/insights"
	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

// ErrNotFound signals a lookup of a nonexistent gap id. This is the one
// analytics error a caller cannot proceed past.
var ErrNotFound = errors.New("gap not found")

// gapID slugs an organism|tissue|exposure triple into a stable id,
// e.g. "mus-musculus|bone|microgravity".
func gapID(organism, tissue, exposure string) string {
	slug := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), " ", "-")
	}
	return slug(organism) + "|" + slug(tissue) + "|" + slug(exposure)
}

// gapROI combines the three scores into the ranking value (R2.4).
func gapROI(impact, feasibility, cost float64) float64 {
	return 0.5*impact + 0.3*feasibility - 0.2*(math.Log10(cost)/6)*10
}

// urgencyFor tiers a gap by impact and precedent (R2.4).
func urgencyFor(impact float64, studyCount int) types.UrgencyTier {
	switch {
	case impact > 8 && studyCount <= 1:
		return types.UrgencyHigh
	case impact < 6 || studyCount > 1:
		return types.UrgencyLow
	default:
		return types.UrgencyMedium
	}
}

// scoreGap builds the full scoring record for one combination.
func scoreGap(organism, tissue, exposure string, studyCount int, pmcids []string) types.GapROIItem {
	impact := ImpactScore(organism, tissue, exposure)
	feasibility := FeasibilityScore(organism, tissue, studyCount)
	cost := CostEstimate(organism, exposure, studyCount)

	return types.GapROIItem{
		ID:          gapID(organism, tissue, exposure),
		Organism:    organism,
		Tissue:      tissue,
		Exposure:    exposure,
		StudyCount:  studyCount,
		Impact:      impact,
		Feasibility: feasibility,
		Cost:        cost,
		ROI:         gapROI(impact, feasibility, cost),
		Urgency:     urgencyFor(impact, studyCount),
		Rationale: fmt.Sprintf("%s / %s under %s has %d prior study(ies); impact %.1f, feasibility %.1f, est. cost $%.0f.",
			organism, tissue, exposure, studyCount, impact, feasibility, cost),
		PMCIDs: pmcids,
	}
}

// GapROIRankings scores every understudied combination (1-2 prior
// studies) of the filtered corpus and ranks them by ROI descending
// (R2.5). An empty corpus yields an empty ranking, not an error.
func GapROIRankings(papers []types.Paper, filters consensus.Filters, opts insights.Options) (types.GapROIResponse, error) {
	filtered, err := filters.Apply(papers)
	if err != nil {
		return types.GapROIResponse{}, err
	}

	combos, err := insights.Combinations(filtered, opts)
	if err != nil {
		return types.GapROIResponse{}, err
	}

	var gaps []types.GapROIItem
	for _, c := range combos {
		count := c.StudyCount()
		if count < 1 || count > 2 {
			continue
		}
		gaps = append(gaps, scoreGap(c.Organism, c.Tissue, c.Exposure, count, c.PMCIDs))
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].ROI > gaps[j].ROI
	})

	return types.GapROIResponse{Gaps: gaps, TotalGaps: len(gaps)}, nil
}

// GapDossier looks up one ranked gap by id. Unlike the no-data cases,
// an unknown id fails with ErrNotFound: the caller cannot proceed
// without the gap.
func GapDossier(rankings types.GapROIResponse, gapID string) (types.GapROIItem, error) {
	for _, g := range rankings.Gaps {
		if g.ID == gapID {
			return g, nil
		}
	}
	return types.GapROIItem{}, fmt.Errorf("gap %q: %w", gapID, ErrNotFound)
}
