// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manager

import (
	"sort"

	"github.com/hyundp/knowledge-explorer-sub000/internal/consensus"
	"github.com/hyundp/knowledge-explorer-sub000/internal/insights"
	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

// coverageScore maps a study count onto [0,10]: ten studies or more is
// full coverage.
func coverageScore(studyCount int) float64 {
	score := float64(studyCount)
	if score > 10 {
		score = 10
	}
	return score
}

// quadrantFor positions a cell on the heatmap. Priority >= 7 with
// coverage below 3 is the critical-gap quadrant managers act on first.
func quadrantFor(coverage, priority float64) types.Quadrant {
	highPriority := priority >= 7
	highCoverage := coverage >= 3
	switch {
	case highPriority && !highCoverage:
		return types.QuadrantCriticalGap
	case highPriority && highCoverage:
		return types.QuadrantWellCovered
	case !highPriority && !highCoverage:
		return types.QuadrantLowValue
	default:
		return types.QuadrantWatch
	}
}

// CoveragePriorityMap positions every observed organism|tissue|exposure
// combination of the filtered corpus on the coverage x priority heatmap
// (R1.1-R1.3). Cells are ordered by priority descending, then coverage
// ascending, so critical gaps list first.
func CoveragePriorityMap(papers []types.Paper, filters consensus.Filters, opts insights.Options) (types.CoveragePriorityMap, error) {
	filtered, err := filters.Apply(papers)
	if err != nil {
		return types.CoveragePriorityMap{}, err
	}

	combos, err := insights.Combinations(filtered, opts)
	if err != nil {
		return types.CoveragePriorityMap{}, err
	}

	cells := make([]types.CoverageCell, 0, len(combos))
	for _, c := range combos {
		coverage := coverageScore(c.StudyCount())
		priority := ImpactScore(c.Organism, c.Tissue, c.Exposure)
		cells = append(cells, types.CoverageCell{
			Organism:   c.Organism,
			Tissue:     c.Tissue,
			Exposure:   c.Exposure,
			Coverage:   coverage,
			Priority:   priority,
			StudyCount: c.StudyCount(),
			Quadrant:   quadrantFor(coverage, priority),
		})
	}

	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].Priority != cells[j].Priority {
			return cells[i].Priority > cells[j].Priority
		}
		return cells[i].Coverage < cells[j].Coverage
	})

	return types.CoveragePriorityMap{Cells: cells, TotalCells: len(cells)}, nil
}
