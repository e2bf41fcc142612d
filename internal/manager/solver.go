// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manager

import (
	"sort"

	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

// SolvePortfolio picks gaps greedily by ROI under a budget constraint
// (R4.1-R4.4): candidates sort by ROI descending and are accepted while
// the running cost stays within budget. The status is always "greedy";
// the solver claims no optimality. A non-positive budget selects
// nothing.
func SolvePortfolio(gaps []types.GapROIItem, budget float64) types.PortfolioSolution {
	candidates := append([]types.GapROIItem(nil), gaps...)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ROI > candidates[j].ROI
	})

	solution := types.PortfolioSolution{Status: "greedy"}
	for _, g := range candidates {
		if budget <= 0 || solution.TotalCost+g.Cost > budget {
			continue
		}
		solution.Selected = append(solution.Selected, g)
		solution.TotalCost += g.Cost
		solution.TotalROI += g.ROI
		solution.RiskReduction += g.Impact
	}

	if len(gaps) > 0 {
		solution.CoverageLift = float64(len(solution.Selected)) / float64(len(gaps)) * 20
	}
	return solution
}
