// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manager implements the program-manager scoring engine:
// the shared per-project ROI formula, gap impact/feasibility/cost
// scoring, gap ROI rankings, the coverage x priority heatmap,
// redundancy clustering, and the greedy portfolio solver.
// Implements: prd006-scoring (R1-R5);
//
//	docs/ARCHITECTURE § Manager Scoring.
package manager

import "math"

// CalculateROI computes the shared per-project ROI score on [0,100]
// from impact [0,10], risk [0,10], and budget (USD). The formula is a
// contract reimplemented verbatim by dashboard clients, so any change
// here must stay bit-identical with them.
//
// Zero or NaN inputs return 0: the guard runs before the formula, so a
// literally risk-free project scores 0 rather than the formula's
// maximum. High impact with minimal (nonzero) risk and a moderate
// budget lands in the documented 70-95 band.
func CalculateROI(impact, risk, budget float64) float64 {
	if impact == 0 || risk == 0 || budget == 0 ||
		math.IsNaN(impact) || math.IsNaN(risk) || math.IsNaN(budget) {
		return 0
	}

	budgetInMillions := budget / 1_000_000

	impactMultiplier := math.Pow(impact/5, 2)*0.9 + 0.1
	riskPenalty := math.Pow(1-risk/10, 3)

	costEfficiency := 5.0
	if budgetInMillions > 0 {
		costEfficiency = 5 / (math.Log10(budgetInMillions*10+1) + 1)
	}

	roi := impactMultiplier * riskPenalty * costEfficiency * 20
	if math.IsNaN(roi) {
		return 0
	}
	return clamp(roi, 0, 100)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
