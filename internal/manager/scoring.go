// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manager

// criticalTissues are tissues with direct crew-health relevance.
var criticalTissues = map[string]bool{
	"Bone":          true,
	"Muscle":        true,
	"Heart":         true,
	"Brain":         true,
	"Immune system": true,
	"Eye":           true,
}

// accessibleTissues can be sampled without invasive procedures.
var accessibleTissues = map[string]bool{
	"Blood": true,
	"Skin":  true,
	"Eye":   true,
}

// standardModelOrganisms have established flight-study protocols.
var standardModelOrganisms = map[string]bool{
	"Mus musculus":             true,
	"Rattus norvegicus":        true,
	"Caenorhabditis elegans":   true,
	"Drosophila melanogaster":  true,
	"Danio rerio":              true,
	"Saccharomyces cerevisiae": true,
	"Arabidopsis thaliana":     true,
	"Escherichia coli":         true,
}

func isRodent(organism string) bool {
	return organism == "Mus musculus" || organism == "Rattus norvegicus"
}

// ImpactScore rates a gap's scientific impact on [0,10] (R2.1):
// base 5.0, bonuses for human relevance, rodent translatability,
// critical tissues, and spaceflight-representative exposures.
func ImpactScore(organism, tissue, exposure string) float64 {
	score := 5.0
	switch {
	case organism == "Homo sapiens":
		score += 2.5
	case isRodent(organism):
		score += 1.5
	}
	if criticalTissues[tissue] {
		score += 1.5
	}
	switch exposure {
	case "Spaceflight", "Radiation":
		score += 1.5
	case "Combined":
		score += 0.5
	}
	return clamp(score, 0, 10)
}

// FeasibilityScore rates how practical a gap study is, on [1,10]
// (R2.2). Human studies get a smaller bonus than model organisms
// because crew access is the bottleneck; 1-2 prior studies count as
// precedent, zero priors penalize.
func FeasibilityScore(organism, tissue string, priorStudies int) float64 {
	score := 5.0
	switch {
	case standardModelOrganisms[organism]:
		score += 2.0
	case organism == "Homo sapiens":
		score += 0.5
	}
	switch {
	case priorStudies >= 1 && priorStudies <= 2:
		score += 1.5
	case priorStudies == 0:
		score -= 1.0
	}
	if accessibleTissues[tissue] {
		score += 1.0
	}
	return clamp(score, 1, 10)
}

// CostEstimate returns an order-of-magnitude USD cost for filling a gap
// (R2.3): $100k base scaled by organism and exposure complexity, plus a
// 1.5x premium when no prior study exists to build on.
func CostEstimate(organism, exposure string, priorStudies int) float64 {
	cost := 100_000.0

	switch {
	case organism == "Homo sapiens":
		cost *= 5
	case isRodent(organism):
		cost *= 2
	default:
		cost *= 1.2
	}

	switch exposure {
	case "Spaceflight":
		cost *= 10
	case "Combined":
		cost *= 3
	case "Radiation":
		cost *= 2
	}

	if priorStudies == 0 {
		cost *= 1.5
	}
	return cost
}
