// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// UrgencyTier labels how urgently a gap should be funded.
// Per prd006-scoring R2.4.
type UrgencyTier string

const (
	UrgencyHigh   UrgencyTier = "High"
	UrgencyMedium UrgencyTier = "Medium"
	UrgencyLow    UrgencyTier = "Low"
)

// GapROIItem is one scored research gap. Impact and feasibility are
// clamped to [0,10] and cost is a USD estimate; ROI combines the three.
// Recomputed from the current insights output, never persisted.
// Per prd006-scoring R2.1-R2.5.
type GapROIItem struct {
	// ID is a stable slug of the organism|tissue|exposure triple.
	ID string `json:"id" yaml:"id"`

	Organism string `json:"organism" yaml:"organism"`
	Tissue   string `json:"tissue" yaml:"tissue"`
	Exposure string `json:"exposure" yaml:"exposure"`

	// StudyCount is the number of prior studies of this triple.
	StudyCount int `json:"study_count" yaml:"study_count"`

	// Impact is the scientific-impact score in [0,10].
	Impact float64 `json:"impact" yaml:"impact"`

	// Feasibility is the practicality score in [1,10].
	Feasibility float64 `json:"feasibility" yaml:"feasibility"`

	// Cost is the estimated study cost in USD.
	Cost float64 `json:"cost" yaml:"cost"`

	// ROI is the composite ranking score.
	ROI float64 `json:"roi" yaml:"roi"`

	Urgency   UrgencyTier `json:"urgency" yaml:"urgency"`
	Rationale string      `json:"rationale" yaml:"rationale"`
	PMCIDs    []string    `json:"pmcids" yaml:"pmcids"`
}

// GapROIResponse is the ranked gap list, sorted by ROI descending.
type GapROIResponse struct {
	Gaps      []GapROIItem `json:"gaps" yaml:"gaps"`
	TotalGaps int          `json:"total_gaps" yaml:"total_gaps"`
}

// Quadrant classifies a coverage/priority cell.
// Per prd006-scoring R1.3.
type Quadrant string

const (
	QuadrantCriticalGap Quadrant = "critical_gap"
	QuadrantWatch       Quadrant = "watch"
	QuadrantWellCovered Quadrant = "well_covered"
	QuadrantLowValue    Quadrant = "low_value"
)

// CoverageCell is one research area positioned on the coverage x
// priority heatmap. Per prd006-scoring R1.1-R1.3.
type CoverageCell struct {
	Organism string `json:"organism" yaml:"organism"`
	Tissue   string `json:"tissue" yaml:"tissue"`
	Exposure string `json:"exposure" yaml:"exposure"`

	// Coverage is the study-count-derived coverage score in [0,10].
	Coverage float64 `json:"coverage" yaml:"coverage"`

	// Priority is the impact score in [0,10].
	Priority float64 `json:"priority" yaml:"priority"`

	StudyCount int      `json:"study_count" yaml:"study_count"`
	Quadrant   Quadrant `json:"quadrant" yaml:"quadrant"`
}

// CoveragePriorityMap is the manager heatmap.
type CoveragePriorityMap struct {
	Cells      []CoverageCell `json:"cells" yaml:"cells"`
	TotalCells int            `json:"total_cells" yaml:"total_cells"`
}

// RedundantPair is one above-threshold paper pair inside a cluster.
type RedundantPair struct {
	PMCIDA     string  `json:"pmcid_a" yaml:"pmcid_a"`
	PMCIDB     string  `json:"pmcid_b" yaml:"pmcid_b"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// RedundancyCluster groups lexically similar papers that share a primary
// organism|tissue|exposure triple. Per prd006-scoring R3.1-R3.4.
type RedundancyCluster struct {
	Organism string `json:"organism" yaml:"organism"`
	Tissue   string `json:"tissue" yaml:"tissue"`
	Exposure string `json:"exposure" yaml:"exposure"`

	PMCIDs []string        `json:"pmcids" yaml:"pmcids"`
	Pairs  []RedundantPair `json:"pairs" yaml:"pairs"`

	// MeanSimilarity is the mean pairwise similarity of the cluster.
	MeanSimilarity float64 `json:"mean_similarity" yaml:"mean_similarity"`

	// Suggestion is "merge" above 0.85 similarity, else "differentiate".
	Suggestion string `json:"suggestion" yaml:"suggestion"`
}

// RedundancyResponse summarizes redundancy across the corpus.
type RedundancyResponse struct {
	Clusters []RedundancyCluster `json:"clusters" yaml:"clusters"`

	// RedundancyIndex is the mean cluster similarity, 0 with no clusters.
	RedundancyIndex float64 `json:"redundancy_index" yaml:"redundancy_index"`

	TotalClusters int `json:"total_clusters" yaml:"total_clusters"`
}

// PortfolioSolution is the greedy budget-allocation result. Status is
// always "greedy": the solver makes no optimality claim.
// Per prd006-scoring R4.1-R4.4.
type PortfolioSolution struct {
	Selected []GapROIItem `json:"selected" yaml:"selected"`

	// TotalCost never exceeds the requested budget.
	TotalCost float64 `json:"total_cost" yaml:"total_cost"`

	// TotalROI sums the selected items' ROI scores.
	TotalROI float64 `json:"total_roi" yaml:"total_roi"`

	// CoverageLift estimates coverage improvement: selected/available x 20%.
	CoverageLift float64 `json:"coverage_lift" yaml:"coverage_lift"`

	// RiskReduction sums the selected items' impact scores.
	RiskReduction float64 `json:"risk_reduction" yaml:"risk_reduction"`

	Status string `json:"status" yaml:"status"`
}

// PortfolioEntry is one paper's manager-assigned scores inside a
// portfolio. Per prd007-portfolio R1.2.
type PortfolioEntry struct {
	PMCID string `json:"pmcid" yaml:"pmcid"`

	// Impact and Risk are manager-assigned scores in [0,10].
	Impact float64 `json:"impact" yaml:"impact"`
	Risk   float64 `json:"risk" yaml:"risk"`

	// Budget is the allocated funding in USD.
	Budget float64 `json:"budget" yaml:"budget"`

	// ROI is the per-project score derived by the shared ROI formula.
	ROI float64 `json:"roi" yaml:"roi"`
}

// Portfolio is a persisted set of funded papers with derived totals.
// Writes are last-write-wins: concurrent edits to the same id can
// clobber each other. Per prd007-portfolio R1.1-R1.4.
type Portfolio struct {
	ID          string           `json:"id" yaml:"id"`
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Entries     []PortfolioEntry `json:"entries" yaml:"entries"`

	// TotalBudget and AvgROI are recomputed on every write.
	TotalBudget float64 `json:"total_budget" yaml:"total_budget"`
	AvgROI      float64 `json:"avg_roi" yaml:"avg_roi"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}
