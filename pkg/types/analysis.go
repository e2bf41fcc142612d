// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AgeBucket labels how long ago a paper was published. Only publication
// year is available, so the two sub-year buckets are approximations.
// Per prd003-gap-matrix R2.2.
type AgeBucket string

const (
	BucketUnder6Months AgeBucket = "1-6 months"
	Bucket6To12Months  AgeBucket = "6-12 months"
	Bucket1To3Years    AgeBucket = "1-3 years"
	BucketOver3Years   AgeBucket = "3+ years"
)

// AgeBuckets lists every bucket in chronological order.
var AgeBuckets = []AgeBucket{
	BucketUnder6Months, Bucket6To12Months, Bucket1To3Years, BucketOver3Years,
}

// GapCell is one (label, age-bucket) aggregate of the gap matrix.
// StudyCount always equals len(PMCIDs) and PMCIDs is deduplicated.
// Per prd003-gap-matrix R3.1-R3.3.
type GapCell struct {
	// Label is the primary label for the requested dimension.
	Label string `json:"label" yaml:"label"`

	// Bucket is the publication-age bucket.
	Bucket AgeBucket `json:"bucket" yaml:"bucket"`

	// PMCIDs lists the contributing papers, deduplicated.
	PMCIDs []string `json:"pmcids" yaml:"pmcids"`

	// StudyCount is the number of contributing papers.
	StudyCount int `json:"study_count" yaml:"study_count"`

	// AvgEvidenceStrength is the mean heuristic evidence score in [0,1].
	AvgEvidenceStrength float64 `json:"avg_evidence_strength" yaml:"avg_evidence_strength"`
}

// GapAnalysis is the 2D gap matrix over one dimension.
// Per prd003-gap-matrix R1.1, R4.1.
type GapAnalysis struct {
	// Dimension is the primary dimension the matrix was built over.
	Dimension Dimension `json:"dimension" yaml:"dimension"`

	// Cells holds the populated matrix cells in deterministic order.
	Cells []GapCell `json:"cells" yaml:"cells"`

	// TotalCells is the number of populated cells.
	TotalCells int `json:"total_cells" yaml:"total_cells"`

	// Coverage is populated cells over the theoretical maximum
	// (labels x age buckets), in [0,1].
	Coverage float64 `json:"coverage" yaml:"coverage"`
}

// Direction classifies a synthesized per-paper effect.
// Per prd004-consensus R2.1.
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
	DirectionNoChange Direction = "no_change"
)

// EffectSize is one paper's synthesized effect record. Magnitude, the
// confidence interval, and (when unparseable) sample size are partly
// randomized: this is simulated evidence synthesis, not a measurement.
// Callers needing reproducibility must use a fixed synthesizer seed.
// Per prd004-consensus R2.1-R2.5.
type EffectSize struct {
	// PMCID identifies the source paper.
	PMCID string `json:"pmcid" yaml:"pmcid"`

	// Phenotype is the best-matching phenotype label.
	Phenotype string `json:"phenotype" yaml:"phenotype"`

	// Relevance is the keyword-based phenotype relevance in [0,1].
	Relevance float64 `json:"relevance" yaml:"relevance"`

	// Direction is increase, decrease, or no_change.
	Direction Direction `json:"direction" yaml:"direction"`

	// Magnitude is sign-coded: positive for increase, negative for decrease.
	Magnitude float64 `json:"magnitude" yaml:"magnitude"`

	// CILower and CIUpper bound the synthetic confidence interval.
	CILower float64 `json:"ci_lower" yaml:"ci_lower"`
	CIUpper float64 `json:"ci_upper" yaml:"ci_upper"`

	// PValue decreases as |Magnitude| grows; it is derived, not computed
	// from real statistics.
	PValue float64 `json:"p_value" yaml:"p_value"`

	// SampleSize is parsed from an "n = NN" pattern when present,
	// otherwise drawn uniformly from [20,100).
	SampleSize int `json:"sample_size" yaml:"sample_size"`
}

// ConsensusStatistics aggregates a filtered set's effect magnitudes.
// Per prd004-consensus R3.1-R3.3.
type ConsensusStatistics struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`

	// Agreement is the modal direction's share of all effects, in [0,1].
	Agreement float64 `json:"agreement" yaml:"agreement"`
}

// Consensus is the full synthesized-evidence summary for a filtered
// paper set. An empty filtered set yields a well-formed zero-value
// Consensus, never an error. Per prd004-consensus R1.1, R3.4.
type Consensus struct {
	// TotalPapers is the number of papers surviving the filters.
	TotalPapers int `json:"total_papers" yaml:"total_papers"`

	// EffectSizes holds one record per surviving paper, in corpus order.
	EffectSizes []EffectSize `json:"effect_sizes" yaml:"effect_sizes"`

	// Statistics aggregates the magnitudes.
	Statistics ConsensusStatistics `json:"statistics" yaml:"statistics"`

	// ConsensusDirection is the most frequent direction; ties resolve
	// to no_change.
	ConsensusDirection Direction `json:"consensus_direction" yaml:"consensus_direction"`

	// Outliers lists PMCIDs whose |magnitude - mean| exceeds 2 std devs.
	Outliers []string `json:"outliers" yaml:"outliers"`

	// Interpretation is a human-readable consensus band: strong (>=0.8),
	// moderate (>=0.6), weak (>=0.4), or conflicting.
	Interpretation string `json:"interpretation" yaml:"interpretation"`
}

// PriorityTier labels a research area or gap.
type PriorityTier string

const (
	PriorityHigh   PriorityTier = "High"
	PriorityMedium PriorityTier = "Medium"
	PriorityLow    PriorityTier = "Low"
)

// TopArea is one well-studied organism|tissue|exposure combination.
// Per prd005-insights R2.1-R2.3.
type TopArea struct {
	Organism   string       `json:"organism" yaml:"organism"`
	Tissue     string       `json:"tissue" yaml:"tissue"`
	Exposure   string       `json:"exposure" yaml:"exposure"`
	StudyCount int          `json:"study_count" yaml:"study_count"`
	Priority   PriorityTier `json:"priority" yaml:"priority"`

	// RecentPapers counts contributions published within the recent window.
	RecentPapers int `json:"recent_papers" yaml:"recent_papers"`

	PMCIDs []string `json:"pmcids" yaml:"pmcids"`
}

// ResearchGap is one understudied combination (1-2 supporting papers).
// Per prd005-insights R3.1-R3.3.
type ResearchGap struct {
	Organism   string       `json:"organism" yaml:"organism"`
	Tissue     string       `json:"tissue" yaml:"tissue"`
	Exposure   string       `json:"exposure" yaml:"exposure"`
	StudyCount int          `json:"study_count" yaml:"study_count"`
	Priority   PriorityTier `json:"priority" yaml:"priority"`
	Rationale  string       `json:"rationale" yaml:"rationale"`
	PMCIDs     []string     `json:"pmcids" yaml:"pmcids"`
}

// TrendTier classifies a methodology's growth.
type TrendTier string

const (
	TrendIncreasing TrendTier = "Increasing"
	TrendGrowing    TrendTier = "Growing"
	TrendStable     TrendTier = "Stable"
	TrendNew        TrendTier = "New"
)

// EmergingTrend compares a study type's old vs recent publication counts.
// Per prd005-insights R4.1-R4.4.
type EmergingTrend struct {
	StudyType string `json:"study_type" yaml:"study_type"`

	// OldCount is papers published at least five years ago.
	OldCount int `json:"old_count" yaml:"old_count"`

	// RecentCount is papers published within the recent window.
	RecentCount int `json:"recent_count" yaml:"recent_count"`

	// GrowthPct is the percentage change from old to recent; meaningless
	// when Trend is New (old count was zero).
	GrowthPct float64 `json:"growth_pct" yaml:"growth_pct"`

	Trend TrendTier `json:"trend" yaml:"trend"`
}

// TimelinePoint is a single year's paper count.
type TimelinePoint struct {
	Year  int `json:"year" yaml:"year"`
	Count int `json:"count" yaml:"count"`
}

// InsightsData is the cross-tabulated corpus overview.
// Per prd005-insights R1.1.
type InsightsData struct {
	TopAreas       []TopArea       `json:"top_areas" yaml:"top_areas"`
	ResearchGaps   []ResearchGap   `json:"research_gaps" yaml:"research_gaps"`
	EmergingTrends []EmergingTrend `json:"emerging_trends" yaml:"emerging_trends"`
	Timeline       []TimelinePoint `json:"timeline" yaml:"timeline"`
	TotalPapers    int             `json:"total_papers" yaml:"total_papers"`
}
