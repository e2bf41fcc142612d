package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyundp/knowledge-explorer-sub000/internal/consensus"
	"github.com/hyundp/knowledge-explorer-sub000/internal/insights"
	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

func paper(pmcid, title, abstract string, year int) types.Paper {
	return types.Paper{
		PMCID:    pmcid,
		Title:    title,
		Year:     year,
		Sections: types.Sections{Abstract: abstract},
	}
}

// scoringCorpus yields three triples: Mus musculus|Bone|Microgravity
// with 3 studies, Mus musculus|Muscle|Radiation with 2, and
// Homo sapiens|Muscle|Radiation with 1.
func scoringCorpus() []types.Paper {
	return []types.Paper{
		paper("PMC1", "Microgravity induced bone loss in mice", "Femur density declined.", 2018),
		paper("PMC2", "Bone recovery in mice after microgravity", "Tibia remodeling observed.", 2020),
		paper("PMC3", "Osteoclast activity in mice under microgravity", "Bone turnover increased.", 2022),
		paper("PMC4", "Irradiation and murine muscle wasting", "Soleus mass decreased.", 2021),
		paper("PMC5", "Muscle gene response in mice after irradiation", "Myofibril damage noted.", 2023),
		paper("PMC6", "Radiation effects on human muscle fibers", "Muscle biopsies examined.", 2024),
	}
}

func TestGapROIRankings(t *testing.T) {
	resp, err := GapROIRankings(scoringCorpus(), consensus.Filters{}, insights.Options{})
	require.NoError(t, err)

	// The 3-study triple is not a gap; the 1- and 2-study triples are.
	require.Equal(t, 2, resp.TotalGaps)
	for _, g := range resp.Gaps {
		assert.GreaterOrEqual(t, g.StudyCount, 1, g.ID)
		assert.LessOrEqual(t, g.StudyCount, 2, g.ID)
		assert.NotEqual(t, "mus-musculus|bone|microgravity", g.ID)
	}

	// Non-increasing ROI order.
	for i := 1; i < len(resp.Gaps); i++ {
		assert.GreaterOrEqual(t, resp.Gaps[i-1].ROI, resp.Gaps[i].ROI)
	}

	// The mouse gap is cheaper and nearly as impactful, so it outranks
	// the human gap despite the human-relevance bonus.
	require.Equal(t, "mus-musculus|muscle|radiation", resp.Gaps[0].ID)
	require.Equal(t, "homo-sapiens|muscle|radiation", resp.Gaps[1].ID)

	human := resp.Gaps[1]
	assert.Equal(t, 10.0, human.Impact)
	assert.Equal(t, 7.0, human.Feasibility)
	assert.Equal(t, 1_000_000.0, human.Cost)
	assert.Equal(t, types.UrgencyHigh, human.Urgency)
	assert.Equal(t, []string{"PMC6"}, human.PMCIDs)

	mouse := resp.Gaps[0]
	assert.Equal(t, 9.5, mouse.Impact)
	assert.Equal(t, types.UrgencyLow, mouse.Urgency)
	assert.NotEmpty(t, mouse.Rationale)
}

func TestGapROIRankingsEmptyCorpus(t *testing.T) {
	resp, err := GapROIRankings(nil, consensus.Filters{}, insights.Options{})
	require.NoError(t, err)
	assert.Zero(t, resp.TotalGaps)
	assert.Empty(t, resp.Gaps)
}

func TestGapDossier(t *testing.T) {
	resp, err := GapROIRankings(scoringCorpus(), consensus.Filters{}, insights.Options{})
	require.NoError(t, err)

	got, err := GapDossier(resp, "homo-sapiens|muscle|radiation")
	require.NoError(t, err)
	assert.Equal(t, "Homo sapiens", got.Organism)

	_, err = GapDossier(resp, "homo-sapiens|liver|spaceflight")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCoveragePriorityMap(t *testing.T) {
	papers := append(scoringCorpus(),
		paper("PMC7", "Zebrafish skin responses to isolation", "Dermal changes recorded.", 2019))

	m, err := CoveragePriorityMap(papers, consensus.Filters{}, insights.Options{})
	require.NoError(t, err)
	require.Equal(t, 4, m.TotalCells)

	// Priority descending, coverage ascending on ties.
	for i := 1; i < len(m.Cells); i++ {
		prev, cur := m.Cells[i-1], m.Cells[i]
		if prev.Priority == cur.Priority {
			assert.LessOrEqual(t, prev.Coverage, cur.Coverage)
		} else {
			assert.Greater(t, prev.Priority, cur.Priority)
		}
	}

	byTriple := make(map[string]types.CoverageCell)
	for _, c := range m.Cells {
		byTriple[c.Organism+"|"+c.Tissue+"|"+c.Exposure] = c
	}

	assert.Equal(t, types.QuadrantCriticalGap, byTriple["Homo sapiens|Muscle|Radiation"].Quadrant)
	assert.Equal(t, types.QuadrantCriticalGap, byTriple["Mus musculus|Muscle|Radiation"].Quadrant)
	assert.Equal(t, types.QuadrantWellCovered, byTriple["Mus musculus|Bone|Microgravity"].Quadrant)
	assert.Equal(t, types.QuadrantLowValue, byTriple["Danio rerio|Skin|Isolation"].Quadrant)
}

func TestQuadrantFor(t *testing.T) {
	tests := []struct {
		coverage, priority float64
		want               types.Quadrant
	}{
		{1, 9, types.QuadrantCriticalGap},
		{5, 9, types.QuadrantWellCovered},
		{1, 5, types.QuadrantLowValue},
		{5, 5, types.QuadrantWatch},
		{3, 7, types.QuadrantWellCovered},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quadrantFor(tt.coverage, tt.priority),
			"coverage=%v priority=%v", tt.coverage, tt.priority)
	}
}

func TestDetectRedundancy(t *testing.T) {
	shared := "Microgravity induced bone density loss in mice during orbital experiments"
	papers := []types.Paper{
		paper("PMC1", "Bone loss study A", shared, 2020),
		paper("PMC2", "Bone loss study B", shared, 2021),
		// Same triple, disjoint vocabulary: stays outside the cluster.
		paper("PMC3", "Skeletal outcomes", "Skeletal responses of murine models under weightlessness using novel countermeasure protocols.", 2022),
		// Different triple entirely.
		paper("PMC4", "Cardiac radiation study", "Irradiation altered cardiac output in rats.", 2022),
	}

	resp, err := DetectRedundancy(papers, 0)
	require.NoError(t, err)
	require.Equal(t, 1, resp.TotalClusters)

	c := resp.Clusters[0]
	assert.Equal(t, "Mus musculus", c.Organism)
	assert.Equal(t, "Bone", c.Tissue)
	assert.Equal(t, "Microgravity", c.Exposure)
	assert.ElementsMatch(t, []string{"PMC1", "PMC2"}, c.PMCIDs)
	require.Len(t, c.Pairs, 1)
	assert.Equal(t, 1.0, c.Pairs[0].Similarity)
	assert.Equal(t, 1.0, c.MeanSimilarity)
	assert.Equal(t, "merge", c.Suggestion)
	assert.Equal(t, 1.0, resp.RedundancyIndex)
}

func TestDetectRedundancyNoneFound(t *testing.T) {
	papers := []types.Paper{
		paper("PMC1", "Bone loss in mice under microgravity", "Femur density declined after flight.", 2020),
		paper("PMC2", "Bone adaptation in mice under microgravity", "Trabecular architecture was preserved with exercise.", 2021),
	}
	resp, err := DetectRedundancy(papers, 0.9)
	require.NoError(t, err)
	assert.Zero(t, resp.TotalClusters)
	assert.Zero(t, resp.RedundancyIndex)
}

func TestJaccard(t *testing.T) {
	a := wordSet("bone density loss mice")
	b := wordSet("bone density gain mice")
	// Shared {bone, density, mice} over union of 5 words.
	assert.InDelta(t, 0.6, jaccard(a, b), 1e-9)
	assert.Equal(t, 0.0, jaccard(wordSet(""), wordSet("")))
	assert.Equal(t, 1.0, jaccard(a, a))
}

func TestSolvePortfolio(t *testing.T) {
	gaps := []types.GapROIItem{
		{ID: "c", ROI: 7, Cost: 100_000, Impact: 7},
		{ID: "a", ROI: 9, Cost: 500_000, Impact: 9},
		{ID: "b", ROI: 8, Cost: 400_000, Impact: 8},
	}

	sol := SolvePortfolio(gaps, 600_000)
	assert.Equal(t, "greedy", sol.Status)

	// a fits, b would overflow and is skipped, c still fits.
	require.Len(t, sol.Selected, 2)
	assert.Equal(t, "a", sol.Selected[0].ID)
	assert.Equal(t, "c", sol.Selected[1].ID)
	assert.LessOrEqual(t, sol.TotalCost, 600_000.0)
	assert.Equal(t, 16.0, sol.TotalROI)
	assert.Equal(t, 16.0, sol.RiskReduction)
	assert.InDelta(t, 2.0/3.0*20, sol.CoverageLift, 1e-9)

	// Selection order is non-increasing in ROI.
	for i := 1; i < len(sol.Selected); i++ {
		assert.GreaterOrEqual(t, sol.Selected[i-1].ROI, sol.Selected[i].ROI)
	}
}

func TestSolvePortfolioEdgeCases(t *testing.T) {
	gaps := []types.GapROIItem{{ID: "a", ROI: 9, Cost: 500_000, Impact: 9}}

	sol := SolvePortfolio(gaps, 0)
	assert.Empty(t, sol.Selected)
	assert.Equal(t, "greedy", sol.Status)
	assert.Zero(t, sol.CoverageLift)

	sol = SolvePortfolio(nil, 1_000_000)
	assert.Empty(t, sol.Selected)
	assert.Zero(t, sol.TotalCost)
}
