package consensus

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

func paper(pmcid string, year int, title, abstract string) types.Paper {
	return types.Paper{
		PMCID:    pmcid,
		Title:    title,
		Year:     year,
		Sections: types.Sections{Abstract: abstract},
	}
}

func sampleCorpus() []types.Paper {
	return []types.Paper{
		paper("PMC1", 2024, "Bone loss in mice under microgravity",
			"Spaceflight decreased bone density and reduced bone mineral content in mice (n = 24). Bone loss was significant."),
		paper("PMC2", 2023, "Murine skeletal decline aboard the ISS",
			"Bone density decreased after 30 days of microgravity exposure in mice. Trabecular bone loss was reduced further over time."),
		paper("PMC3", 2022, "Rat bone density under hindlimb unloading",
			"Hindlimb unloading reduced bone density in rats; bone mineral content diminished."),
		paper("PMC4", 2021, "Plant growth in orbit",
			"Arabidopsis thaliana root growth remained unchanged during spaceflight."),
	}
}

func TestDeriveDirection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.Direction
	}{
		{"decrease wins", "bone density decreased and bone mass reduced while activity increased", types.DirectionDecrease},
		{"increase wins", "expression increased, levels elevated, markers upregulated", types.DirectionIncrease},
		{"tie is no change", "x increased while y decreased", types.DirectionNoChange},
		{"zero counts is no change", "the study describes mission logistics", types.DirectionNoChange},
		{"no-change phrase overrides polarity", "levels increased but the difference was not significant and remained unchanged", types.DirectionNoChange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveDirection(tt.text); got != tt.want {
				t.Errorf("deriveDirection = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatchPhenotype(t *testing.T) {
	label, rel := matchPhenotype("bone density and bone loss with bone mineral decline and osteoporosis risk")
	if label != "Bone density" {
		t.Errorf("phenotype = %q, want Bone density", label)
	}
	if rel <= 0 || rel > 1 {
		t.Errorf("relevance = %v, want (0,1]", rel)
	}

	// No keywords at all: relevance zero, first phenotype by declaration order.
	label, rel = matchPhenotype("orbital mechanics of the docking procedure")
	if rel != 0 {
		t.Errorf("relevance = %v, want 0", rel)
	}
	if label != "Bone density" {
		t.Errorf("zero-relevance phenotype = %q, want declaration-order first", label)
	}
}

func TestConsensusDeterministicWithSeed(t *testing.T) {
	papers := sampleCorpus()

	a, err := New(42).Consensus(papers, Filters{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(42).Consensus(papers, Filters{})
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should reproduce identical consensus output")
	}
}

func TestConsensusAggregation(t *testing.T) {
	got, err := New(7).Consensus(sampleCorpus(), Filters{})
	if err != nil {
		t.Fatal(err)
	}

	if got.TotalPapers != 4 || len(got.EffectSizes) != 4 {
		t.Fatalf("TotalPapers = %d, effects = %d, want 4", got.TotalPapers, len(got.EffectSizes))
	}

	// Three papers report decreases, one reports no change.
	if got.ConsensusDirection != types.DirectionDecrease {
		t.Errorf("ConsensusDirection = %q, want decrease", got.ConsensusDirection)
	}
	if got.Statistics.Agreement != 0.75 {
		t.Errorf("Agreement = %v, want 0.75", got.Statistics.Agreement)
	}
	if got.Interpretation != "Moderate consensus" {
		t.Errorf("Interpretation = %q, want Moderate consensus", got.Interpretation)
	}

	// Parsed sample size must survive synthesis.
	if got.EffectSizes[0].SampleSize != 24 {
		t.Errorf("SampleSize = %d, want parsed 24", got.EffectSizes[0].SampleSize)
	}

	// Sign coding: decrease magnitudes are negative.
	for _, e := range got.EffectSizes {
		switch e.Direction {
		case types.DirectionDecrease:
			if e.Magnitude > 0 {
				t.Errorf("%s: decrease magnitude %v not negative", e.PMCID, e.Magnitude)
			}
		case types.DirectionIncrease:
			if e.Magnitude < 0 {
				t.Errorf("%s: increase magnitude %v not positive", e.PMCID, e.Magnitude)
			}
		}
		if e.CILower > e.Magnitude || e.CIUpper < e.Magnitude {
			t.Errorf("%s: CI [%v,%v] does not bracket magnitude %v", e.PMCID, e.CILower, e.CIUpper, e.Magnitude)
		}
		if e.PValue <= 0 || e.PValue > 0.5 {
			t.Errorf("%s: PValue %v out of (0,0.5]", e.PMCID, e.PValue)
		}
	}
}

func TestConsensusEmptyFilteredSet(t *testing.T) {
	got, err := New(1).Consensus(sampleCorpus(), Filters{Organisms: []string{"Danio rerio"}})
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalPapers != 0 || len(got.EffectSizes) != 0 || len(got.Outliers) != 0 {
		t.Errorf("empty filtered set should yield zero-value consensus, got %+v", got)
	}
	if got.ConsensusDirection != types.DirectionNoChange {
		t.Errorf("empty set direction = %q, want no_change", got.ConsensusDirection)
	}
}

func TestFiltersCombineWithAND(t *testing.T) {
	papers := sampleCorpus()

	// Organism OR within a dimension.
	rodents, err := Filters{Organisms: []string{"Mus musculus", "Rattus norvegicus"}}.Apply(papers)
	if err != nil {
		t.Fatal(err)
	}
	if len(rodents) != 3 {
		t.Errorf("rodent filter kept %d papers, want 3", len(rodents))
	}

	// AND across dimensions: mouse papers that also mention the ISS.
	issMice, err := Filters{
		Organisms: []string{"Mus musculus"},
		Missions:  []string{"ISS"},
	}.Apply(papers)
	if err != nil {
		t.Fatal(err)
	}
	if len(issMice) != 1 || issMice[0].PMCID != "PMC2" {
		t.Errorf("ISS+mouse filter = %v, want [PMC2]", pmcids(issMice))
	}

	// Year range.
	recent, err := Filters{YearFrom: 2023}.Apply(papers)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Errorf("YearFrom filter kept %d papers, want 2", len(recent))
	}

	// Minimum sample size: only PMC1 declares n = 24.
	sized, err := Filters{MinSampleSize: 10}.Apply(papers)
	if err != nil {
		t.Fatal(err)
	}
	if len(sized) != 1 || sized[0].PMCID != "PMC1" {
		t.Errorf("MinSampleSize filter = %v, want [PMC1]", pmcids(sized))
	}
}

func TestConsensusTieBreaksToNoChange(t *testing.T) {
	papers := []types.Paper{
		paper("PMC1", 2024, "Up study", "bone density markers increased and bone mineral elevated"),
		paper("PMC2", 2024, "Down study", "bone density decreased and bone loss diminished further"),
	}
	got, err := New(3).Consensus(papers, Filters{})
	if err != nil {
		t.Fatal(err)
	}
	if got.ConsensusDirection != types.DirectionNoChange {
		t.Errorf("tied directions: got %q, want no_change", got.ConsensusDirection)
	}
}

func TestConsensusJSONRoundTrip(t *testing.T) {
	orig, err := New(99).Consensus(sampleCorpus(), Filters{})
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}

	var decoded types.Consensus
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(orig.EffectSizes, decoded.EffectSizes) {
		t.Error("effect_sizes ordering or content changed across JSON round-trip")
	}
	if orig.Statistics != decoded.Statistics {
		t.Errorf("statistics changed across round-trip: %+v vs %+v", orig.Statistics, decoded.Statistics)
	}
}

func pmcids(papers []types.Paper) []string {
	out := make([]string, len(papers))
	for i, p := range papers {
		out[i] = p.PMCID
	}
	return out
}
