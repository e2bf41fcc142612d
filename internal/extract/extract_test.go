package extract

import (
	"testing"

	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

func TestLabelsMultiMatch(t *testing.T) {
	tests := []struct {
		name string
		dim  types.Dimension
		text string
		want []string
	}{
		{
			name: "organism scientific name and abbreviation",
			dim:  types.DimOrganism,
			text: "Caenorhabditis elegans were cultured alongside C. elegans controls",
			want: []string{"Caenorhabditis elegans"},
		},
		{
			name: "multiple organisms",
			dim:  types.DimOrganism,
			text: "Mice and rats were exposed; human cell lines served as reference",
			want: []string{"Homo sapiens", "Mus musculus", "Rattus norvegicus"},
		},
		{
			name: "blood and bone marrow overlap",
			dim:  types.DimTissue,
			text: "Peripheral blood and bone marrow samples were collected",
			want: []string{"Bone", "Blood", "Bone marrow"},
		},
		{
			name: "no match yields empty set",
			dim:  types.DimExposure,
			text: "A purely terrestrial observational cohort",
			want: nil,
		},
		{
			name: "case insensitive",
			dim:  types.DimExposure,
			text: "MICROGRAVITY conditions aboard the station",
			want: []string{"Microgravity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Labels(tt.dim, tt.text)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Labels(%s) = %v, want %v", tt.dim, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Labels(%s)[%d] = %q, want %q", tt.dim, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPrimaryLabelDeclarationOrder(t *testing.T) {
	// "mice" and "rats" both match; Mus musculus is declared first.
	got, err := PrimaryLabel(types.DimOrganism, "mice and rats aboard the ISS")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Mus musculus" {
		t.Errorf("PrimaryLabel = %q, want declaration-order winner %q", got, "Mus musculus")
	}
}

func TestPrimaryLabelIsMemberOfLabels(t *testing.T) {
	texts := []string{
		"Spaceflight effects on murine bone density during a 30 day ISS mission",
		"RNA-seq of Arabidopsis thaliana seedlings under simulated microgravity",
		"Radiation-induced immune suppression in astronauts after 6 months",
		"Histology of rat soleus muscle following hindlimb unloading",
		"",
		"No relevant biology terms here at all",
	}

	for _, dim := range types.Dimensions {
		for _, text := range texts {
			primary, err := PrimaryLabel(dim, text)
			if err != nil {
				t.Fatal(err)
			}
			all, err := Labels(dim, text)
			if err != nil {
				t.Fatal(err)
			}

			if primary == "" {
				if len(all) != 0 {
					t.Errorf("dim %s text %q: primary empty but Labels = %v", dim, text, all)
				}
				continue
			}

			found := false
			for _, l := range all {
				if l == primary {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("dim %s text %q: primary %q not in Labels %v", dim, text, primary, all)
			}
		}
	}
}

func TestPrimaryLabelPriorityRespectsPatternOrder(t *testing.T) {
	// For every dimension, the primary label of a text matching multiple
	// patterns must be the first-declared of the matched set.
	for _, dim := range types.Dimensions {
		patterns, err := Patterns(dim)
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(patterns); i++ {
			// Build a text from the canonical labels of entries 0 and i.
			text := patterns[0].Label + " " + patterns[i].Label
			all, err := Labels(dim, text)
			if err != nil {
				t.Fatal(err)
			}
			if len(all) == 0 {
				continue // canonical label text need not match its own pattern
			}
			primary, err := PrimaryLabel(dim, text)
			if err != nil {
				t.Fatal(err)
			}
			if primary != all[0] {
				t.Errorf("dim %s: primary %q, want first match %q", dim, primary, all[0])
			}
		}
	}
}

func TestUnknownDimension(t *testing.T) {
	if _, err := Labels(types.Dimension("phase"), "text"); err == nil {
		t.Error("Labels with unknown dimension: expected error")
	}
	if _, err := PrimaryLabel(types.Dimension("phase"), "text"); err == nil {
		t.Error("PrimaryLabel with unknown dimension: expected error")
	}
}

func TestEvidenceStrength(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"base score with no markers", "observational notes on plant growth", 0.5},
		{"randomized controlled trial", "a randomized design was used", 0.8},
		{"meta-analysis", "this systematic review covers 40 studies", 0.9},
		{"longitudinal", "a longitudinal cohort followed for a year", 0.7},
		{"p-value and significant", "bone loss was significant (p < 0.05)", 0.7},
		{
			"clamped at 1.0",
			"a randomized controlled trial and meta-analysis, longitudinal, placebo arm, significant at p = 0.01",
			1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvidenceStrength(tt.text)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("EvidenceStrength = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvidenceStrengthRange(t *testing.T) {
	texts := []string{
		"", "significant significant significant",
		"randomized meta-analysis longitudinal placebo significant p<0.001",
	}
	for _, text := range texts {
		got := EvidenceStrength(text)
		if got < 0 || got > 1 {
			t.Errorf("EvidenceStrength(%q) = %v, out of [0,1]", text, got)
		}
	}
}

func TestSampleSize(t *testing.T) {
	tests := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{"cohort of astronauts (n = 12) on the ISS", 12, true},
		{"mice (N=8 per group)", 8, true},
		{"no cohort size reported", 0, false},
	}

	for _, tt := range tests {
		got, ok := SampleSize(tt.text)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("SampleSize(%q) = (%d, %v), want (%d, %v)", tt.text, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCountPolarity(t *testing.T) {
	inc, dec := CountPolarity("bone density decreased while osteoclast activity increased and resorption increased")
	if inc != 2 || dec != 1 {
		t.Errorf("CountPolarity = (%d, %d), want (2, 1)", inc, dec)
	}
}

func TestHasNoChangePhrase(t *testing.T) {
	if !HasNoChangePhrase("levels remained unchanged between groups") {
		t.Error("expected no-change phrase to match")
	}
	if HasNoChangePhrase("levels rose sharply") {
		t.Error("unexpected no-change match")
	}
}
