// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package consensus

import (
	"github.com/hyundp/knowledge-explorer-sub000/internal/extract"
	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

// Filters restricts the paper set fed to the synthesizer. Every field is
// optional; an absent (zero) field means no restriction on that
// dimension. Within one dimension the listed labels combine with OR (a
// paper matches if any label's pattern matches its text); across
// dimensions the filters combine with AND. Per prd004-consensus
// R1.2-R1.4.
type Filters struct {
	Organisms  []string `json:"organisms,omitempty" yaml:"organisms,omitempty"`
	Tissues    []string `json:"tissues,omitempty" yaml:"tissues,omitempty"`
	Exposures  []string `json:"exposures,omitempty" yaml:"exposures,omitempty"`
	StudyTypes []string `json:"study_types,omitempty" yaml:"study_types,omitempty"`
	Missions   []string `json:"missions,omitempty" yaml:"missions,omitempty"`
	Durations  []string `json:"durations,omitempty" yaml:"durations,omitempty"`

	// YearFrom and YearTo bound the publication year inclusively;
	// zero means unbounded.
	YearFrom int `json:"year_from,omitempty" yaml:"year_from,omitempty"`
	YearTo   int `json:"year_to,omitempty" yaml:"year_to,omitempty"`

	// MinSampleSize excludes papers whose parsed "n = NN" is below the
	// minimum. Papers with no parseable sample size fail this filter.
	MinSampleSize int `json:"min_sample_size,omitempty" yaml:"min_sample_size,omitempty"`
}

// IsEmpty reports whether no restriction is set.
func (f Filters) IsEmpty() bool {
	return len(f.Organisms) == 0 && len(f.Tissues) == 0 && len(f.Exposures) == 0 &&
		len(f.StudyTypes) == 0 && len(f.Missions) == 0 && len(f.Durations) == 0 &&
		f.YearFrom == 0 && f.YearTo == 0 && f.MinSampleSize == 0
}

// dimensionFilters pairs each dimension with its label list.
func (f Filters) dimensionFilters() map[types.Dimension][]string {
	return map[types.Dimension][]string{
		types.DimOrganism:  f.Organisms,
		types.DimTissue:    f.Tissues,
		types.DimExposure:  f.Exposures,
		types.DimStudyType: f.StudyTypes,
		types.DimMission:   f.Missions,
		types.DimDuration:  f.Durations,
	}
}

// Match reports whether p survives every set filter. Label matching
// runs over title + abstract + methods.
func (f Filters) Match(p types.Paper) (bool, error) {
	if f.YearFrom != 0 && p.Year < f.YearFrom {
		return false, nil
	}
	if f.YearTo != 0 && p.Year > f.YearTo {
		return false, nil
	}

	text := p.Text("methods")

	if f.MinSampleSize > 0 {
		n, ok := extract.SampleSize(text)
		if !ok || n < f.MinSampleSize {
			return false, nil
		}
	}

	for dim, labels := range f.dimensionFilters() {
		if len(labels) == 0 {
			continue
		}
		anyMatch := false
		for _, label := range labels {
			ok, err := extract.LabelMatches(dim, label, text)
			if err != nil {
				return false, err
			}
			if ok {
				anyMatch = true
				break
			}
		}
		if !anyMatch {
			return false, nil
		}
	}
	return true, nil
}

// Apply returns the papers surviving the filters, preserving input order.
func (f Filters) Apply(papers []types.Paper) ([]types.Paper, error) {
	if f.IsEmpty() {
		return papers, nil
	}
	var out []types.Paper
	for _, p := range papers {
		ok, err := f.Match(p)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}
