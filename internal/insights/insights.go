// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package insights cross-tabulates organism x tissue x exposure
// combinations into top research areas and research gaps, and derives
// methodology growth trends and the publication timeline.
// Implements: prd005-insights (R1-R5);
//
//	docs/ARCHITECTURE § Insights Aggregator.
package insights

import (
	"sort"
	"time"

	"github.com/hyundp/knowledge-explorer-sub000/internal/extract"
	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

const (
	defaultRecentYears = 2
	oldWindowYears     = 5
	maxAreas           = 20
	maxGaps            = 20
	maxTrends          = 6
)

// Options controls the aggregation windows. Zero values select the
// defaults: Now = time.Now(), RecentWindow = 2 years.
type Options struct {
	Now          time.Time
	RecentWindow time.Duration
}

func (o Options) normalize() (now time.Time, recentYears int) {
	now = o.Now
	if now.IsZero() {
		now = time.Now()
	}
	recentYears = defaultRecentYears
	if o.RecentWindow > 0 {
		recentYears = int(o.RecentWindow.Hours() / (24 * 365))
		if recentYears < 1 {
			recentYears = 1
		}
	}
	return now, recentYears
}

// Combination is one cross-tabulated organism|tissue|exposure triple
// with its contributing papers.
type Combination struct {
	Organism string
	Tissue   string
	Exposure string

	// PMCIDs is deduplicated, in corpus order.
	PMCIDs []string

	// RecentCount is contributions published within the recent window.
	RecentCount int
}

// StudyCount returns the number of contributing papers.
func (c Combination) StudyCount() int { return len(c.PMCIDs) }

// triple accumulates one organism|tissue|exposure combination.
type triple struct {
	organism, tissue, exposure string
	pmcids                     map[string]bool
	order                      []string
	recent                     int
}

// Combinations cross-tabulates the corpus into organism|tissue|exposure
// triples using multi-match extraction, so one paper can contribute to
// several combinations; papers missing any of the three dimensions
// contribute to none (R1.2). Results are sorted by triple key.
func Combinations(papers []types.Paper, opts Options) ([]Combination, error) {
	now, recentYears := opts.normalize()
	recentCutoff := now.Year() - recentYears

	triples := make(map[string]*triple)
	for _, p := range papers {
		text := p.Text("methods")

		organisms, err := extract.Labels(types.DimOrganism, text)
		if err != nil {
			return nil, err
		}
		tissues, err := extract.Labels(types.DimTissue, text)
		if err != nil {
			return nil, err
		}
		exposures, err := extract.Labels(types.DimExposure, text)
		if err != nil {
			return nil, err
		}

		for _, org := range organisms {
			for _, tis := range tissues {
				for _, exp := range exposures {
					key := org + "|" + tis + "|" + exp
					tr := triples[key]
					if tr == nil {
						tr = &triple{organism: org, tissue: tis, exposure: exp, pmcids: make(map[string]bool)}
						triples[key] = tr
					}
					if !tr.pmcids[p.PMCID] {
						tr.pmcids[p.PMCID] = true
						tr.order = append(tr.order, p.PMCID)
						if p.Year >= recentCutoff {
							tr.recent++
						}
					}
				}
			}
		}
	}

	out := make([]Combination, 0, len(triples))
	for _, tr := range sortedTriples(triples) {
		out = append(out, Combination{
			Organism:    tr.organism,
			Tissue:      tr.tissue,
			Exposure:    tr.exposure,
			PMCIDs:      tr.order,
			RecentCount: tr.recent,
		})
	}
	return out, nil
}

// Get aggregates the corpus into the insights overview.
func Get(papers []types.Paper, opts Options) (types.InsightsData, error) {
	now, recentYears := opts.normalize()
	recentCutoff := now.Year() - recentYears
	oldCutoff := now.Year() - oldWindowYears

	combos, err := Combinations(papers, opts)
	if err != nil {
		return types.InsightsData{}, err
	}

	studyTypeOld := make(map[string]int)
	studyTypeRecent := make(map[string]int)
	timeline := make(map[int]int)

	for _, p := range papers {
		timeline[p.Year]++

		studyTypes, err := extract.Labels(types.DimStudyType, p.Text("methods"))
		if err != nil {
			return types.InsightsData{}, err
		}
		for _, st := range studyTypes {
			if p.Year <= oldCutoff {
				studyTypeOld[st]++
			}
			if p.Year >= recentCutoff {
				studyTypeRecent[st]++
			}
		}
	}

	out := types.InsightsData{
		TotalPapers:    len(papers),
		TopAreas:       topAreas(combos),
		ResearchGaps:   researchGaps(combos),
		EmergingTrends: emergingTrends(studyTypeOld, studyTypeRecent),
	}

	years := make([]int, 0, len(timeline))
	for y := range timeline {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		out.Timeline = append(out.Timeline, types.TimelinePoint{Year: y, Count: timeline[y]})
	}

	return out, nil
}

// sortedTriples returns the triples in deterministic key order.
func sortedTriples(triples map[string]*triple) []*triple {
	keys := make([]string, 0, len(triples))
	for k := range triples {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*triple, len(keys))
	for i, k := range keys {
		out[i] = triples[k]
	}
	return out
}

// topAreas selects triples with at least 3 studies, most-studied first
// (R2.1-R2.3).
func topAreas(combos []Combination) []types.TopArea {
	var areas []types.TopArea
	for _, c := range combos {
		count := c.StudyCount()
		if count < 3 {
			continue
		}
		priority := types.PriorityLow
		switch {
		case count >= 10:
			priority = types.PriorityHigh
		case count >= 5:
			priority = types.PriorityMedium
		}
		areas = append(areas, types.TopArea{
			Organism:     c.Organism,
			Tissue:       c.Tissue,
			Exposure:     c.Exposure,
			StudyCount:   count,
			Priority:     priority,
			RecentPapers: c.RecentCount,
			PMCIDs:       c.PMCIDs,
		})
	}
	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].StudyCount > areas[j].StudyCount
	})
	if len(areas) > maxAreas {
		areas = areas[:maxAreas]
	}
	return areas
}

// researchGaps selects triples with exactly 1-2 studies, least-studied
// first (R3.1-R3.3).
func researchGaps(combos []Combination) []types.ResearchGap {
	var gaps []types.ResearchGap
	for _, c := range combos {
		count := c.StudyCount()
		if count < 1 || count > 2 {
			continue
		}
		priority := types.PriorityMedium
		rationale := "Only two studies examine this combination; findings lack replication."
		if count == 1 {
			priority = types.PriorityHigh
			rationale = "A single study examines this combination; the finding is unreplicated."
		}
		gaps = append(gaps, types.ResearchGap{
			Organism:   c.Organism,
			Tissue:     c.Tissue,
			Exposure:   c.Exposure,
			StudyCount: count,
			Priority:   priority,
			Rationale:  rationale,
			PMCIDs:     c.PMCIDs,
		})
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].StudyCount < gaps[j].StudyCount
	})
	if len(gaps) > maxGaps {
		gaps = gaps[:maxGaps]
	}
	return gaps
}

// emergingTrends compares each study type's old vs recent publication
// counts. Only types with recent activity are reported (R4.1-R4.4).
func emergingTrends(old, recent map[string]int) []types.EmergingTrend {
	labels := make([]string, 0, len(recent))
	for st := range recent {
		labels = append(labels, st)
	}
	sort.Strings(labels)

	var trends []types.EmergingTrend
	for _, st := range labels {
		recentCount := recent[st]
		if recentCount == 0 {
			continue
		}
		oldCount := old[st]

		trend := types.TrendNew
		growth := 0.0
		if oldCount > 0 {
			growth = float64(recentCount-oldCount) / float64(oldCount) * 100
			switch {
			case growth > 50:
				trend = types.TrendIncreasing
			case growth > 0:
				trend = types.TrendGrowing
			default:
				trend = types.TrendStable
			}
		}

		trends = append(trends, types.EmergingTrend{
			StudyType:   st,
			OldCount:    oldCount,
			RecentCount: recentCount,
			GrowthPct:   growth,
			Trend:       trend,
		})
	}
	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].RecentCount > trends[j].RecentCount
	})
	if len(trends) > maxTrends {
		trends = trends[:maxTrends]
	}
	return trends
}
