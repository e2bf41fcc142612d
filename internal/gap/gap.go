// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gap aggregates papers into the 2D gap matrix: primary
// dimension label x publication-age bucket, with study counts and mean
// evidence strength per cell.
// Implements: prd003-gap-matrix (R1-R4);
//
//	docs/ARCHITECTURE § Gap Matrix.
package gap

import (
	"fmt"
	"sort"

	"github.com/hyundp/knowledge-explorer-sub000/internal/extract"
	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

// AgeBucketFor coarsely buckets a publication by age in years. Only
// year granularity is available, so the two sub-year buckets are
// approximations (R2.2).
func AgeBucketFor(year, currentYear int) types.AgeBucket {
	switch age := currentYear - year; {
	case age <= 0:
		return types.BucketUnder6Months
	case age == 1:
		return types.Bucket6To12Months
	case age <= 3:
		return types.Bucket1To3Years
	default:
		return types.BucketOver3Years
	}
}

// cell accumulates one (label, bucket) group during the build.
type cell struct {
	pmcids map[string]bool
	order  []string // insertion order of pmcids
	scores []float64
}

// Build constructs the gap matrix for one dimension. Papers with no
// primary label are silently dropped from the matrix; callers must
// expect fewer classified papers than total papers (R2.1, R2.3).
func Build(papers []types.Paper, dim types.Dimension, currentYear int) (types.GapAnalysis, error) {
	patterns, err := extract.Patterns(dim)
	if err != nil {
		return types.GapAnalysis{}, fmt.Errorf("building gap matrix: %w", err)
	}

	type key struct {
		label  string
		bucket types.AgeBucket
	}
	cells := make(map[key]*cell)

	for _, p := range papers {
		text := p.Text()
		label, err := extract.PrimaryLabel(dim, text)
		if err != nil {
			return types.GapAnalysis{}, err
		}
		if label == "" {
			continue
		}

		k := key{label: label, bucket: AgeBucketFor(p.Year, currentYear)}
		c := cells[k]
		if c == nil {
			c = &cell{pmcids: make(map[string]bool)}
			cells[k] = c
		}
		if !c.pmcids[p.PMCID] {
			c.pmcids[p.PMCID] = true
			c.order = append(c.order, p.PMCID)
			c.scores = append(c.scores, extract.EvidenceStrength(text))
		}
	}

	out := types.GapAnalysis{Dimension: dim}
	for k, c := range cells {
		var sum float64
		for _, s := range c.scores {
			sum += s
		}
		out.Cells = append(out.Cells, types.GapCell{
			Label:               k.label,
			Bucket:              k.bucket,
			PMCIDs:              c.order,
			StudyCount:          len(c.order),
			AvgEvidenceStrength: sum / float64(len(c.scores)),
		})
	}

	// Deterministic order: label declaration order, then bucket age.
	labelRank := make(map[string]int, len(patterns))
	for i, p := range patterns {
		labelRank[p.Label] = i
	}
	bucketRank := make(map[types.AgeBucket]int, len(types.AgeBuckets))
	for i, b := range types.AgeBuckets {
		bucketRank[b] = i
	}
	sort.Slice(out.Cells, func(i, j int) bool {
		a, b := out.Cells[i], out.Cells[j]
		if a.Label != b.Label {
			return labelRank[a.Label] < labelRank[b.Label]
		}
		return bucketRank[a.Bucket] < bucketRank[b.Bucket]
	})

	out.TotalCells = len(out.Cells)
	maxCells := len(patterns) * len(types.AgeBuckets)
	if maxCells > 0 {
		out.Coverage = float64(out.TotalCells) / float64(maxCells)
	}
	return out, nil
}
