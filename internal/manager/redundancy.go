// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manager

import (
	"sort"
	"strings"

	"github.com/hyundp/knowledge-explorer-sub000/internal/extract"
	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

// DefaultRedundancyThreshold is the minimum pairwise similarity for two
// papers to join a cluster.
const DefaultRedundancyThreshold = 0.7

// mergeSuggestionThreshold separates "merge" from "differentiate".
const mergeSuggestionThreshold = 0.85

// wordSet lowercases text and keeps words longer than 3 characters.
func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if len(w) > 3 {
			set[w] = true
		}
	}
	return set
}

// jaccard computes word-set overlap: |a n b| / |a u b|. Two empty sets
// have similarity 0.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// redundancyGroup is a set of papers sharing one primary triple.
type redundancyGroup struct {
	organism, tissue, exposure string
	papers                     []types.Paper
}

// DetectRedundancy finds clusters of lexically near-duplicate abstracts
// within groups sharing a primary organism|tissue|exposure triple
// (R3.1-R3.4). A threshold <= 0 selects the default 0.7. Clusters are
// connected components of the at-or-above-threshold pair graph.
func DetectRedundancy(papers []types.Paper, threshold float64) (types.RedundancyResponse, error) {
	if threshold <= 0 {
		threshold = DefaultRedundancyThreshold
	}

	groups := make(map[string]*redundancyGroup)
	var groupKeys []string
	for _, p := range papers {
		text := p.Text()
		org, err := extract.PrimaryLabel(types.DimOrganism, text)
		if err != nil {
			return types.RedundancyResponse{}, err
		}
		tis, err := extract.PrimaryLabel(types.DimTissue, text)
		if err != nil {
			return types.RedundancyResponse{}, err
		}
		exp, err := extract.PrimaryLabel(types.DimExposure, text)
		if err != nil {
			return types.RedundancyResponse{}, err
		}
		if org == "" || tis == "" || exp == "" {
			continue
		}
		key := org + "|" + tis + "|" + exp
		g := groups[key]
		if g == nil {
			g = &redundancyGroup{organism: org, tissue: tis, exposure: exp}
			groups[key] = g
			groupKeys = append(groupKeys, key)
		}
		g.papers = append(g.papers, p)
	}
	sort.Strings(groupKeys)

	var clusters []types.RedundancyCluster
	for _, key := range groupKeys {
		clusters = append(clusters, clusterGroup(groups[key], threshold)...)
	}

	index := 0.0
	for _, c := range clusters {
		index += c.MeanSimilarity
	}
	if len(clusters) > 0 {
		index /= float64(len(clusters))
	}

	return types.RedundancyResponse{
		Clusters:        clusters,
		RedundancyIndex: index,
		TotalClusters:   len(clusters),
	}, nil
}

// clusterGroup finds connected components of the above-threshold pair
// graph within one group.
func clusterGroup(g *redundancyGroup, threshold float64) []types.RedundancyCluster {
	n := len(g.papers)
	if n < 2 {
		return nil
	}

	sets := make([]map[string]bool, n)
	for i, p := range g.papers {
		sets[i] = wordSet(p.Sections.Abstract)
	}

	// Union-find over above-threshold pairs.
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}

	type pair struct {
		a, b int
		sim  float64
	}
	var pairs []pair
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := jaccard(sets[i], sets[j])
			if sim >= threshold {
				pairs = append(pairs, pair{a: i, b: j, sim: sim})
				parent[find(i)] = find(j)
			}
		}
	}
	if len(pairs) == 0 {
		return nil
	}

	members := make(map[int][]int)
	memberPairs := make(map[int][]pair)
	for i := 0; i < n; i++ {
		members[find(i)] = append(members[find(i)], i)
	}
	for _, pr := range pairs {
		root := find(pr.a)
		memberPairs[root] = append(memberPairs[root], pr)
	}

	roots := make([]int, 0, len(memberPairs))
	for root := range memberPairs {
		roots = append(roots, root)
	}
	sort.Ints(roots)

	var clusters []types.RedundancyCluster
	for _, root := range roots {
		prs := memberPairs[root]

		var sum float64
		cPairs := make([]types.RedundantPair, len(prs))
		for i, pr := range prs {
			sum += pr.sim
			cPairs[i] = types.RedundantPair{
				PMCIDA:     g.papers[pr.a].PMCID,
				PMCIDB:     g.papers[pr.b].PMCID,
				Similarity: pr.sim,
			}
		}
		mean := sum / float64(len(prs))

		suggestion := "differentiate"
		if mean > mergeSuggestionThreshold {
			suggestion = "merge"
		}

		var pmcids []string
		for _, idx := range members[root] {
			pmcids = append(pmcids, g.papers[idx].PMCID)
		}

		clusters = append(clusters, types.RedundancyCluster{
			Organism:       g.organism,
			Tissue:         g.tissue,
			Exposure:       g.exposure,
			PMCIDs:         pmcids,
			Pairs:          cPairs,
			MeanSimilarity: mean,
			Suggestion:     suggestion,
		})
	}
	return clusters
}
