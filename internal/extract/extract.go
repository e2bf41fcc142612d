// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"

	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

// Patterns returns the ordered pattern list for a dimension. An unknown
// dimension is a programmer error.
func Patterns(dim types.Dimension) ([]Pattern, error) {
	patterns, ok := dimensionPatterns[dim]
	if !ok {
		return nil, fmt.Errorf("unknown dimension %q", dim)
	}
	return patterns, nil
}

// DimensionLabels returns every canonical label of a dimension in
// declaration order.
func DimensionLabels(dim types.Dimension) ([]string, error) {
	patterns, err := Patterns(dim)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(patterns))
	for i, p := range patterns {
		labels[i] = p.Label
	}
	return labels, nil
}

// Labels extracts every matching canonical label of the dimension from
// text, in declaration order (R2.1). A text can match several labels of
// the same dimension (e.g. both "Blood" and "Bone marrow"); absence of
// any match yields an empty slice, never an error.
func Labels(dim types.Dimension, text string) ([]string, error) {
	patterns, err := Patterns(dim)
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, p := range patterns {
		if p.Re.MatchString(text) {
			labels = append(labels, p.Label)
		}
	}
	return labels, nil
}

// LabelMatches reports whether the named canonical label's pattern
// matches text. Unknown labels never match; only an unknown dimension
// is an error.
func LabelMatches(dim types.Dimension, label, text string) (bool, error) {
	patterns, err := Patterns(dim)
	if err != nil {
		return false, err
	}
	for _, p := range patterns {
		if p.Label == label {
			return p.Re.MatchString(text), nil
		}
	}
	return false, nil
}

// PrimaryLabel extracts the single canonical label for the dimension:
// the first dictionary entry (in declaration order) whose pattern
// matches (R2.2). Returns "" when nothing matches. The primary label is
// always a member of the Labels result for the same text.
func PrimaryLabel(dim types.Dimension, text string) (string, error) {
	patterns, err := Patterns(dim)
	if err != nil {
		return "", err
	}

	for _, p := range patterns {
		if p.Re.MatchString(text) {
			return p.Label, nil
		}
	}
	return "", nil
}
