// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the knowledge-explorer
// analytics pipeline. Implements: prd001-corpus (Paper, R1.2-R1.4);
//
//	prd002-extraction (Dimension);
//	prd004-consensus (Consensus, EffectSize);
//	prd006-scoring (GapROIItem, PortfolioSolution).
package types

import (
	"strings"
	"time"
)

// Provenance records where and when a paper record was obtained.
// Per prd001-corpus R1.4.
type Provenance struct {
	// SourceType identifies the corpus origin (e.g. "pmc", "csv", "manual").
	SourceType string `json:"source_type" yaml:"source_type"`

	// FetchedAt is the timestamp of the original fetch.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`

	// SourceURL is the URL the record was fetched from.
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`
}

// Sections holds the named text blocks of a paper. Abstract is required;
// the remaining sections are optional and empty when absent. Per
// prd001-corpus R1.3.
type Sections struct {
	Abstract   string `json:"abstract" yaml:"abstract"`
	Methods    string `json:"methods,omitempty" yaml:"methods,omitempty"`
	Results    string `json:"results,omitempty" yaml:"results,omitempty"`
	Discussion string `json:"discussion,omitempty" yaml:"discussion,omitempty"`
	Conclusion string `json:"conclusion,omitempty" yaml:"conclusion,omitempty"`
}

// Paper is one immutable corpus record. Papers are created once at load
// time and never mutated; PMCID is the only cross-paper identity.
// Per prd001-corpus R1.2.
type Paper struct {
	// PMCID is the unique corpus key (e.g. "PMC4136787").
	PMCID string `json:"pmcid" yaml:"pmcid"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year.
	Year int `json:"year" yaml:"year"`

	// Journal is the publication venue.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// DOI is the digital object identifier, when known.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Sections holds the paper's named text blocks.
	Sections Sections `json:"sections" yaml:"sections"`

	// Provenance records the record's source.
	Provenance Provenance `json:"provenance" yaml:"provenance"`
}

// Text returns the concatenation of title and abstract, the default
// input for label extraction. Extra section names ("methods", "results",
// "discussion", "conclusion") can be appended for extractions that need
// them, e.g. study-type extraction reads methods.
func (p Paper) Text(extra ...string) string {
	var b strings.Builder
	b.WriteString(p.Title)
	b.WriteString(" ")
	b.WriteString(p.Sections.Abstract)
	for _, name := range extra {
		var s string
		switch name {
		case "methods":
			s = p.Sections.Methods
		case "results":
			s = p.Sections.Results
		case "discussion":
			s = p.Sections.Discussion
		case "conclusion":
			s = p.Sections.Conclusion
		}
		if s != "" {
			b.WriteString(" ")
			b.WriteString(s)
		}
	}
	return b.String()
}

// Dimension names one of the six independent extraction dimensions.
// Per prd002-extraction R1.1.
type Dimension string

const (
	DimOrganism  Dimension = "organism"
	DimTissue    Dimension = "tissue"
	DimExposure  Dimension = "exposure"
	DimStudyType Dimension = "study_type"
	DimMission   Dimension = "mission"
	DimDuration  Dimension = "duration"
)

// Dimensions lists every extraction dimension in canonical order.
var Dimensions = []Dimension{
	DimOrganism, DimTissue, DimExposure, DimStudyType, DimMission, DimDuration,
}

// Valid reports whether d names a known dimension.
func (d Dimension) Valid() bool {
	for _, known := range Dimensions {
		if d == known {
			return true
		}
	}
	return false
}
