// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract mines paper text with pattern dictionaries, producing
// canonical category labels across six independent dimensions plus the
// heuristic evidence-strength score.
// Implements: prd002-extraction (R1-R4);
//
//	docs/ARCHITECTURE § Extraction.
package extract

import (
	"regexp"

	"github.com/hyundp/knowledge-explorer-sub000/pkg/types"
)

// Pattern pairs a canonical label with its compiled expression. Each
// dimension owns an ordered list; for primary-label extraction the first
// matching entry wins, so declaration order is the documented priority
// (R2.2). Patterns are case-insensitive and cover common variants and
// abbreviations.
type Pattern struct {
	Label string
	Re    *regexp.Regexp
}

var organismPatterns = []Pattern{
	{"Homo sapiens", regexp.MustCompile(`(?i)\b(humans?|homo sapiens|astronauts?|crew\s?members?|cosmonauts?)\b`)},
	{"Mus musculus", regexp.MustCompile(`(?i)\b(mice|mouse|mus musculus|murine)\b`)},
	{"Rattus norvegicus", regexp.MustCompile(`(?i)\b(rats?|rattus norvegicus)\b`)},
	{"Arabidopsis thaliana", regexp.MustCompile(`(?i)\b(arabidopsis(\s+thaliana)?|thale cress)\b`)},
	{"Caenorhabditis elegans", regexp.MustCompile(`(?i)\b(c\.?\s?elegans|caenorhabditis elegans|nematodes?)\b`)},
	{"Drosophila melanogaster", regexp.MustCompile(`(?i)\b(drosophila(\s+melanogaster)?|fruit fl(y|ies))\b`)},
	{"Saccharomyces cerevisiae", regexp.MustCompile(`(?i)\b(saccharomyces cerevisiae|s\.?\s?cerevisiae|yeast)\b`)},
	{"Danio rerio", regexp.MustCompile(`(?i)\b(zebrafish|danio rerio)\b`)},
	{"Escherichia coli", regexp.MustCompile(`(?i)\b(e\.?\s?coli|escherichia coli)\b`)},
	{"Bacillus subtilis", regexp.MustCompile(`(?i)\b(b\.?\s?subtilis|bacillus subtilis)\b`)},
}

// Bone precedes Bone marrow, so "bone marrow" yields primary label
// "Bone" while multi-match tags both. Order-dependent misclassification
// like this is a known limitation of first-match priority (R2.3).
var tissuePatterns = []Pattern{
	{"Bone", regexp.MustCompile(`(?i)\b(bones?|skeletal|osteo\w*|femur|tibia|vertebra\w*)\b`)},
	{"Muscle", regexp.MustCompile(`(?i)\b(muscles?|muscular|myofib\w*|soleus|gastrocnemius|sarcopeni\w*)\b`)},
	{"Heart", regexp.MustCompile(`(?i)\b(hearts?|cardiac|cardiovascular|myocardi\w*)\b`)},
	{"Brain", regexp.MustCompile(`(?i)\b(brains?|neural|neuronal|hippocamp\w*|cortex|cerebr\w*)\b`)},
	{"Liver", regexp.MustCompile(`(?i)\b(livers?|hepatic|hepatocytes?)\b`)},
	{"Kidney", regexp.MustCompile(`(?i)\b(kidneys?|renal|nephron\w*)\b`)},
	{"Lung", regexp.MustCompile(`(?i)\b(lungs?|pulmonary|respiratory)\b`)},
	{"Blood", regexp.MustCompile(`(?i)\b(blood|plasma|serum|erythrocytes?|leukocytes?)\b`)},
	{"Bone marrow", regexp.MustCompile(`(?i)\b(bone marrow|hematopoietic)\b`)},
	{"Immune system", regexp.MustCompile(`(?i)\b(immune|immunolog\w*|lymphocytes?|t[- ]cells?|spleen|thymus)\b`)},
	{"Eye", regexp.MustCompile(`(?i)\b(eyes?|retina\w*|ocular|optic nerve)\b`)},
	{"Skin", regexp.MustCompile(`(?i)\b(skin|dermal|epidermis|cutaneous)\b`)},
}

var exposurePatterns = []Pattern{
	{"Microgravity", regexp.MustCompile(`(?i)\b(micro-?gravity|weightlessness|zero[- ]g(ravity)?|simulated microgravity)\b`)},
	{"Radiation", regexp.MustCompile(`(?i)\b(radiations?|irradiat\w*|cosmic rays?|heavy ions?|gcr|solar particle events?)\b`)},
	{"Spaceflight", regexp.MustCompile(`(?i)\b(space\s?flights?|space mission|orbital flight|in orbit)\b`)},
	{"Hindlimb unloading", regexp.MustCompile(`(?i)\b(hind\s?limb (un)?load\w*|hindlimb suspension|tail suspension)\b`)},
	{"Isolation", regexp.MustCompile(`(?i)\b(isolation|confinement)\b`)},
	{"Hypergravity", regexp.MustCompile(`(?i)\b(hyper-?gravity|centrifug\w*)\b`)},
	{"Combined", regexp.MustCompile(`(?i)\b(combined (exposures?|stressors?|effects? of)|multi-?stressor)\b`)},
}

var studyTypePatterns = []Pattern{
	{"RNA-seq", regexp.MustCompile(`(?i)\b(rna-?seq\w*|transcriptom\w*|gene expression profiling)\b`)},
	{"Proteomics", regexp.MustCompile(`(?i)\b(proteom\w*|mass spectrometry)\b`)},
	{"Histology", regexp.MustCompile(`(?i)\b(histolog\w*|immunohistochem\w*|histomorphometr\w*)\b`)},
	{"Behavioral assay", regexp.MustCompile(`(?i)\b(behaviou?ral?( assays?| tests?)?)\b`)},
	{"Imaging", regexp.MustCompile(`(?i)\b(imaging|microscop\w*|micro-?ct|mri|tomograph\w*)\b`)},
	{"Cell culture", regexp.MustCompile(`(?i)\b(cell cultures?|cultured cells?|in vitro)\b`)},
	{"Biochemical assay", regexp.MustCompile(`(?i)\b(elisa|western blot\w*|enzymatic assays?|biochemical (assays?|analys\w*))\b`)},
}

var missionPatterns = []Pattern{
	{"ISS", regexp.MustCompile(`(?i)\b(iss|international space station)\b`)},
	{"Space Shuttle", regexp.MustCompile(`(?i)\b(space shuttle|sts-\d+)\b`)},
	{"Bion", regexp.MustCompile(`(?i)\b(bion(-m)?\s?\d*)\b`)},
	{"SpaceX", regexp.MustCompile(`(?i)\b(spacex|dragon capsule|crs-\d+)\b`)},
	{"Parabolic flight", regexp.MustCompile(`(?i)\b(parabolic flights?)\b`)},
	{"Ground analog", regexp.MustCompile(`(?i)\b(bed\s?rest|ground(-based)? analog\w*|clinostat|random positioning machine)\b`)},
}

var durationPatterns = []Pattern{
	{"Acute (<=7 days)", regexp.MustCompile(`(?i)\b([1-7]\s?days?|acute|(24|48|72)\s?h(ours|rs)?)\b`)},
	{"Short (8-30 days)", regexp.MustCompile(`(?i)\b(([89]|[12]\d|30)\s?days?|[1-4]\s?weeks?|short[- ]duration)\b`)},
	{"Medium (1-6 months)", regexp.MustCompile(`(?i)\b([1-6]\s?months?|([5-9]|1\d|2[0-6])\s?weeks?)\b`)},
	{"Long (6+ months)", regexp.MustCompile(`(?i)\b(([7-9]|1[0-2])\s?months?|long[- ]duration|(one|1)\s?year|six[- ]month)\b`)},
}

// dimensionPatterns maps each dimension to its ordered pattern list.
var dimensionPatterns = map[types.Dimension][]Pattern{
	types.DimOrganism:  organismPatterns,
	types.DimTissue:    tissuePatterns,
	types.DimExposure:  exposurePatterns,
	types.DimStudyType: studyTypePatterns,
	types.DimMission:   missionPatterns,
	types.DimDuration:  durationPatterns,
}
