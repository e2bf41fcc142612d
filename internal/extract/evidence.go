// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "regexp"

// Rigor keyword patterns for the evidence-strength heuristic (R3.1).
var (
	trialRe        = regexp.MustCompile(`(?i)\b(randomized|randomised|controlled trial)\b`)
	metaRe         = regexp.MustCompile(`(?i)\b(meta-?analysis|systematic review)\b`)
	longitudinalRe = regexp.MustCompile(`(?i)\b(longitudinal|prospective)\b`)
	placeboRe      = regexp.MustCompile(`(?i)\bplacebo\b`)
	pValueRe       = regexp.MustCompile(`(?i)p\s*[<=>]\s*0?\.\d+`)
	significantRe  = regexp.MustCompile(`(?i)\bsignificant\w*\b`)
)

// EvidenceStrength scores study rigor from keyword presence: 0.5 base,
// fixed increments per rigor marker, clamped to 1.0. A proxy score, not
// a validated instrument (R3.2).
func EvidenceStrength(text string) float64 {
	score := 0.5
	if trialRe.MatchString(text) {
		score += 0.3
	}
	if metaRe.MatchString(text) {
		score += 0.4
	}
	if longitudinalRe.MatchString(text) {
		score += 0.2
	}
	if placeboRe.MatchString(text) {
		score += 0.1
	}
	if pValueRe.MatchString(text) {
		score += 0.1
	}
	if significantRe.MatchString(text) {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// sampleSizeRe matches explicit cohort sizes like "n = 24" or "N=8".
var sampleSizeRe = regexp.MustCompile(`(?i)\bn\s*=\s*(\d+)`)

// SampleSize parses the first explicit "n = NN" notation from text.
// ok is false when no such notation exists.
func SampleSize(text string) (n int, ok bool) {
	m := sampleSizeRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	for _, c := range m[1] {
		n = n*10 + int(c-'0')
	}
	return n, true
}

// Direction polarity patterns (prd004-consensus R2.2). Matches are
// counted per occurrence, not per keyword.
var (
	increaseRe = regexp.MustCompile(`(?i)\b(increase[ds]?|elevated|up-?regulat\w+|enhanced|higher|greater|induced|activated|stimulated)\b`)
	decreaseRe = regexp.MustCompile(`(?i)\b(decrease[ds]?|reduced|down-?regulat\w+|suppressed|lower|diminished|attenuated|inhibited|loss)\b`)
	noChangeRe = regexp.MustCompile(`(?i)\b(no significant|not significant\w*|unchanged|no change|stable|remained similar)\b`)
)

// CountPolarity counts increase- and decrease-keyword occurrences in text.
func CountPolarity(text string) (increases, decreases int) {
	return len(increaseRe.FindAllString(text, -1)), len(decreaseRe.FindAllString(text, -1))
}

// HasNoChangePhrase reports whether text contains an explicit
// no-effect phrase, which overrides polarity counting.
func HasNoChangePhrase(text string) bool {
	return noChangeRe.MatchString(text)
}
