// Package match scores candidate answers, typed or transcribed, against an
// expected word.
package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the similarity above which an answer counts as a match.
const DefaultThreshold = 0.7

// Normalize prepares a string for comparison: lowercase, surrounding
// whitespace trimmed, punctuation stripped.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Score returns a similarity in [0,1] between the expected word and a
// candidate answer. Exact match after normalization scores 1.0; otherwise
// the Levenshtein distance is converted to 1 - dist/maxLen, floored at 0.
//
// Two empty strings score 0, not 1: the absence of input is never a
// correct answer.
func Score(expected, actual string) float64 {
	e := Normalize(expected)
	a := Normalize(actual)

	if e == "" && a == "" {
		return 0
	}
	if e == a {
		return 1
	}

	dist := levenshtein.ComputeDistance(e, a)
	maxLen := utf8.RuneCountInString(e)
	if n := utf8.RuneCountInString(a); n > maxLen {
		maxLen = n
	}
	sim := 1 - float64(dist)/float64(maxLen)
	if sim < 0 {
		return 0
	}
	return sim
}

// TranscriptionResult carries both the boolean verdict and the underlying
// similarity, so callers can apply their own strictness.
type TranscriptionResult struct {
	Match      bool
	Confidence float64
}

// Matcher thresholds similarity scores.
type Matcher struct {
	Threshold float64
}

// NewMatcher creates a matcher, defaulting the threshold when unset.
func NewMatcher(threshold float64) Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Matcher{Threshold: threshold}
}

// IsMatch reports whether the candidate's similarity clears the threshold.
func (m Matcher) IsMatch(expected, actual string) bool {
	return Score(expected, actual) >= m.Threshold
}

// MatchTranscription applies the looser rule for transcribed speech: the
// usual similarity threshold, plus acceptance when the normalized
// transcription contains the normalized expected word as a substring.
// Recognizers pad answers with echo ("the word is cat"), so containment
// counts as a match, but Confidence still reports the raw similarity.
func (m Matcher) MatchTranscription(expected, transcript string) TranscriptionResult {
	sim := Score(expected, transcript)
	res := TranscriptionResult{Confidence: sim, Match: sim >= m.Threshold}
	if res.Match {
		return res
	}

	e := Normalize(expected)
	tr := Normalize(transcript)
	if e != "" && strings.Contains(tr, e) {
		res.Match = true
	}
	return res
}
