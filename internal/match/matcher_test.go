package match

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cat", "cat"},
		{"  hello  ", "hello"},
		{"don't!", "dont"},
		{"The cat.", "the cat"},
		{"", ""},
		{"?!.,", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestScore_ExactMatch(t *testing.T) {
	for _, s := range []string{"cat", "elephant", "Straße", "two words"} {
		if got := Score(s, s); got != 1.0 {
			t.Errorf("Score(%q, %q) = %v; want 1.0", s, s, got)
		}
	}

	// Normalization differences still score 1.0.
	if got := Score("Cat", " cat! "); got != 1.0 {
		t.Errorf("Score normalized variants = %v; want 1.0", got)
	}
}

func TestScore_BothEmpty(t *testing.T) {
	// Absence of input is never a correct answer.
	if got := Score("", ""); got != 0.0 {
		t.Errorf("Score(\"\", \"\") = %v; want 0.0", got)
	}
	if got := Score("?!", "..."); got != 0.0 {
		t.Errorf("Score of punctuation-only strings = %v; want 0.0", got)
	}
}

func TestScore_SingleSubstitution(t *testing.T) {
	got := Score("cat", "cot")
	if got <= 0 || got >= 1 {
		t.Fatalf("Score(cat, cot) = %v; want strictly between 0 and 1", got)
	}
	if math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("Score(cat, cot) = %v; want 2/3", got)
	}
}

func TestScore_FlooredAtZero(t *testing.T) {
	if got := Score("a", "xyz"); got < 0 {
		t.Errorf("Score = %v; want >= 0", got)
	}
}

func TestScore_Range(t *testing.T) {
	pairs := [][2]string{
		{"cat", ""}, {"", "cat"}, {"dog", "cat"}, {"reading", "reeding"},
		{"elephant", "elefant"}, {"a", "aaaaaaaaaa"},
	}
	for _, p := range pairs {
		got := Score(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Score(%q, %q) = %v; out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestIsMatch(t *testing.T) {
	m := NewMatcher(0)
	if m.Threshold != DefaultThreshold {
		t.Fatalf("default threshold = %v; want %v", m.Threshold, DefaultThreshold)
	}

	tests := []struct {
		expected string
		actual   string
		want     bool
	}{
		{"cat", "cat", true},
		{"reading", "reeding", true}, // one substitution on a long word
		{"cat", "dog", false},
		{"cat", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		if got := m.IsMatch(tt.expected, tt.actual); got != tt.want {
			t.Errorf("IsMatch(%q, %q) = %v; want %v", tt.expected, tt.actual, got, tt.want)
		}
	}
}

func TestMatchTranscription_Containment(t *testing.T) {
	m := NewMatcher(0.7)

	// Recognizer echo around the expected word still matches, but the
	// confidence reports the raw similarity, not 1.0.
	res := m.MatchTranscription("cat", "the word is cat")
	if !res.Match {
		t.Error("containment should match")
	}
	if res.Confidence >= 0.7 {
		t.Errorf("Confidence = %v; want the raw (low) similarity", res.Confidence)
	}
}

func TestMatchTranscription_SimilarityStillApplies(t *testing.T) {
	m := NewMatcher(0.7)

	res := m.MatchTranscription("reading", "reeding")
	if !res.Match {
		t.Error("near-miss transcription should match via similarity")
	}
	if res.Confidence <= 0.7 {
		t.Errorf("Confidence = %v; want > 0.7", res.Confidence)
	}
}

func TestMatchTranscription_NoMatch(t *testing.T) {
	m := NewMatcher(0.7)

	res := m.MatchTranscription("elephant", "banana")
	if res.Match {
		t.Error("unrelated transcription should not match")
	}
	if res.Confidence < 0 || res.Confidence > 1 {
		t.Errorf("Confidence = %v; out of [0,1]", res.Confidence)
	}
}

func TestMatchTranscription_EmptyExpected(t *testing.T) {
	m := NewMatcher(0.7)

	// An empty expected word must not match everything via containment.
	res := m.MatchTranscription("", "anything at all")
	if res.Match {
		t.Error("empty expected word should never match")
	}
}
