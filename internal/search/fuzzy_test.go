package search

import (
	"math"
	"testing"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"quick", "quikc", 1},
		{"flaw", "lawn", 2},
		{"żółw", "zolw", 3},
	}
	for _, tt := range tests {
		if got := EditDistance([]rune(tt.a), []rune(tt.b)); got != tt.want {
			t.Errorf("EditDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFuzzyScorePerfectMatch(t *testing.T) {
	fm := NewFuzzyMatcher()
	score, spans, ok := fm.Score("quick", "the quick brown fox", false)
	if !ok {
		t.Fatalf("expected match")
	}
	if score != 0 {
		t.Fatalf("expected perfect score 0, got %f", score)
	}
	if len(spans) != 1 || spans[0] != (MatchSpan{4, 9}) {
		t.Fatalf("unexpected spans %v", spans)
	}
}

func TestFuzzyScoreIgnoresLocationAndLength(t *testing.T) {
	fm := NewFuzzyMatcher()
	short, _, _ := fm.Score("brown", "brown", false)
	long, _, _ := fm.Score("brown", "a very long line that eventually mentions brown near the end of it", false)
	if math.Abs(short-long) > 1e-9 {
		t.Fatalf("expected equal scores, got %f and %f", short, long)
	}
}

func TestFuzzyScoreOrdering(t *testing.T) {
	fm := NewFuzzyMatcher()
	exact, _, _ := fm.Score("quick", "quick", false)
	typo, _, _ := fm.Score("quikc", "quick", false)
	sparse, _, _ := fm.Score("qck", "q u i c k", false)
	if !(exact < typo) {
		t.Fatalf("expected exact (%f) < typo (%f)", exact, typo)
	}
	if sparse <= exact {
		t.Fatalf("expected sparse (%f) > exact (%f)", sparse, exact)
	}
	for _, s := range []float64{exact, typo, sparse} {
		if s < 0 || s > 1 {
			t.Fatalf("score out of range: %f", s)
		}
	}
}

func TestFuzzyScoreSpansIndexOriginalText(t *testing.T) {
	fm := NewFuzzyMatcher()
	text := "Hello World"
	_, spans, ok := fm.Score("world", text, false)
	if !ok {
		t.Fatalf("expected match")
	}
	if got := spanText(text, spans[0]); got != "World" {
		t.Fatalf("expected original casing, got %q", got)
	}
	if score, _, _ := fm.Score("world", text, true); score == 0 {
		t.Fatalf("case sensitive match should not be perfect")
	}
}

func TestFuzzyScoreNoCommonRunes(t *testing.T) {
	fm := NewFuzzyMatcher()
	score, spans, ok := fm.Score("xyz", "abc", false)
	if ok || spans != nil || score != 1.0 {
		t.Fatalf("expected no match, got score=%f spans=%v ok=%v", score, spans, ok)
	}
}

func TestScoredLinesThreshold(t *testing.T) {
	text := "alpha\nquick brown\nqu ic k\nnothing"
	strict := scoredLines(text, ScoredQuery("quick", false, 0))
	if len(strict) != 1 || strict[0].Line != 2 {
		t.Fatalf("expected only line 2 at threshold 0, got %#v", strict)
	}
	loose := scoredLines(text, ScoredQuery("quick", false, 1))
	if len(loose) < 2 {
		t.Fatalf("expected more lines at threshold 1, got %#v", loose)
	}
	for _, lm := range loose {
		if lm.Score > 1 {
			t.Fatalf("score above threshold: %#v", lm)
		}
	}
}
