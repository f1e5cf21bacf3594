package search

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func spanText(text string, sp MatchSpan) string {
	return string([]rune(text)[sp.Start:sp.End])
}

func TestFindMatchesExact(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query Query
		want  []MatchSpan
	}{
		{
			name:  "case insensitive",
			text:  "Go go GO",
			query: ExactQuery("go", false, false),
			want:  []MatchSpan{{0, 2}, {3, 5}, {6, 8}},
		},
		{
			name:  "case sensitive",
			text:  "Go go GO",
			query: ExactQuery("go", true, false),
			want:  []MatchSpan{{3, 5}},
		},
		{
			name:  "no overlapping self matches",
			text:  "aaaa",
			query: ExactQuery("aa", true, false),
			want:  []MatchSpan{{0, 2}, {2, 4}},
		},
		{
			name:  "whole word skips partial words",
			text:  "cat concat cat.",
			query: ExactQuery("cat", true, true),
			want:  []MatchSpan{{0, 3}, {11, 14}},
		},
		{
			name:  "empty query",
			text:  "anything",
			query: ExactQuery("", false, false),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindMatches(tt.text, tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FindMatches(%q, %q) = %v, want %v", tt.text, tt.query.Text, got, tt.want)
			}
		})
	}
}

func TestExactSpansEqualQuery(t *testing.T) {
	texts := []string{
		"The cat sat on the CAT mat, catalogue of cats",
		"ŁÓDŹ łódź Łódź",
		"",
	}
	queries := []string{"cat", "łódź", "the", "a"}
	for _, text := range texts {
		for _, q := range queries {
			for _, cs := range []bool{true, false} {
				for _, sp := range FindMatches(text, ExactQuery(q, cs, false)) {
					got := spanText(text, sp)
					if cs && got != q {
						t.Fatalf("span %v of %q = %q, want %q", sp, text, got, q)
					}
					if !cs && strings.ToLower(got) != strings.ToLower(q) {
						t.Fatalf("span %v of %q = %q, want fold of %q", sp, text, got, q)
					}
				}
			}
		}
	}
}

func TestFindMatchesDistanceTransposition(t *testing.T) {
	text := "the quick brown fox"
	got := FindMatches(text, DistanceQuery("quikc", false, 2))
	want := []MatchSpan{{4, 9}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindMatches distance = %v, want %v", got, want)
	}
	if spanText(text, got[0]) != "quick" {
		t.Fatalf("expected quick, got %q", spanText(text, got[0]))
	}
}

func TestDistanceZeroMatchesExact(t *testing.T) {
	texts := []string{
		"banana bandana BANANA",
		"aaaaaa",
		"no hits here",
		"Mixed CASE mixed case",
	}
	queries := []string{"ana", "aa", "xyz", "mixed", "case"}
	for _, text := range texts {
		for _, q := range queries {
			for _, cs := range []bool{true, false} {
				exact := FindMatches(text, ExactQuery(q, cs, false))
				dist := FindMatches(text, DistanceQuery(q, cs, 0))
				if !reflect.DeepEqual(exact, dist) {
					t.Fatalf("text %q query %q cs=%v: exact %v distance %v", text, q, cs, exact, dist)
				}
			}
		}
	}
}

func TestDistanceNegativeThresholdActsAsZero(t *testing.T) {
	got := FindMatches("abc abd", DistanceQuery("abc", true, -3))
	if !reflect.DeepEqual(got, []MatchSpan{{0, 3}}) {
		t.Fatalf("unexpected spans %v", got)
	}
}

func TestDistanceQueryLongerThanText(t *testing.T) {
	if got := FindMatches("ab", DistanceQuery("abcdef", false, 10)); got != nil {
		t.Fatalf("expected no spans, got %v", got)
	}
}

func TestRoundTripAllModes(t *testing.T) {
	texts := []string{
		"",
		"single line",
		"first line\nsecond Line\n\nfourth line with quick fox",
		"ünïcödé\ttabs\nand more ünïcödé",
	}
	queries := []Query{
		ExactQuery("line", false, false),
		ExactQuery("line", true, true),
		DistanceQuery("lime", false, 1),
		ScoredQuery("qck fx", false, 0.8),
		ScoredQuery("unicode", false, 1.0),
		ExactQuery("", false, false),
	}
	for _, text := range texts {
		for _, q := range queries {
			segs := BuildSegments(text, MergeMatchSpans(FindMatches(text, q)))
			if got := joinSegments(segs); got != text {
				t.Fatalf("round trip text %q query %+v: got %q", text, q, got)
			}
			var b strings.Builder
			for i, ls := range HighlightLines(text, q) {
				if i > 0 {
					b.WriteByte('\n')
				}
				b.WriteString(joinSegments(ls.Segments))
			}
			if b.String() != text {
				t.Fatalf("line round trip text %q query %+v: got %q", text, q, b.String())
			}
		}
	}
}

func TestFindLineMatchesGroupsExactSpans(t *testing.T) {
	text := "alpha beta\ngamma\nbeta beta"
	got := FindLineMatches(text, ExactQuery("beta", true, false))
	want := []LineMatch{
		{Line: 1, Spans: []MatchSpan{{6, 10}}},
		{Line: 3, Spans: []MatchSpan{{0, 4}, {5, 9}}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindLineMatches = %#v, want %#v", got, want)
	}
}

func TestFindMatchesScoredTranslatesToGlobalOffsets(t *testing.T) {
	text := "nothing here\nthe quick brown fox"
	spans := MergeMatchSpans(FindMatches(text, ScoredQuery("quick", false, 0.1)))
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %v", spans)
	}
	if got := spanText(text, spans[0]); got != "quick" {
		t.Fatalf("expected quick, got %q", got)
	}
}

func TestFindPageMatches(t *testing.T) {
	pages := []string{"intro page", "the fox jumps", "nothing", "fox again, fox"}
	got, err := FindPageMatches(context.Background(), pages, ExactQuery("fox", false, true), 2)
	if err != nil {
		t.Fatalf("FindPageMatches: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 pages with matches, got %d", len(got))
	}
	if got[0].Page != 2 || got[1].Page != 4 {
		t.Fatalf("unexpected pages %d, %d", got[0].Page, got[1].Page)
	}
	if len(got[1].Spans) != 2 {
		t.Fatalf("expected two spans on page 4, got %v", got[1].Spans)
	}
}

func TestFindPageMatchesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FindPageMatches(ctx, []string{"a", "b"}, ExactQuery("a", false, false), 1)
	if err == nil {
		t.Fatalf("expected context error")
	}
}

func TestParseMatchMode(t *testing.T) {
	for _, mode := range []MatchMode{ModeExact, ModeDistance, ModeScored} {
		got, err := ParseMatchMode(mode.String())
		if err != nil || got != mode {
			t.Fatalf("ParseMatchMode(%q) = %v, %v", mode.String(), got, err)
		}
	}
	if _, err := ParseMatchMode("regex"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if ModeScored.Next() != ModeExact {
		t.Fatalf("expected mode cycle to wrap")
	}
}

func TestHighlightLinesDropsCarriageReturn(t *testing.T) {
	text := "alpha\r\nbeta fox\r\n"
	want := []LineSegments{
		{Line: 1, Segments: []Segment{{Text: "alpha"}}},
		{Line: 2, Matched: true, Segments: []Segment{{Text: "beta "}, {Text: "fox", Highlighted: true}}},
		{Line: 3, Segments: []Segment{{Text: ""}}},
	}
	tests := []struct {
		name string
		q    Query
	}{
		{"exact", ExactQuery("fox", false, false)},
		{"distance", DistanceQuery("fox", false, 0)},
		{"scored", ScoredQuery("fox", false, 0.4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HighlightLines(text, tt.q)
			for i := range got {
				got[i].Score = 0
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("HighlightLines = %#v, want %#v", got, want)
			}
			spans := MergeMatchSpans(FindMatches(text, tt.q))
			if !reflect.DeepEqual(spans, []MatchSpan{{12, 15}}) {
				t.Fatalf("FindMatches = %v, want [{12 15}]", spans)
			}
		})
	}
}
