package search

import (
	"fmt"
	"strings"
)

// MatchSpan represents the half-open [Start, End) range of a match in rune indexes.
type MatchSpan struct {
	Start int
	End   int
}

// Len reports the number of runes covered by the span.
func (s MatchSpan) Len() int {
	if s.End <= s.Start {
		return 0
	}
	return s.End - s.Start
}

// MatchMode selects the comparison policy used by FindMatches.
type MatchMode int

const (
	// ModeExact finds literal, non-overlapping occurrences.
	ModeExact MatchMode = iota
	// ModeDistance slides a query-sized window and accepts windows within an edit distance.
	ModeDistance
	// ModeScored scores every line and keeps the ones at or under a score threshold.
	ModeScored
)

var matchModeNames = [...]string{
	ModeExact:    "exact",
	ModeDistance: "distance",
	ModeScored:   "scored",
}

func (m MatchMode) String() string {
	if m < 0 || int(m) >= len(matchModeNames) {
		return fmt.Sprintf("MatchMode(%d)", int(m))
	}
	return matchModeNames[m]
}

// Next cycles through the available modes.
func (m MatchMode) Next() MatchMode {
	return MatchMode((int(m) + 1) % len(matchModeNames))
}

// ParseMatchMode accepts the names produced by MatchMode.String.
func ParseMatchMode(s string) (MatchMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, candidate := range matchModeNames {
		if candidate == name {
			return MatchMode(i), nil
		}
	}
	return ModeExact, fmt.Errorf("unknown match mode %q", s)
}

// Query is a search request. Mode decides which of the payload fields apply:
// WholeWord for ModeExact, MaxDistance for ModeDistance, MaxScore for ModeScored.
// CaseSensitive applies to every mode.
type Query struct {
	Text          string
	Mode          MatchMode
	CaseSensitive bool
	WholeWord     bool
	MaxDistance   int
	MaxScore      float64
}

// ExactQuery builds a literal query.
func ExactQuery(text string, caseSensitive, wholeWord bool) Query {
	return Query{Text: text, Mode: ModeExact, CaseSensitive: caseSensitive, WholeWord: wholeWord}
}

// DistanceQuery builds a fixed-distance fuzzy query.
func DistanceQuery(text string, caseSensitive bool, maxDistance int) Query {
	return Query{Text: text, Mode: ModeDistance, CaseSensitive: caseSensitive, MaxDistance: maxDistance}
}

// ScoredQuery builds a scored line query.
func ScoredQuery(text string, caseSensitive bool, maxScore float64) Query {
	return Query{Text: text, Mode: ModeScored, CaseSensitive: caseSensitive, MaxScore: maxScore}
}

// Empty reports whether the query can never produce a match.
func (q Query) Empty() bool {
	return q.Text == ""
}

// LineMatch is a scored hit on one line. Line is 1-based and Spans index
// into that line only.
type LineMatch struct {
	Line  int
	Score float64
	Spans []MatchSpan
}

// Segment is a chunk of the original text, either plain or highlighted.
type Segment struct {
	Text        string
	Highlighted bool
}
