package search

import (
	"math"
	"sync"
	"unicode"
)

// FuzzyMatcher scores how well a pattern aligns with a line of text.
// Algorithm: semi-global alignment, similar in spirit to fzf/sublime text.
// The pattern must be consumed in order, text before and after the aligned
// region is free, and the raw score is normalised by the best score the
// pattern could reach on its own. The result is therefore independent of
// where in the line the match lands and of how long the line is.
// Scoring:
//   - Matched character: +1
//   - Consecutive with the previous match: +1
//   - First character of a run at a word boundary: +0.5
//   - Gap in the text inside the alignment: -0.25 per rune
//   - Pattern character left unmatched: -1
type FuzzyMatcher struct {
	charBonus         float64
	consecutiveBonus  float64
	wordBoundaryBonus float64
	gapPenalty        float64
	skipPenalty       float64
}

// NewFuzzyMatcher creates a new fuzzy matcher with default settings
func NewFuzzyMatcher() *FuzzyMatcher {
	return &FuzzyMatcher{
		charBonus:         1.0,
		consecutiveBonus:  1.0,
		wordBoundaryBonus: 0.5,
		gapPenalty:        0.25,
		skipPenalty:       1.0,
	}
}

var defaultFuzzyMatcher = NewFuzzyMatcher()

// Score compares pattern with text. score is 0.0 for a perfect match and 1.0
// when nothing aligns; spans are the matched rune runs inside text. matched is
// false when not a single pattern rune could be aligned.
func (fm *FuzzyMatcher) Score(pattern, text string, caseSensitive bool) (score float64, spans []MatchSpan, matched bool) {
	if pattern == "" {
		return 1.0, nil, false
	}
	original := []rune(text)
	p := prepareRunes(pattern, caseSensitive)
	t := original
	if !caseSensitive {
		t = foldRunes(original)
	}
	if len(t) == 0 {
		return 1.0, nil, false
	}
	return fm.align(p, t, original)
}

func (fm *FuzzyMatcher) maxScore(n int) float64 {
	return float64(n)*fm.charBonus + float64(n-1)*fm.consecutiveBonus + fm.wordBoundaryBonus
}

const (
	fromMatch uint8 = iota
	fromGap
)

const (
	stepSkipPattern uint8 = iota
	stepSkipText
)

type alignScratch struct {
	match []float64
	gap   []float64
	srcM  []uint8
	srcG  []uint8
}

var alignScratchPool = sync.Pool{
	New: func() any {
		return &alignScratch{}
	},
}

func acquireAlignScratch(cells int) *alignScratch {
	s := alignScratchPool.Get().(*alignScratch)
	if cap(s.match) < cells {
		s.match = make([]float64, cells)
		s.gap = make([]float64, cells)
		s.srcM = make([]uint8, cells)
		s.srcG = make([]uint8, cells)
	}
	s.match = s.match[:cells]
	s.gap = s.gap[:cells]
	s.srcM = s.srcM[:cells]
	s.srcG = s.srcG[:cells]
	return s
}

func releaseAlignScratch(s *alignScratch) {
	alignScratchPool.Put(s)
}

func (fm *FuzzyMatcher) align(p, t, original []rune) (float64, []MatchSpan, bool) {
	n, m := len(p), len(t)
	cols := m + 1
	s := acquireAlignScratch((n + 1) * cols)
	defer releaseAlignScratch(s)

	negInf := math.Inf(-1)
	at := func(i, j int) int { return i*cols + j }
	best := func(i, j int) float64 {
		return math.Max(s.match[at(i, j)], s.gap[at(i, j)])
	}

	for j := 0; j <= m; j++ {
		s.match[at(0, j)] = negInf
		s.gap[at(0, j)] = 0
	}
	for i := 1; i <= n; i++ {
		s.match[at(i, 0)] = negInf
		s.gap[at(i, 0)] = best(i-1, 0) - fm.skipPenalty
		s.srcG[at(i, 0)] = stepSkipPattern
		for j := 1; j <= m; j++ {
			idx := at(i, j)
			if p[i-1] == t[j-1] {
				viaMatch := s.match[at(i-1, j-1)] + fm.charBonus + fm.consecutiveBonus
				viaGap := s.gap[at(i-1, j-1)] + fm.charBonus
				if isBoundaryAt(original, j-1) {
					viaGap += fm.wordBoundaryBonus
				}
				if viaMatch >= viaGap {
					s.match[idx], s.srcM[idx] = viaMatch, fromMatch
				} else {
					s.match[idx], s.srcM[idx] = viaGap, fromGap
				}
			} else {
				s.match[idx] = negInf
			}

			skipPattern := best(i-1, j) - fm.skipPenalty
			skipText := best(i, j-1) - fm.gapPenalty
			if skipPattern >= skipText {
				s.gap[idx], s.srcG[idx] = skipPattern, stepSkipPattern
			} else {
				s.gap[idx], s.srcG[idx] = skipText, stepSkipText
			}
		}
	}

	endCol := 0
	top := negInf
	for j := 1; j <= m; j++ {
		if v := best(n, j); v > top {
			top, endCol = v, j
		}
	}

	matchedIdx := make([]int, 0, n)
	i, j := n, endCol
	inMatch := s.match[at(i, j)] >= s.gap[at(i, j)]
	for i > 0 {
		idx := at(i, j)
		if inMatch {
			matchedIdx = append(matchedIdx, j-1)
			inMatch = s.srcM[idx] == fromMatch
			i--
			j--
			continue
		}
		if s.srcG[idx] == stepSkipPattern {
			i--
		} else {
			j--
		}
		if i > 0 {
			inMatch = s.match[at(i, j)] >= s.gap[at(i, j)]
		}
	}
	if len(matchedIdx) == 0 {
		return 1.0, nil, false
	}

	quality := top / fm.maxScore(n)
	score := 1 - math.Max(0, math.Min(1, quality))
	return score, runsToSpans(matchedIdx), true
}

// runsToSpans turns matched indexes collected in reverse order into spans.
func runsToSpans(reversed []int) []MatchSpan {
	spans := make([]MatchSpan, 0, len(reversed))
	for k := len(reversed) - 1; k >= 0; k-- {
		idx := reversed[k]
		if n := len(spans); n > 0 && spans[n-1].End == idx {
			spans[n-1].End = idx + 1
			continue
		}
		spans = append(spans, MatchSpan{Start: idx, End: idx + 1})
	}
	return spans
}

func isBoundaryAt(text []rune, idx int) bool {
	if idx <= 0 {
		return true
	}
	prev := text[idx-1]
	curr := text[idx]
	if !isLetterOrDigit(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(curr)
}

func isLetterOrDigit(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scoredLines scores each newline-delimited line and keeps those whose score
// does not exceed the query threshold.
func scoredLines(text string, q Query) []LineMatch {
	if q.Empty() || text == "" {
		return nil
	}
	threshold := math.Max(0, math.Min(1, q.MaxScore))
	var out []LineMatch
	for i, line := range splitLines(text) {
		if line == "" {
			continue
		}
		score, spans, ok := defaultFuzzyMatcher.Score(q.Text, line, q.CaseSensitive)
		if !ok || score > threshold {
			continue
		}
		out = append(out, LineMatch{Line: i + 1, Score: score, Spans: spans})
	}
	return out
}
