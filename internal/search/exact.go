package search

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// foldRunes lower-cases each rune in place of a copy. Folding is rune for rune
// so offsets computed on the folded slice stay valid for the original text.
func foldRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func prepareRunes(s string, caseSensitive bool) []rune {
	rs := []rune(s)
	if caseSensitive {
		return rs
	}
	return foldRunes(rs)
}

func equalAt(haystack []rune, start int, needle []rune) bool {
	if start+len(needle) > len(haystack) {
		return false
	}
	for j, r := range needle {
		if haystack[start+j] != r {
			return false
		}
	}
	return true
}

// indexRunesFrom returns the first index >= from where needle occurs, or -1.
func indexRunesFrom(haystack, needle []rune, from int) int {
	if len(needle) == 0 {
		return -1
	}
	first := needle[0]
	last := len(haystack) - len(needle)
	for i := from; i <= last; i++ {
		if haystack[i] != first {
			continue
		}
		if equalAt(haystack, i, needle) {
			return i
		}
	}
	return -1
}

// exactSpans scans left to right and resumes after each accepted occurrence,
// so occurrences never overlap.
func exactSpans(text string, q Query) []MatchSpan {
	needle := prepareRunes(q.Text, q.CaseSensitive)
	if len(needle) == 0 {
		return nil
	}
	haystack := prepareRunes(text, q.CaseSensitive)

	var bounds map[int]struct{}
	if q.WholeWord {
		bounds = wordBoundaries(text)
	}

	var spans []MatchSpan
	for from := 0; ; {
		idx := indexRunesFrom(haystack, needle, from)
		if idx < 0 {
			break
		}
		end := idx + len(needle)
		if bounds != nil && !isWholeWord(bounds, idx, end) {
			from = idx + 1
			continue
		}
		spans = append(spans, MatchSpan{Start: idx, End: end})
		from = end
	}
	return spans
}

// wordBoundaries returns the rune offsets at which a Unicode word boundary
// occurs, including 0 and the text length.
func wordBoundaries(text string) map[int]struct{} {
	bounds := map[int]struct{}{0: {}}
	offset := 0
	state := -1
	rest := text
	var word string
	for len(rest) > 0 {
		word, rest, state = uniseg.FirstWordInString(rest, state)
		offset += len([]rune(word))
		bounds[offset] = struct{}{}
	}
	return bounds
}

func isWholeWord(bounds map[int]struct{}, start, end int) bool {
	_, okStart := bounds[start]
	_, okEnd := bounds[end]
	return okStart && okEnd
}
