package search

import (
	"cmp"
	"slices"
)

// MergeMatchSpans sorts spans by start and coalesces every pair that overlaps
// or touches. The input slice is not modified.
func MergeMatchSpans(spans []MatchSpan) []MatchSpan {
	if len(spans) == 0 {
		return nil
	}
	sorted := make([]MatchSpan, 0, len(spans))
	for _, sp := range spans {
		if sp.End > sp.Start {
			sorted = append(sorted, sp)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	slices.SortFunc(sorted, func(a, b MatchSpan) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})

	merged := make([]MatchSpan, 0, len(sorted))
	current := sorted[0]
	for i := 1; i < len(sorted); i++ {
		next := sorted[i]
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}

// BuildSegments partitions text into plain and highlighted segments. spans
// must already be merged; offsets outside the text are clipped. Joining the
// returned segments always reproduces text.
func BuildSegments(text string, spans []MatchSpan) []Segment {
	if len(spans) == 0 {
		return []Segment{{Text: text}}
	}
	runes := []rune(text)
	segments := make([]Segment, 0, len(spans)*2+1)
	cursor := 0
	for _, sp := range spans {
		start := clampInt(sp.Start, cursor, len(runes))
		end := clampInt(sp.End, start, len(runes))
		if start > cursor {
			segments = append(segments, Segment{Text: string(runes[cursor:start])})
		}
		if end > start {
			segments = append(segments, Segment{Text: string(runes[start:end]), Highlighted: true})
		}
		cursor = end
	}
	if cursor < len(runes) {
		segments = append(segments, Segment{Text: string(runes[cursor:])})
	}
	if len(segments) == 0 {
		return []Segment{{Text: text}}
	}
	return segments
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
