package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// FindMatches returns the raw, possibly overlapping spans of q in text.
// Spans always index the original text, whatever the case folding. Scored
// queries report their per-line spans translated to whole-text offsets.
func FindMatches(text string, q Query) []MatchSpan {
	if q.Empty() {
		return nil
	}
	switch q.Mode {
	case ModeDistance:
		return distanceSpans(text, q)
	case ModeScored:
		return globalLineSpans(text, scoredLines(text, q))
	default:
		return exactSpans(text, q)
	}
}

// FindLineMatches runs a scored query and returns one entry per accepted line.
// Other modes are grouped by line too, with a score of zero.
func FindLineMatches(text string, q Query) []LineMatch {
	if q.Empty() {
		return nil
	}
	if q.Mode == ModeScored {
		return scoredLines(text, q)
	}
	return groupByLine(text, FindMatches(text, q))
}

// LineSegments is the highlighted form of a single line.
type LineSegments struct {
	Line     int
	Score    float64
	Matched  bool
	Segments []Segment
}

// HighlightLines splits text into lines and highlights each line with its own
// merged spans. Every line of text is present in the result, matched or not.
// A carriage return ending a line is not part of its segments.
func HighlightLines(text string, q Query) []LineSegments {
	lines := splitLines(text)
	out := make([]LineSegments, len(lines))
	for i, line := range lines {
		out[i] = LineSegments{Line: i + 1, Segments: []Segment{{Text: line}}}
	}
	for _, lm := range FindLineMatches(text, q) {
		idx := lm.Line - 1
		if idx < 0 || idx >= len(out) {
			continue
		}
		out[idx].Score = lm.Score
		out[idx].Matched = true
		out[idx].Segments = BuildSegments(lines[idx], MergeMatchSpans(lm.Spans))
	}
	return out
}

// splitLines splits text on newlines and drops the carriage return of CRLF
// line endings. The CR is always the last rune of its line, so offsets into
// the remaining text are unchanged.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func lineStartOffsets(text string) []int {
	starts := []int{0}
	offset := 0
	for _, r := range text {
		offset++
		if r == '\n' {
			starts = append(starts, offset)
		}
	}
	return starts
}

func globalLineSpans(text string, lines []LineMatch) []MatchSpan {
	if len(lines) == 0 {
		return nil
	}
	starts := lineStartOffsets(text)
	var spans []MatchSpan
	for _, lm := range lines {
		base := starts[lm.Line-1]
		for _, sp := range lm.Spans {
			spans = append(spans, MatchSpan{Start: base + sp.Start, End: base + sp.End})
		}
	}
	return spans
}

// groupByLine splits whole-text spans on line boundaries. A span crossing a
// newline is cut into one piece per line.
func groupByLine(text string, spans []MatchSpan) []LineMatch {
	if len(spans) == 0 {
		return nil
	}
	starts := lineStartOffsets(text)
	total := utf8.RuneCountInString(text)
	lineEnd := func(line int) int {
		if line+1 < len(starts) {
			return starts[line+1] - 1
		}
		return total
	}

	var out []LineMatch
	line := 0
	for _, sp := range MergeMatchSpans(spans) {
		start := sp.Start
		for start < sp.End {
			for line+1 < len(starts) && starts[line+1] <= start {
				line++
			}
			end := min(sp.End, lineEnd(line))
			if end > start {
				local := MatchSpan{Start: start - starts[line], End: end - starts[line]}
				if n := len(out); n > 0 && out[n-1].Line == line+1 {
					out[n-1].Spans = append(out[n-1].Spans, local)
				} else {
					out = append(out, LineMatch{Line: line + 1, Spans: []MatchSpan{local}})
				}
			}
			start = max(end+1, start+1)
		}
	}
	return out
}

// PageMatches holds the matches found on one page. Page is 1-based.
type PageMatches struct {
	Page  int
	Spans []MatchSpan
	Lines []LineMatch
}

// FindPageMatches searches every page concurrently, using at most workers
// goroutines, and returns the pages with at least one match in page order.
func FindPageMatches(ctx context.Context, pages []string, q Query, workers int) ([]PageMatches, error) {
	if q.Empty() || len(pages) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = 1
	}

	results := make([]PageMatches, len(pages))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, page := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = PageMatches{
				Page:  i + 1,
				Spans: MergeMatchSpans(FindMatches(page, q)),
				Lines: FindLineMatches(page, q),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := results[:0]
	for _, pm := range results {
		if len(pm.Spans) > 0 {
			out = append(out, pm)
		}
	}
	return out, nil
}
