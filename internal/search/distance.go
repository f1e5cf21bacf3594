package search

import "sync"

// editScratch holds the three DP rows needed for optimal string alignment
// distance (Levenshtein plus adjacent transposition).
type editScratch struct {
	prev2 []int
	prev  []int
	curr  []int
}

var editScratchPool = sync.Pool{
	New: func() any {
		return &editScratch{}
	},
}

func acquireEditScratch(cols int) *editScratch {
	s := editScratchPool.Get().(*editScratch)
	if cap(s.prev2) < cols {
		s.prev2 = make([]int, cols)
		s.prev = make([]int, cols)
		s.curr = make([]int, cols)
	}
	s.prev2 = s.prev2[:cols]
	s.prev = s.prev[:cols]
	s.curr = s.curr[:cols]
	return s
}

func releaseEditScratch(s *editScratch) {
	editScratchPool.Put(s)
}

// EditDistance returns the number of single-rune insertions, deletions,
// substitutions or adjacent transpositions needed to turn a into b.
func EditDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	cols := len(b) + 1
	s := acquireEditScratch(cols)
	defer releaseEditScratch(s)

	for j := 0; j < cols; j++ {
		s.prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		s.curr[0] = i
		for j := 1; j < cols; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			best := s.prev[j] + 1
			if v := s.curr[j-1] + 1; v < best {
				best = v
			}
			if v := s.prev[j-1] + cost; v < best {
				best = v
			}
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if v := s.prev2[j-2] + 1; v < best {
					best = v
				}
			}
			s.curr[j] = best
		}
		s.prev2, s.prev, s.curr = s.prev, s.curr, s.prev2
	}
	return s.prev[cols-1]
}

// distanceSpans slides a window the size of the query across the text. When a
// window is accepted, the windows that would overlap it are checked and the
// closest one wins (earliest on ties); the scan then resumes past that window.
func distanceSpans(text string, q Query) []MatchSpan {
	needle := prepareRunes(q.Text, q.CaseSensitive)
	n := len(needle)
	if n == 0 {
		return nil
	}
	haystack := prepareRunes(text, q.CaseSensitive)
	threshold := q.MaxDistance
	if threshold < 0 {
		threshold = 0
	}

	var spans []MatchSpan
	last := len(haystack) - n
	for i := 0; i <= last; {
		dist := EditDistance(haystack[i:i+n], needle)
		if dist > threshold {
			i++
			continue
		}
		best, bestDist := i, dist
		for j := i + 1; j < i+n && j <= last && bestDist > 0; j++ {
			if d := EditDistance(haystack[j:j+n], needle); d < bestDist {
				best, bestDist = j, d
			}
		}
		spans = append(spans, MatchSpan{Start: best, End: best + n})
		i = best + n
	}
	return spans
}
