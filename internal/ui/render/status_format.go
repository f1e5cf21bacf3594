package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kk-code-lab/docmark/internal/search"
	statepkg "github.com/kk-code-lab/docmark/internal/state"
	textutil "github.com/kk-code-lab/docmark/internal/textutil"
)

// formatSearchStatus summarises the search parameters and results.
func formatSearchStatus(state *statepkg.AppState) string {
	q := state.EffectiveQuery()
	parts := []string{formatMode(q)}

	if q.CaseSensitive {
		parts = append(parts, "Aa")
	} else {
		parts = append(parts, "aa")
	}
	if q.Mode == search.ModeExact && q.WholeWord {
		parts = append(parts, "word")
	}

	if !q.Empty() {
		parts = append(parts, formatMatchSummary(state.MatchCount, state.MatchedLines))
		if hits := formatPageHits(state.PageHits); hits != "" {
			parts = append(parts, hits)
		}
	}

	if textutil.HasFormattingRunes(state.DisplayText()) {
		parts = append(parts, "bidi")
	}
	if rect := formatRect(state); rect != "" {
		parts = append(parts, rect)
	}
	return " " + strings.Join(parts, " · ")
}

func formatMode(q search.Query) string {
	switch q.Mode {
	case search.ModeDistance:
		return fmt.Sprintf("%s ≤%d", q.Mode, q.MaxDistance)
	case search.ModeScored:
		return fmt.Sprintf("%s ≤%.2f", q.Mode, q.MaxScore)
	default:
		return q.Mode.String()
	}
}

func formatMatchSummary(matches, lines int) string {
	switch {
	case matches == 0:
		return "no matches"
	case matches == 1:
		return "1 match"
	case lines == 1:
		return fmt.Sprintf("%s matches on 1 line", formatCompactNumber(matches))
	default:
		return fmt.Sprintf("%s matches on %s lines", formatCompactNumber(matches), formatCompactNumber(lines))
	}
}

// formatPageHits lists the pages that contain a match, up to a handful.
func formatPageHits(hits []search.PageMatches) string {
	if len(hits) == 0 {
		return ""
	}
	const shown = 5
	pages := make([]string, 0, shown)
	for i, pm := range hits {
		if i == shown {
			pages = append(pages, "…")
			break
		}
		pages = append(pages, strconv.Itoa(pm.Page))
	}
	return "pages " + strings.Join(pages, ",")
}

func formatRect(state *statepkg.AppState) string {
	p := state.ActiveParams()
	if p == nil {
		return ""
	}
	rect := p.Rect
	return fmt.Sprintf("rect %s,%s %s×%s",
		trimFloat(rect.X), trimFloat(rect.Y), trimFloat(rect.Width), trimFloat(rect.Height))
}

// formatPageLabel renders "page n/m", or "page n/?" while pagination is unknown.
func formatPageLabel(state *statepkg.AppState) string {
	p := state.ActiveParams()
	if p == nil {
		return ""
	}
	total := "?"
	if count := state.PageCount(); count > 0 {
		total = strconv.Itoa(count)
	}
	return fmt.Sprintf("page %d/%s", p.Rect.PageNumber, total)
}

func formatScale(state *statepkg.AppState) string {
	p := state.ActiveParams()
	if p == nil {
		return ""
	}
	return fmt.Sprintf("×%.2f", p.Rect.Scale)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCompactNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000.0)
	case n >= 10_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000.0)
	default:
		return strconv.Itoa(n)
	}
}
