package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/docmark/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	switch {
	case state.QueryEditing:
		return []string{
			"type: query",
			"↵: apply",
			"Esc: cancel",
		}
	case state.ActiveKind() == statepkg.KindNone:
		return []string{
			"Tab: kind",
			"?: help",
			"q: quit",
		}
	}

	segments := []string{
		"Tab: kind",
		"n/p: page",
		"+/-: zoom",
		"←↑↓→: move",
		"/: search",
		"m: mode",
	}
	if state.Search.Text != "" {
		segments = append(segments, "r: clear")
	}
	return append(segments, "?: help", "q: quit")
}
