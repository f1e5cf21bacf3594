package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/docmark/internal/state"
	textutil "github.com/kk-code-lab/docmark/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	wholeWordDesc := "Match whole words (exact mode)"
	if state != nil && state.Search.WholeWord {
		wholeWordDesc = "Match inside words (exact mode)"
	}

	sections := []helpOverlaySection{
		{
			title: "Documents",
			entries: []helpOverlayEntry{
				{keys: "Tab", desc: "Next document kind"},
				{keys: "n / p", desc: "Next / previous page"},
				{keys: "g / G", desc: "First / last page"},
			},
		},
		{
			title: "Rectangle",
			entries: []helpOverlayEntry{
				{keys: "←↑↓→", desc: "Move by 10 units"},
				{keys: "[ ] { }", desc: "Narrow / widen, shorten / heighten"},
				{keys: "+ / -", desc: "Zoom in / out"},
				{keys: "0", desc: "Reset zoom"},
			},
		},
		{
			title: "Search",
			entries: []helpOverlayEntry{
				{keys: "/", desc: "Edit query"},
				{keys: "m", desc: "Cycle exact / distance / scored"},
				{keys: "c", desc: "Toggle case sensitivity"},
				{keys: "w", desc: wholeWordDesc},
				{keys: "t / T", desc: "Lower / raise distance threshold"},
				{keys: "s / S", desc: "Lower / raise score threshold"},
				{keys: "r", desc: "Reset search"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "R", desc: "Reset everything"},
				{keys: "q", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fillRow(0, y, w, baseStyle)
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	lines := buildHelpOverlayLines(state)
	row := 2
	maxRow := h - 1
	for _, line := range lines {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	footer := "? toggle · Esc/q close"
	if h > 0 {
		r.drawTextLine(0, h-1, w, r.truncateTextToWidth(footer, w), headerStyle)
	}
}
