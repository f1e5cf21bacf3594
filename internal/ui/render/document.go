package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/docmark/internal/search"
	statepkg "github.com/kk-code-lab/docmark/internal/state"
	textutil "github.com/kk-code-lab/docmark/internal/textutil"
)

// contentTop is the first screen row of the document area.
const contentTop = 1

// drawDocument draws the highlighted lines of the active document, wrapped to
// the screen width, starting at the first row of the current page.
func (r *Renderer) drawDocument(state *statepkg.AppState, w, h int) {
	rows := h - statepkg.ChromeRows
	if rows <= 0 || w <= 0 {
		return
	}

	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	view := state.ActiveView()
	if !view.Loaded {
		r.drawPlaceholder(state, w, rows, baseStyle.Foreground(r.theme.DimFg))
		return
	}

	matchStyle := baseStyle.Background(r.theme.MatchBg).Foreground(r.theme.MatchFg)
	tabWidth := state.Defaults.TabWidth
	skip := state.FirstVisibleRow()

	row, y := 0, 0
	for _, line := range state.Lines {
		runes, marks := lineCells(line.Segments)
		offsets := textutil.WrapOffsets(runes, w, tabWidth)
		if row+len(offsets) <= skip {
			row += len(offsets)
			continue
		}
		for i, start := range offsets {
			if row < skip {
				row++
				continue
			}
			if y >= rows {
				return
			}
			end := len(runes)
			if i+1 < len(offsets) {
				end = offsets[i+1]
			}
			r.drawDocumentRow(contentTop+y, w, runes[start:end], marks[start:end], tabWidth, baseStyle, matchStyle)
			row++
			y++
		}
	}
}

func (r *Renderer) drawPlaceholder(state *statepkg.AppState, w, rows int, style tcell.Style) {
	kind := state.ActiveKind()
	msg := "Tab: choose a document kind"
	switch {
	case kind == statepkg.KindNone:
	case state.Loading[kind] != "":
		msg = "loading " + textutil.SanitizeTerminalText(state.Loading[kind]) + "…"
	default:
		msg = "no " + kind.String() + " document loaded"
	}
	y := contentTop + rows/2
	msg = r.truncateTextToWidth(msg, w)
	x := max(0, (w-r.measureTextWidth(msg))/2)
	r.drawTextLine(x, y, w-x, msg, style)
}

// lineCells flattens segments into runes plus a per-rune highlight mask.
func lineCells(segments []search.Segment) ([]rune, []bool) {
	var runes []rune
	var marks []bool
	for _, seg := range segments {
		for _, ru := range seg.Text {
			runes = append(runes, ru)
			marks = append(marks, seg.Highlighted)
		}
	}
	return runes, marks
}

// drawDocumentRow draws one wrapped row. Column advances follow
// textutil.CellWidth so drawing agrees with the wrap and page measurement.
func (r *Renderer) drawDocumentRow(y, w int, runes []rune, marks []bool, tabWidth int, baseStyle, matchStyle tcell.Style) {
	column := 0
	for i, ru := range runes {
		if column >= w {
			return
		}
		style := baseStyle
		if marks[i] {
			style = matchStyle
		}
		advance := textutil.CellWidth(ru, column, tabWidth)

		display := textutil.SanitizeRune(ru)
		if display == string(ru) && advance == max(1, r.cachedRuneWidth(ru)) {
			r.drawStyledRune(column, y, w, ru, style)
		} else {
			if display != string(ru) && ru != '\t' {
				style = style.Foreground(r.theme.DimFg)
			}
			x := r.drawTextLine(column, y, min(advance, w-column), display, style)
			for ; x < column+advance && x < w; x++ {
				r.screen.SetContent(x, y, ' ', nil, style)
			}
		}
		column += advance
	}
}
