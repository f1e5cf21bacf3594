package render

import (
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/docmark/internal/state"
	textutil "github.com/kk-code-lab/docmark/internal/textutil"
	"github.com/mattn/go-runewidth"
)

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if state == nil || w <= 0 || h <= 0 {
		r.screen.Show()
		return
	}

	if state.ShowHelp {
		r.drawHelpOverlay(state, w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(state, w)
	r.drawDocument(state, w, h)
	r.drawOverlay(state, w, h)
	r.drawStatusLine(state, w, h)
	r.drawFooter(state, w, h)

	r.screen.Show()
}

// drawHeader renders the top bar: kind tabs, document name, page and scale.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	x := r.drawTextLine(0, 0, w, "docmark ", headerStyle.Bold(true))

	active := state.ActiveKind()
	for _, kind := range statepkg.Kinds {
		if x >= w {
			break
		}
		label := " " + kind.String()
		if _, loading := state.Loading[kind]; loading {
			label += "…"
		}
		label += " "

		style := headerStyle
		switch {
		case kind == active:
			style = style.Background(r.theme.TabActiveBg).Foreground(r.theme.TabActiveFg).Bold(true)
		case !state.Registry.Instance(kind).Loaded:
			style = style.Foreground(r.theme.TabEmptyFg)
		}
		x = r.drawTextLine(x, 0, w-x, label, style)
	}

	view := state.ActiveView()
	if view.Loaded && x < w {
		name := view.Handle
		if name == "" {
			name = "(text)"
		} else {
			name = filepath.Base(name)
		}
		info := " " + textutil.SanitizeTerminalText(name) + "  " + formatPageLabel(state) + "  " + formatScale(state)
		x = r.drawTextLine(x, 0, w-x, r.truncateTextToWidth(info, w-x), headerStyle)
	}

	r.fillRow(x, 0, w, headerStyle)
}

// drawFooter renders the key hints on the last row.
func (r *Renderer) drawFooter(state *statepkg.AppState, w, h int) {
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.DimFg)
	text := r.truncateTextToWidth(buildFooterHelpText(state), w)
	x := r.drawTextLine(0, h-1, w, text, style)
	r.fillRow(x, h-1, w, style)
}

// drawStatusLine renders the query prompt while editing, otherwise the
// search summary followed by the last error or status message.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	y := h - 2
	if y < 1 {
		return
	}
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	if state.QueryEditing {
		promptStyle := normalStyle.Foreground(r.theme.PromptFg).Bold(true)
		x := r.drawTextLine(0, y, w, "/", promptStyle)
		draft := textutil.SanitizeTerminalText(state.QueryDraft)
		// Keep the end of a long draft visible next to the cursor.
		for r.measureTextWidth(draft) > w-x-1 && draft != "" {
			_, size := utf8.DecodeRuneInString(draft)
			draft = draft[size:]
		}
		x = r.drawTextLine(x, y, w-x, draft, normalStyle)
		if x < w {
			r.screen.SetContent(x, y, '█', nil, promptStyle)
			x++
		}
		r.fillRow(x, y, w, normalStyle)
		return
	}

	x := r.drawTextLine(0, y, w, r.truncateTextToWidth(formatSearchStatus(state), w), normalStyle)

	message, style := "", normalStyle
	switch {
	case state.LastError != nil:
		message, style = state.LastError.Error(), normalStyle.Foreground(r.theme.ErrorFg)
	case state.StatusMessage != "":
		message, style = state.StatusMessage, normalStyle.Foreground(r.theme.DimFg)
	}
	if message != "" && x+3 < w {
		x = r.drawTextLine(x, y, w-x, " | ", normalStyle)
		message = r.truncateTextToWidth(textutil.SanitizeTerminalText(message), w-x)
		x = r.drawTextLine(x, y, w-x, message, style)
	}
	r.fillRow(x, y, w, normalStyle)
}

// HeaderTabAt returns the document kind whose header tab covers column x.
// It mirrors the layout drawn by drawHeader.
func HeaderTabAt(state *statepkg.AppState, x int) (statepkg.DocumentKind, bool) {
	if state == nil || x < 0 {
		return statepkg.KindNone, false
	}
	pos := runewidth.StringWidth("docmark ")
	for _, kind := range statepkg.Kinds {
		width := runewidth.StringWidth(" " + kind.String() + " ")
		if _, loading := state.Loading[kind]; loading {
			width += runewidth.RuneWidth('…')
		}
		if x >= pos && x < pos+width {
			return kind, true
		}
		pos += width
	}
	return statepkg.KindNone, false
}
