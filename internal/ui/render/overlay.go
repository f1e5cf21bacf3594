package render

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/docmark/internal/state"
	"github.com/lucasb-eyer/go-colorful"
)

// drawOverlay frames the highlight rectangle over the document. Border cells
// get box-drawing runes in the border colour; interior cells keep their text
// and get the fill blended onto the theme's overlay base.
func (r *Renderer) drawOverlay(state *statepkg.AppState, w, h int) {
	ox, oy, ow, oh, ok := state.OverlayCells()
	rows := h - statepkg.ChromeRows
	if !ok || rows <= 0 {
		return
	}

	style := state.OverlayStyle
	border := tcellColor(style.Border)
	fill := tcellColor(blendFill(toColorful(r.theme.OverlayBase), style.Fill, style.FillAlpha))

	for cy := max(oy, 0); cy < oy+oh && cy < rows; cy++ {
		top, bottom := cy == oy, cy == oy+oh-1
		for cx := max(ox, 0); cx < ox+ow && cx < w; cx++ {
			left, right := cx == ox, cx == ox+ow-1
			sy := contentTop + cy
			mainc, combc, cellStyle, _ := r.screen.GetContent(cx, sy)
			if top || bottom || left || right {
				r.screen.SetContent(cx, sy, boxRune(left, right, top, bottom), nil, cellStyle.Foreground(border))
				continue
			}
			if mainc == 0 {
				mainc = ' '
			}
			r.screen.SetContent(cx, sy, mainc, combc, cellStyle.Background(fill))
		}
	}
}

func boxRune(left, right, top, bottom bool) rune {
	switch {
	case top && bottom:
		return tcell.RuneHLine
	case top && left:
		return tcell.RuneULCorner
	case top && right:
		return tcell.RuneURCorner
	case bottom && left:
		return tcell.RuneLLCorner
	case bottom && right:
		return tcell.RuneLRCorner
	case top || bottom:
		return tcell.RuneHLine
	default:
		return tcell.RuneVLine
	}
}

// blendFill composites fill at alpha over base.
func blendFill(base, fill colorful.Color, alpha float64) colorful.Color {
	return base.BlendRgb(fill, alpha).Clamped()
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}
