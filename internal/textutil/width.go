package textutil

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultTabWidth is the tab stop distance used by the document view.
const DefaultTabWidth = 4

// DisplayWidth reports the terminal width of text. Multi-rune grapheme
// clusters (emoji sequences, flags, keycaps) count as one cluster.
func DisplayWidth(text string) int {
	width := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		width += clusterWidth(g.Str(), g.Runes(), g.Width())
	}
	return width
}

func clusterWidth(cluster string, runes []rune, clusterW int) int {
	if len(runes) == 1 {
		return RuneWidth(runes[0])
	}
	if clusterW > 0 {
		return clusterW
	}
	return max(1, runewidth.StringWidth(cluster))
}

// RuneWidth is the column width of a single rune, never less than one.
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 1 {
		return 1
	}
	return w
}

// TabAdvance returns the number of columns a tab occupies at column.
func TabAdvance(column, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return tabWidth - (column % tabWidth)
}
