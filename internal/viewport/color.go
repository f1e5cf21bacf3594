package viewport

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// FillAlpha is the opacity of the overlay fill.
const FillAlpha = 0.1

// DefaultHighlightColor is the colour used until the user picks another.
const DefaultHighlightColor = "#FFFF00"

var fallbackColor = colorful.Color{R: 1, G: 0, B: 0}

var rgbaPattern = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*([0-9.]+)\s*)?\)$`)

// Overlay describes how the rectangle is painted.
type Overlay struct {
	Border    colorful.Color
	Fill      colorful.Color
	FillAlpha float64
	// Known is false when the input colour could not be parsed.
	Known bool
}

// FillCSS renders the fill as an rgba() string.
func (o Overlay) FillCSS() string {
	r, g, b := o.Fill.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(o.FillAlpha, 'f', -1, 64))
}

// BorderHex renders the border colour as #rrggbb.
func (o Overlay) BorderHex() string {
	return o.Border.Hex()
}

// OverlayColors derives border and fill from a user highlight colour. Hex
// and rgb()/rgba() inputs keep their RGB channels; the fill alpha is always
// FillAlpha. Anything else falls back to red.
func OverlayColors(highlight string) Overlay {
	c, ok := ParseColor(highlight)
	if !ok {
		return Overlay{Border: fallbackColor, Fill: fallbackColor, FillAlpha: FillAlpha}
	}
	return Overlay{Border: c, Fill: c, FillAlpha: FillAlpha, Known: true}
}

// ParseColor accepts #rgb, #rrggbb, rgb(r, g, b) and rgba(r, g, b, a).
func ParseColor(s string) (colorful.Color, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(strings.ToLower(s))
		if err != nil {
			return colorful.Color{}, false
		}
		return c, true
	}
	m := rgbaPattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return colorful.Color{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(m[i+1])
		if err != nil || v > 255 {
			return colorful.Color{}, false
		}
		ch[i] = uint8(v)
	}
	return colorful.Color{R: float64(ch[0]) / 255, G: float64(ch[1]) / 255, B: float64(ch[2]) / 255}, true
}
