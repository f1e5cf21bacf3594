package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	TabActiveBg tcell.Color
	TabActiveFg tcell.Color
	TabEmptyFg  tcell.Color
	MatchBg     tcell.Color
	MatchFg     tcell.Color
	DimFg       tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	ErrorFg     tcell.Color
	PromptFg    tcell.Color
	// OverlayBase is the colour the overlay fill is blended onto.
	OverlayBase tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HeaderBg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		TabActiveBg: tcell.Color33,
		TabActiveFg: tcell.ColorWhite,
		TabEmptyFg:  tcell.ColorLightSlateGray,
		MatchBg:     tcell.Color178, // amber, readable on dark and light terminals
		MatchFg:     tcell.ColorBlack,
		DimFg:       tcell.ColorLightSlateGray,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		ErrorFg:     tcell.ColorRed,
		PromptFg:    tcell.Color51,
		OverlayBase: tcell.ColorBlack,
	}
}
