package state

import (
	"math"

	"github.com/kk-code-lab/docmark/internal/search"
	"github.com/kk-code-lab/docmark/internal/viewport"
)

// SearchParams are the user-facing search settings.
type SearchParams struct {
	Text           string
	Mode           search.MatchMode
	MaxDistance    int
	MaxScore       float64
	CaseSensitive  bool
	WholeWord      bool
	HighlightColor string
}

// Query turns the parameters into an engine query. Thresholds are clamped
// here so the engine only ever sees valid values.
func (p SearchParams) Query() search.Query {
	switch p.Mode {
	case search.ModeDistance:
		return search.DistanceQuery(p.Text, p.CaseSensitive, max(0, p.MaxDistance))
	case search.ModeScored:
		return search.ScoredQuery(p.Text, p.CaseSensitive, clampUnit(p.MaxScore))
	default:
		// Whole-word filtering only has a meaning for literal matches.
		return search.ExactQuery(p.Text, p.CaseSensitive, p.WholeWord)
	}
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// KindParams is the per-kind parameter set: the overlay rectangle plus the
// page geometry last reported for that kind.
type KindParams struct {
	Rect viewport.RectParams
	// PageWidth and PageHeight are the natural page size. For paginated
	// documents they come from the file or the user; for flowing documents
	// they follow the measured viewport.
	PageWidth  float64
	PageHeight float64
	// ViewportWidth and ViewportHeight are the measured surface size.
	ViewportWidth  float64
	ViewportHeight float64
}

// Geometry returns the transform input for this kind.
func (p KindParams) Geometry() viewport.PageGeometry {
	return viewport.PageGeometry{
		NaturalWidth:   p.PageWidth,
		NaturalHeight:  p.PageHeight,
		ViewportWidth:  p.ViewportWidth,
		ViewportHeight: p.ViewportHeight,
	}
}

// Defaults carries the starting values used by NewAppState and the reset
// actions.
type Defaults struct {
	Search     SearchParams
	Rect       viewport.RectParams
	PageWidth  float64
	PageHeight float64
	// CellWidth and CellHeight are the surface units covered by one
	// terminal cell.
	CellWidth  float64
	CellHeight float64
	TabWidth   int
	Workers    int
}

// DefaultDefaults returns the built-in starting values.
func DefaultDefaults() Defaults {
	return Defaults{
		Search: SearchParams{
			Mode:           search.ModeExact,
			MaxDistance:    0,
			MaxScore:       0.4,
			CaseSensitive:  false,
			WholeWord:      true,
			HighlightColor: viewport.DefaultHighlightColor,
		},
		Rect:       viewport.DefaultRectParams(),
		PageWidth:  595,
		PageHeight: 842,
		CellWidth:  6,
		CellHeight: 12,
		TabWidth:   4,
		Workers:    4,
	}
}

func (d Defaults) kindParams(kind DocumentKind) KindParams {
	p := KindParams{Rect: d.Rect.Clamped()}
	if kind == KindPaginated {
		p.PageWidth = d.PageWidth
		p.PageHeight = d.PageHeight
	}
	return p
}
