package state

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/kk-code-lab/docmark/internal/search"
	"github.com/kk-code-lab/docmark/internal/textutil"
	"github.com/kk-code-lab/docmark/internal/viewport"
)

// ChromeRows is the number of screen rows used by the header and status lines.
const ChromeRows = 3

// AppState is the single source of truth
type AppState struct {
	Registry *Registry
	Params   map[DocumentKind]*KindParams
	Search   SearchParams
	Defaults Defaults

	ScreenWidth  int
	ScreenHeight int

	// Query editing
	QueryEditing bool
	QueryDraft   string
	ShowHelp     bool

	// Derived after every action
	Lines        []search.LineSegments
	MatchCount   int
	MatchedLines int
	PageHits     []search.PageMatches
	Overlay      viewport.Rect
	OverlayStyle viewport.Overlay

	// Loading
	Loader        DocumentLoader
	Loading       map[DocumentKind]string
	LastError     error
	StatusMessage string
	Quit          bool

	Logger *slog.Logger

	measureTokens map[DocumentKind]int
	pageHitsKey   pageHitsKey
	dispatch      func(Action)
}

type pageHitsKey struct {
	query      search.Query
	generation uint64
}

// NewAppState builds the initial state from defaults.
func NewAppState(defaults Defaults) *AppState {
	s := &AppState{
		Registry:      NewRegistry(),
		Params:        make(map[DocumentKind]*KindParams, len(Kinds)),
		Search:        defaults.Search,
		Defaults:      defaults,
		Loading:       make(map[DocumentKind]string),
		Logger:        slog.New(slog.DiscardHandler),
		measureTokens: make(map[DocumentKind]int),
	}
	for _, k := range Kinds {
		p := defaults.kindParams(k)
		s.Params[k] = &p
	}
	s.recompute()
	return s
}

func (s *AppState) getDispatch() func(Action) {
	return s.dispatch
}

// SetDispatch exposes the reducer dispatch hook to other packages.
func (s *AppState) SetDispatch(fn func(Action)) {
	s.dispatch = fn
}

// ActiveKind returns the selected document kind.
func (s *AppState) ActiveKind() DocumentKind {
	return s.Registry.Active()
}

// ActiveView returns the registry projection for the selected kind.
func (s *AppState) ActiveView() ActiveView {
	return s.Registry.View()
}

// ActiveParams returns the parameter set of the selected kind, or nil when
// no kind is selected.
func (s *AppState) ActiveParams() *KindParams {
	return s.Params[s.ActiveKind()]
}

// ContentSize is the number of cells available for the document.
func (s *AppState) ContentSize() (int, int) {
	return max(0, s.ScreenWidth), max(0, s.ScreenHeight-ChromeRows)
}

// EffectiveQuery is the query currently applied, including an uncommitted
// draft while the user is typing.
func (s *AppState) EffectiveQuery() search.Query {
	params := s.Search
	if s.QueryEditing {
		params.Text = s.QueryDraft
	}
	return params.Query()
}

// DisplayText is the text shown for the active kind: the current page for
// paginated documents, the whole content otherwise.
func (s *AppState) DisplayText() string {
	view := s.ActiveView()
	if !view.Loaded {
		return ""
	}
	if view.Kind == KindPaginated && view.Document != nil && len(view.Document.Pages) > 0 {
		page := viewport.ClampPageNumber(s.Params[KindPaginated].Rect.PageNumber, len(view.Document.Pages))
		return view.Document.Pages[page-1]
	}
	return view.Text
}

// FirstVisibleRow returns the wrapped row shown at the top of the content
// area. Paginated documents always start at their first row.
func (s *AppState) FirstVisibleRow() int {
	kind := s.ActiveKind()
	p := s.Params[kind]
	if p == nil || kind.PagingModel() != viewport.PagingContinuous {
		return 0
	}
	rowHeight := s.Defaults.CellHeight * p.Rect.Scale
	if !(rowHeight > 0) {
		return 0
	}
	offset := viewport.ScrollOffsetForPage(p.Rect.PageNumber, p.ViewportHeight)
	return int(math.Floor(offset/rowHeight + 1e-9))
}

// OverlayCells converts the overlay into content-area cell coordinates.
// ok is false when there is nothing to draw.
func (s *AppState) OverlayCells() (x, y, w, h int, ok bool) {
	if !s.Overlay.Visible() {
		return 0, 0, 0, 0, false
	}
	cw, ch := s.ContentSize()
	if cw <= 0 || ch <= 0 {
		return 0, 0, 0, 0, false
	}
	var left, top, width, height float64
	switch s.Overlay.Unit {
	case viewport.UnitPercent:
		px := s.Overlay.ToPixels(float64(cw), float64(ch))
		left, top, width, height = px.Left, px.Top, px.Width, px.Height
	default:
		p := s.ActiveParams()
		if p == nil || !(s.Defaults.CellWidth > 0) || !(s.Defaults.CellHeight > 0) {
			return 0, 0, 0, 0, false
		}
		offset := viewport.ScrollOffsetForPage(p.Rect.PageNumber, p.ViewportHeight)
		left = s.Overlay.Left / s.Defaults.CellWidth
		top = (s.Overlay.Top - offset) / s.Defaults.CellHeight
		width = s.Overlay.Width / s.Defaults.CellWidth
		height = s.Overlay.Height / s.Defaults.CellHeight
	}
	x = int(math.Floor(left))
	y = int(math.Floor(top))
	w = max(1, int(math.Round(width)))
	h = max(1, int(math.Round(height)))
	return x, y, w, h, true
}

// PageCount returns the known page count of the active kind, or 0.
func (s *AppState) PageCount() int {
	return s.ActiveView().PageCount
}

// clampPage applies the page-number policy to kind's rectangle.
func (s *AppState) clampPage(kind DocumentKind) {
	p := s.Params[kind]
	if p == nil {
		return
	}
	p.Rect.PageNumber = viewport.ClampPageNumber(p.Rect.PageNumber, s.Registry.Instance(kind).PageCount)
}

// syncNaturalSize copies the natural size of the current page of a
// paginated document into its parameters.
func (s *AppState) syncNaturalSize() {
	p := s.Params[KindPaginated]
	doc := s.Registry.Instance(KindPaginated).Document
	if size, ok := doc.NaturalSize(p.Rect.PageNumber); ok {
		p.PageWidth = size.Width
		p.PageHeight = size.Height
	}
}

// recompute refreshes every derived field from the current inputs.
func (s *AppState) recompute() {
	q := s.EffectiveQuery()
	text := s.DisplayText()

	s.Lines = search.HighlightLines(text, q)
	s.MatchCount, s.MatchedLines = 0, 0
	for _, line := range s.Lines {
		if !line.Matched {
			continue
		}
		s.MatchedLines++
		for _, seg := range line.Segments {
			if seg.Highlighted {
				s.MatchCount++
			}
		}
	}

	s.refreshPageHits(q)

	kind := s.ActiveKind()
	if p := s.Params[kind]; p != nil && s.ActiveView().Loaded {
		s.Overlay = viewport.ToViewportRect(p.Rect, p.Geometry(), kind.PagingModel())
	} else {
		s.Overlay = viewport.Rect{}
	}
	s.OverlayStyle = viewport.OverlayColors(s.Search.HighlightColor)
}

func (s *AppState) refreshPageHits(q search.Query) {
	inst := s.Registry.Instance(KindPaginated)
	if s.ActiveKind() != KindPaginated || inst.Document == nil || q.Empty() {
		s.PageHits = nil
		s.pageHitsKey = pageHitsKey{}
		return
	}
	key := pageHitsKey{query: q, generation: s.Registry.Generation(KindPaginated)}
	if key == s.pageHitsKey && s.PageHits != nil {
		return
	}
	hits, err := search.FindPageMatches(context.Background(), inst.Document.Pages, q, s.Defaults.Workers)
	if err != nil {
		s.Logger.Debug("page search failed", "err", err)
		return
	}
	s.PageHits = hits
	s.pageHitsKey = key
}

// measureRequest describes a content measurement for a flowing document.
type measureRequest struct {
	kind       DocumentKind
	generation uint64
	token      int
	text       string
	columns    int
	tabWidth   int
	rowHeight  float64
}

func (req measureRequest) totalHeight() float64 {
	return ContentHeight(req.text, req.columns, req.tabWidth, req.rowHeight)
}

// ContentHeight is the surface height of a flowing text wrapped to columns,
// at rowHeight per terminal row.
func ContentHeight(text string, columns, tabWidth int, rowHeight float64) float64 {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	rows := textutil.WrappedRowCount(lines, columns, tabWidth)
	return float64(rows) * rowHeight
}
