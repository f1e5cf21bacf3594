package state

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"unicode/utf8"

	fsutil "github.com/kk-code-lab/docmark/internal/fs"
	"github.com/kk-code-lab/docmark/internal/viewport"
)

const zoomFactor = 1.1

// StateReducer applies actions to state
type StateReducer struct{}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// Reduce applies action and refreshes every derived field. Errors are also
// recorded in state.LastError.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	err := r.apply(state, action)
	if err != nil {
		state.LastError = err
	}
	state.recompute()
	return state, err
}

func (r *StateReducer) apply(state *AppState, action Action) error {
	switch a := action.(type) {

	// ===== DOCUMENTS =====

	case SelectKindAction:
		r.selectKind(state, a.Kind)
		return nil

	case CycleKindAction:
		r.selectKind(state, state.ActiveKind().Next())
		return nil

	case LoadDocumentAction:
		return r.startLoad(state, a)

	case DocumentLoadedAction:
		r.applyLoadResult(state, a)
		return nil

	case UploadTextAction:
		if _, ok := state.Params[a.Kind]; !ok {
			return fmt.Errorf("upload: %w", fsutil.ErrUnsupportedKind)
		}
		r.cancelLoad(state, a.Kind)
		state.Registry.Upload(a.Kind, a.Handle, a.Text)
		r.afterContentChange(state, a.Kind)
		return nil

	// ===== MEASUREMENT =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		r.applyScreenSize(state)
		return nil

	case ViewportMeasuredAction:
		r.applyViewport(state, a.Kind, a.Width, a.Height)
		return nil

	case NaturalPageSizeAction:
		p := state.Params[a.Kind]
		if p == nil || !(a.Width > 0) || !(a.Height > 0) {
			return nil
		}
		p.PageWidth, p.PageHeight = a.Width, a.Height
		return nil

	case PageCountAction:
		state.Registry.ReportPageCount(a.Kind, a.Count)
		state.clampPage(a.Kind)
		return nil

	case ContentMeasuredAction:
		r.applyMeasurement(state, a)
		return nil

	// ===== RECTANGLE =====

	case NextPageAction:
		if p := state.ActiveParams(); p != nil {
			r.setPage(state, p.Rect.PageNumber+1)
		}
		return nil

	case PrevPageAction:
		if p := state.ActiveParams(); p != nil {
			r.setPage(state, p.Rect.PageNumber-1)
		}
		return nil

	case GoToPageAction:
		r.setPage(state, a.Page)
		return nil

	case LastPageAction:
		r.setPage(state, state.PageCount())
		return nil

	case ZoomInAction:
		if p := state.ActiveParams(); p != nil {
			r.setScale(state, state.ActiveKind(), p.Rect.Scale*zoomFactor)
		}
		return nil

	case ZoomOutAction:
		if p := state.ActiveParams(); p != nil {
			r.setScale(state, state.ActiveKind(), p.Rect.Scale/zoomFactor)
		}
		return nil

	case SetScaleAction:
		r.setScale(state, state.ActiveKind(), a.Scale)
		return nil

	case MoveRectAction:
		if p := state.ActiveParams(); p != nil {
			p.Rect.X += a.DX
			p.Rect.Y += a.DY
			p.Rect = p.Rect.Clamped()
		}
		return nil

	case ResizeRectAction:
		if p := state.ActiveParams(); p != nil {
			p.Rect.Width += a.DW
			p.Rect.Height += a.DH
			p.Rect = p.Rect.Clamped()
		}
		return nil

	case SetRectAction:
		if p := state.ActiveParams(); p != nil {
			p.Rect.X, p.Rect.Y = a.X, a.Y
			p.Rect.Width, p.Rect.Height = a.Width, a.Height
			p.Rect = p.Rect.Clamped()
		}
		return nil

	// ===== SEARCH =====

	case QueryStartAction:
		state.QueryEditing = true
		state.QueryDraft = state.Search.Text
		return nil

	case QueryCharAction:
		if state.QueryEditing {
			state.QueryDraft += string(a.Char)
		}
		return nil

	case QueryBackspaceAction:
		if state.QueryEditing && state.QueryDraft != "" {
			_, size := utf8.DecodeLastRuneInString(state.QueryDraft)
			state.QueryDraft = state.QueryDraft[:len(state.QueryDraft)-size]
		}
		return nil

	case QueryCommitAction:
		if state.QueryEditing {
			state.Search.Text = state.QueryDraft
		}
		state.QueryEditing = false
		state.QueryDraft = ""
		return nil

	case QueryCancelAction:
		state.QueryEditing = false
		state.QueryDraft = ""
		return nil

	case SetQueryAction:
		state.Search.Text = a.Text
		return nil

	case CycleModeAction:
		state.Search.Mode = state.Search.Mode.Next()
		return nil

	case ToggleCaseAction:
		state.Search.CaseSensitive = !state.Search.CaseSensitive
		return nil

	case ToggleWholeWordAction:
		state.Search.WholeWord = !state.Search.WholeWord
		return nil

	case AdjustDistanceAction:
		state.Search.MaxDistance = max(0, state.Search.MaxDistance+a.Delta)
		return nil

	case AdjustScoreAction:
		v := clampUnit(state.Search.MaxScore + a.Delta)
		state.Search.MaxScore = math.Round(v*100) / 100
		return nil

	case SetHighlightColorAction:
		if a.Color == "" {
			state.Search.HighlightColor = state.Defaults.Search.HighlightColor
		} else {
			state.Search.HighlightColor = a.Color
		}
		return nil

	// ===== RESET =====

	case ResetSearchAction:
		state.Search = state.Defaults.Search
		state.QueryEditing = false
		state.QueryDraft = ""
		return nil

	case ResetAllAction:
		r.resetAll(state)
		return nil

	// ===== APPLICATION =====

	case ToggleHelpAction:
		state.ShowHelp = !state.ShowHelp
		return nil

	case QuitAction:
		state.Quit = true
		return nil
	}

	return nil
}

func (r *StateReducer) selectKind(state *AppState, kind DocumentKind) {
	state.Registry.SelectKind(kind)
	state.clampPage(kind)
	if kind == KindPaginated {
		state.syncNaturalSize()
	}
}

func (r *StateReducer) setPage(state *AppState, page int) {
	kind := state.ActiveKind()
	p := state.Params[kind]
	if p == nil {
		return
	}
	p.Rect.PageNumber = page
	state.clampPage(kind)
	if kind == KindPaginated {
		state.syncNaturalSize()
	}
}

func (r *StateReducer) setScale(state *AppState, kind DocumentKind, scale float64) {
	p := state.Params[kind]
	if p == nil {
		return
	}
	p.Rect.Scale = scale
	p.Rect = p.Rect.Clamped()
	r.requestMeasure(state, kind)
}

func (r *StateReducer) startLoad(state *AppState, a LoadDocumentAction) error {
	kind := a.Kind
	if kind == KindNone {
		detected, err := KindForFile(a.Path, a.MimeType)
		if err != nil {
			return err
		}
		kind = detected
	}
	if _, ok := state.Params[kind]; !ok {
		return fmt.Errorf("%s: %w", a.Path, fsutil.ErrUnsupportedKind)
	}

	r.cancelLoad(state, kind)
	generation := state.Registry.BeginLoad(kind)
	state.Loading[kind] = a.Path
	if a.Select {
		r.selectKind(state, kind)
	}
	state.Logger.Debug("load requested", "kind", kind, "generation", generation, "path", a.Path)

	loader := state.Loader
	dispatch := state.getDispatch()
	if loader == nil || dispatch == nil {
		doc, err := fsutil.LoadFileAs(context.Background(), a.Path, FormatForKind(kind))
		r.applyLoadResult(state, DocumentLoadedAction{
			Kind:       kind,
			Generation: generation,
			Path:       a.Path,
			Document:   doc,
			Err:        err,
		})
		return nil
	}

	loader.Start(DocumentLoadRequest{
		Kind:       kind,
		Generation: generation,
		Path:       a.Path,
		Callback: func(result DocumentLoadResult) {
			dispatch(DocumentLoadedAction(result))
		},
	})
	return nil
}

func (r *StateReducer) cancelLoad(state *AppState, kind DocumentKind) {
	if _, pending := state.Loading[kind]; !pending {
		return
	}
	if state.Loader != nil {
		state.Loader.Cancel(state.Registry.Generation(kind))
	}
	delete(state.Loading, kind)
}

func (r *StateReducer) applyLoadResult(state *AppState, a DocumentLoadedAction) {
	if a.Generation != state.Registry.Generation(a.Kind) {
		state.Logger.Debug("dropping stale load", "kind", a.Kind, "generation", a.Generation)
		return
	}
	delete(state.Loading, a.Kind)
	name := filepath.Base(a.Path)
	if a.Err != nil {
		state.LastError = fmt.Errorf("load %s: %w", name, a.Err)
		state.Logger.Debug("load failed", "kind", a.Kind, "err", a.Err)
		return
	}
	if !state.Registry.CompleteLoad(a.Kind, a.Generation, a.Path, a.Document) {
		return
	}
	state.LastError = nil
	state.StatusMessage = fmt.Sprintf("loaded %s", name)
	r.afterContentChange(state, a.Kind)
}

// afterContentChange applies the page-number policy to kind after its content
// was replaced and starts a new measurement for flowing documents.
func (r *StateReducer) afterContentChange(state *AppState, kind DocumentKind) {
	state.clampPage(kind)
	if kind == KindPaginated {
		state.syncNaturalSize()
		return
	}
	r.requestMeasure(state, kind)
}

func (r *StateReducer) applyScreenSize(state *AppState) {
	cols, rows := state.ContentSize()
	w := float64(cols) * state.Defaults.CellWidth
	h := float64(rows) * state.Defaults.CellHeight
	for _, kind := range Kinds {
		_ = r.apply(state, ViewportMeasuredAction{Kind: kind, Width: w, Height: h})
	}
}

func (r *StateReducer) applyViewport(state *AppState, kind DocumentKind, width, height float64) {
	p := state.Params[kind]
	if p == nil {
		return
	}
	p.ViewportWidth, p.ViewportHeight = math.Max(0, width), math.Max(0, height)
	if kind.PagingModel() == viewport.PagingContinuous {
		p.PageWidth, p.PageHeight = p.ViewportWidth, p.ViewportHeight
		r.requestMeasure(state, kind)
	}
}

// requestMeasure asks for the total height of a flowing document. The count
// already stored stays in place until the new measurement lands.
func (r *StateReducer) requestMeasure(state *AppState, kind DocumentKind) {
	p := state.Params[kind]
	inst := state.Registry.Instance(kind)
	if p == nil || kind.PagingModel() != viewport.PagingContinuous || !inst.Loaded {
		return
	}

	state.measureTokens[kind]++
	columns := 0
	if state.Defaults.CellWidth > 0 {
		columns = int(p.ViewportWidth / state.Defaults.CellWidth)
	}
	req := measureRequest{
		kind:       kind,
		generation: state.Registry.Generation(kind),
		token:      state.measureTokens[kind],
		text:       inst.Text,
		columns:    columns,
		tabWidth:   state.Defaults.TabWidth,
		rowHeight:  state.Defaults.CellHeight * p.Rect.Scale,
	}
	measured := func() ContentMeasuredAction {
		return ContentMeasuredAction{
			Kind:        req.kind,
			Generation:  req.generation,
			Token:       req.token,
			TotalHeight: req.totalHeight(),
		}
	}

	dispatch := state.getDispatch()
	if dispatch == nil {
		r.applyMeasurement(state, measured())
		return
	}
	go func() {
		dispatch(measured())
	}()
}

func (r *StateReducer) applyMeasurement(state *AppState, a ContentMeasuredAction) {
	p := state.Params[a.Kind]
	if p == nil {
		return
	}
	count := viewport.VirtualPageCount(a.TotalHeight, p.ViewportHeight)
	if a.Token != state.measureTokens[a.Kind] || !state.Registry.ReportPageCountAt(a.Kind, a.Generation, count) {
		state.Logger.Debug("dropping stale measurement", "kind", a.Kind, "token", a.Token)
		return
	}
	state.clampPage(a.Kind)
}

func (r *StateReducer) resetAll(state *AppState) {
	for kind := range state.Loading {
		r.cancelLoad(state, kind)
	}
	state.Registry.Reset()
	for _, kind := range Kinds {
		p := state.Defaults.kindParams(kind)
		state.Params[kind] = &p
	}
	if state.ScreenWidth > 0 && state.ScreenHeight > 0 {
		r.applyScreenSize(state)
	}
	state.Search = state.Defaults.Search
	state.QueryEditing = false
	state.QueryDraft = ""
	state.LastError = nil
	state.StatusMessage = "reset"
}
