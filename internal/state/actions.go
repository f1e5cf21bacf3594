package state

import fsutil "github.com/kk-code-lab/docmark/internal/fs"

// Action is the base interface for all state mutations
type Action interface{}

// ===== DOCUMENT ACTIONS =====

type SelectKindAction struct {
	Kind DocumentKind
}
type CycleKindAction struct{}

// LoadDocumentAction decodes a file into the slot for its kind. Kind may be
// KindNone to detect it from MimeType or the file name.
type LoadDocumentAction struct {
	Path     string
	MimeType string
	Kind     DocumentKind
	Select   bool
}

// DocumentLoadedAction carries the result of an asynchronous load.
type DocumentLoadedAction struct {
	Kind       DocumentKind
	Generation uint64
	Path       string
	Document   *fsutil.Document
	Err        error
}

// UploadTextAction stores already decoded text.
type UploadTextAction struct {
	Kind   DocumentKind
	Handle string
	Text   string
}

// ===== MEASUREMENT ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

// ViewportMeasuredAction reports the surface size for kind in surface units.
type ViewportMeasuredAction struct {
	Kind   DocumentKind
	Width  float64
	Height float64
}

// NaturalPageSizeAction reports the natural size of the current page.
type NaturalPageSizeAction struct {
	Kind   DocumentKind
	Width  float64
	Height float64
}

// PageCountAction reports a page count directly.
type PageCountAction struct {
	Kind  DocumentKind
	Count int
}

// ContentMeasuredAction reports the total surface height of a flowing
// document. Token and Generation identify the measurement request.
type ContentMeasuredAction struct {
	Kind        DocumentKind
	Generation  uint64
	Token       int
	TotalHeight float64
}

// ===== RECTANGLE ACTIONS =====

type NextPageAction struct{}
type PrevPageAction struct{}
type GoToPageAction struct {
	Page int
}
type LastPageAction struct{}
type ZoomInAction struct{}
type ZoomOutAction struct{}
type SetScaleAction struct {
	Scale float64
}
type MoveRectAction struct {
	DX float64
	DY float64
}
type ResizeRectAction struct {
	DW float64
	DH float64
}
type SetRectAction struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ===== SEARCH ACTIONS =====

type QueryStartAction struct{}
type QueryCharAction struct {
	Char rune
}
type QueryBackspaceAction struct{}
type QueryCommitAction struct{}
type QueryCancelAction struct{}
type SetQueryAction struct {
	Text string
}
type CycleModeAction struct{}
type ToggleCaseAction struct{}
type ToggleWholeWordAction struct{}
type AdjustDistanceAction struct {
	Delta int
}
type AdjustScoreAction struct {
	Delta float64
}
type SetHighlightColorAction struct {
	Color string
}

// ===== RESET ACTIONS =====

type ResetSearchAction struct{}
type ResetAllAction struct{}

// ===== APPLICATION ACTIONS =====

type ToggleHelpAction struct{}
type SuspendAction struct{}
type QuitAction struct{}
