package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/docmark/internal/state"
)

const (
	// moveStep is how far arrow keys move or resize the rectangle, in page units.
	moveStep  = 10
	scoreStep = 0.05
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the user asked to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true
	}

	helpVisible := ih.state != nil && ih.state.ShowHelp
	editing := ih.state != nil && ih.state.QueryEditing

	switch {
	case helpVisible:
		ih.processHelpKey(ev)
		return true
	case editing:
		ih.processQueryKey(ev)
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		if ih.state != nil && ih.state.Search.Text != "" {
			ih.actionChan <- statepkg.SetQueryAction{Text: ""}
		}
	case tcell.KeyTab:
		ih.actionChan <- statepkg.CycleKindAction{}
	case tcell.KeyUp:
		ih.actionChan <- statepkg.MoveRectAction{DY: -moveStep}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.MoveRectAction{DY: moveStep}
	case tcell.KeyLeft:
		ih.actionChan <- statepkg.MoveRectAction{DX: -moveStep}
	case tcell.KeyRight:
		ih.actionChan <- statepkg.MoveRectAction{DX: moveStep}
	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.NextPageAction{}
	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.PrevPageAction{}
	case tcell.KeyHome:
		ih.actionChan <- statepkg.GoToPageAction{Page: 1}
	case tcell.KeyEnd:
		ih.actionChan <- statepkg.LastPageAction{}
	case tcell.KeyRune:
		return ih.processRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) processHelpKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.ToggleHelpAction{}
	case tcell.KeyRune:
		switch ev.Rune() {
		case '?', 'q', 'Q':
			ih.actionChan <- statepkg.ToggleHelpAction{}
		}
	}
}

func (ih *InputHandler) processQueryKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.QueryCancelAction{}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.QueryCommitAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.QueryBackspaceAction{}
	case tcell.KeyRune:
		ih.actionChan <- statepkg.QueryCharAction{Char: ev.Rune()}
	}
}

var kindShortcuts = map[rune]statepkg.DocumentKind{
	'1': statepkg.KindPaginated,
	'2': statepkg.KindMarkup,
	'3': statepkg.KindPlainText,
}

func (ih *InputHandler) processRune(r rune) bool {
	if kind, ok := kindShortcuts[r]; ok {
		ih.actionChan <- statepkg.SelectKindAction{Kind: kind}
		return true
	}

	switch r {
	case 'q', 'Q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case '?':
		ih.actionChan <- statepkg.ToggleHelpAction{}

	// Pages
	case 'n':
		ih.actionChan <- statepkg.NextPageAction{}
	case 'p':
		ih.actionChan <- statepkg.PrevPageAction{}
	case 'g':
		ih.actionChan <- statepkg.GoToPageAction{Page: 1}
	case 'G':
		ih.actionChan <- statepkg.LastPageAction{}

	// Rectangle
	case '+', '=':
		ih.actionChan <- statepkg.ZoomInAction{}
	case '-':
		ih.actionChan <- statepkg.ZoomOutAction{}
	case '0':
		ih.actionChan <- statepkg.SetScaleAction{Scale: 1}
	case '[':
		ih.actionChan <- statepkg.ResizeRectAction{DW: -moveStep}
	case ']':
		ih.actionChan <- statepkg.ResizeRectAction{DW: moveStep}
	case '{':
		ih.actionChan <- statepkg.ResizeRectAction{DH: -moveStep}
	case '}':
		ih.actionChan <- statepkg.ResizeRectAction{DH: moveStep}

	// Search
	case '/':
		ih.actionChan <- statepkg.QueryStartAction{}
	case 'm':
		ih.actionChan <- statepkg.CycleModeAction{}
	case 'c':
		ih.actionChan <- statepkg.ToggleCaseAction{}
	case 'w':
		ih.actionChan <- statepkg.ToggleWholeWordAction{}
	case 't':
		ih.actionChan <- statepkg.AdjustDistanceAction{Delta: -1}
	case 'T':
		ih.actionChan <- statepkg.AdjustDistanceAction{Delta: 1}
	case 's':
		ih.actionChan <- statepkg.AdjustScoreAction{Delta: -scoreStep}
	case 'S':
		ih.actionChan <- statepkg.AdjustScoreAction{Delta: scoreStep}

	// Reset
	case 'r':
		ih.actionChan <- statepkg.ResetSearchAction{}
	case 'R':
		ih.actionChan <- statepkg.ResetAllAction{}
	}
	return true
}
