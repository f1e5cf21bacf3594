package app

import (
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/docmark/internal/state"
	renderui "github.com/kk-code-lab/docmark/internal/ui/render"
)

// Run processes terminal events and dispatched actions until the user quits.
func (app *Application) Run() {
	defer app.screen.Fini()

	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
		return true
	case *tcell.EventMouse:
		return app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
}

// handleMouse selects a kind when its header tab is clicked and turns the
// wheel into page changes.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	if app.state == nil || app.state.ShowHelp {
		return false
	}

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelDown != 0:
		app.actionCh <- statepkg.NextPageAction{}
		return true
	case buttons&tcell.WheelUp != 0:
		app.actionCh <- statepkg.PrevPageAction{}
		return true
	case buttons&tcell.Button1 == 0:
		return false
	}

	x, y := ev.Position()
	if y != 0 {
		return false
	}
	kind, ok := renderui.HeaderTabAt(app.state, x)
	if !ok {
		return false
	}
	app.actionCh <- statepkg.SelectKindAction{Kind: kind}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.logger.Debug("action failed", "action", action, "err", err)
	}
	return true
}
