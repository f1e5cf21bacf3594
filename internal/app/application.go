package app

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/docmark/internal/config"
	"github.com/kk-code-lab/docmark/internal/search"
	statepkg "github.com/kk-code-lab/docmark/internal/state"
	inputui "github.com/kk-code-lab/docmark/internal/ui/input"
	renderui "github.com/kk-code-lab/docmark/internal/ui/render"
	"github.com/kk-code-lab/docmark/internal/viewport"
)

// Options configures a new Application.
type Options struct {
	Defaults statepkg.Defaults
	Logger   *slog.Logger
	// Path is opened on start when set. Kind forces the document kind;
	// KindNone detects it from MimeType or the file name.
	Path     string
	Kind     statepkg.DocumentKind
	MimeType string
}

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	shouldQuit bool
	logger     *slog.Logger
}

// DefaultsFromConfig converts a loaded configuration into state defaults.
func DefaultsFromConfig(cfg *config.Config) (statepkg.Defaults, error) {
	d := statepkg.DefaultDefaults()
	if cfg == nil {
		return d, nil
	}
	mode, err := search.ParseMatchMode(cfg.Search.Mode)
	if err != nil {
		return d, fmt.Errorf("config: %w", err)
	}
	d.Search = statepkg.SearchParams{
		Mode:           mode,
		MaxDistance:    cfg.Search.MaxDistance,
		MaxScore:       cfg.Search.MaxScore,
		CaseSensitive:  cfg.Search.CaseSensitive,
		WholeWord:      cfg.Search.WholeWord,
		HighlightColor: cfg.Search.HighlightColor,
	}
	d.Rect = viewport.RectParams{
		X:          cfg.Rect.X,
		Y:          cfg.Rect.Y,
		Width:      cfg.Rect.Width,
		Height:     cfg.Rect.Height,
		PageNumber: 1,
		Scale:      cfg.Rect.Scale,
	}.Clamped()
	d.PageWidth, d.PageHeight = cfg.Page.Width, cfg.Page.Height
	d.CellWidth, d.CellHeight = cfg.View.CellWidth, cfg.View.CellHeight
	d.TabWidth = cfg.View.TabWidth
	d.Workers = cfg.View.SearchWorker
	return d, nil
}

// NewApplication initialises the terminal and opens opts.Path, if any.
func NewApplication(opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so clicks don't leak as key events.
	screen.EnableMouse()

	app, err := newApplication(screen, opts)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

func newApplication(screen tcell.Screen, opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	state := statepkg.NewAppState(opts.Defaults)
	state.Logger = logger
	state.Loader = statepkg.NewAsyncDocumentLoader(logger)

	actionCh := make(chan statepkg.Action, 10)
	state.SetDispatch(func(action statepkg.Action) {
		select {
		case actionCh <- action:
		default:
			go func() { actionCh <- action }()
		}
	})

	reducer := statepkg.NewStateReducer()
	renderer := renderui.NewRenderer(screen)
	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	app := &Application{
		screen:   screen,
		state:    state,
		reducer:  reducer,
		renderer: renderer,
		input:    inputHandler,
		actionCh: actionCh,
		logger:   logger,
	}

	w, h := screen.Size()
	app.handleAction(statepkg.ResizeAction{Width: w, Height: h})

	if opts.Path != "" {
		if _, err := reducer.Reduce(state, statepkg.LoadDocumentAction{
			Path:     opts.Path,
			MimeType: opts.MimeType,
			Kind:     opts.Kind,
			Select:   true,
		}); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// State exposes the current state, mainly for tests and the CLI.
func (app *Application) State() *statepkg.AppState {
	return app.state
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.screen.Fini()
	return nil
}
