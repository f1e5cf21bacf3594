package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abiiranathan/goflag"
	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/docmark/internal/app"
	"github.com/kk-code-lab/docmark/internal/config"
	statepkg "github.com/kk-code-lab/docmark/internal/state"
	"golang.org/x/term"
)

// cliFlags collects every flag value. Floats and booleans are kept as
// strings and parsed after the subcommand is known.
type cliFlags struct {
	ConfigPath string
	File       string
	Kind       string
	MimeType   string

	Pattern   string
	Mode      string
	Distance  int // unsetDistance keeps the configured threshold
	Score     string
	Case      string
	WholeWord string

	X      string
	Y      string
	Width  string
	Height string
	Page   int
	Scale  string
}

// unsetDistance marks --threshold as not given. Float and bool flags use the
// empty string for the same purpose.
const unsetDistance = -1

func defineFlags(flags *cliFlags, run func(name string)) *goflag.Context {
	ctx := goflag.NewContext()

	ctx.AddFlag(goflag.FlagString, "config", "c", &flags.ConfigPath,
		"Path to config.yaml (default: user config dir)", false)

	ctx.AddSubCommand("view", "Open a document in the terminal viewer", func() { run("view") }).
		AddFlag(goflag.FlagFilePath, "file", "f", &flags.File, "The document to open", false).
		AddFlag(goflag.FlagString, "kind", "k", &flags.Kind, "Force the document kind: pdf, html or text", false).
		AddFlag(goflag.FlagString, "mime", "M", &flags.MimeType, "MIME type used to detect the kind", false)

	ctx.AddSubCommand("search", "Print the lines of a document that match a query", func() { run("search") }).
		AddFlag(goflag.FlagFilePath, "file", "f", &flags.File, "The document to search", true).
		AddFlag(goflag.FlagString, "pattern", "p", &flags.Pattern, "The query text", true).
		AddFlag(goflag.FlagString, "mode", "m", &flags.Mode, "Match mode: exact, distance or scored", false).
		AddFlag(goflag.FlagInt, "threshold", "t", &flags.Distance, "Maximum edit distance in distance mode (default: config)", false, goflag.Min(0), goflag.Max(64)).
		AddFlag(goflag.FlagString, "score", "s", &flags.Score, "Maximum normalised score in scored mode (0-1)", false).
		AddFlag(goflag.FlagString, "case", "C", &flags.Case, "Case sensitive matching (true/false)", false).
		AddFlag(goflag.FlagString, "whole-word", "w", &flags.WholeWord, "Whole-word matching in exact mode (true/false)", false).
		AddFlag(goflag.FlagString, "kind", "k", &flags.Kind, "Force the document kind: pdf, html or text", false)

	ctx.AddSubCommand("rect", "Print the viewport rectangle for a highlight", func() { run("rect") }).
		AddFlag(goflag.FlagFilePath, "file", "f", &flags.File, "The document the rectangle belongs to", true).
		AddFlag(goflag.FlagString, "x", "l", &flags.X, "Left edge in page units", false).
		AddFlag(goflag.FlagString, "y", "t", &flags.Y, "Top edge in page units", false).
		AddFlag(goflag.FlagString, "width", "W", &flags.Width, "Width in page units", false).
		AddFlag(goflag.FlagString, "height", "H", &flags.Height, "Height in page units", false).
		AddFlag(goflag.FlagInt, "page", "P", &flags.Page, "1-based page number", false).
		AddFlag(goflag.FlagString, "scale", "S", &flags.Scale, "Zoom factor", false).
		AddFlag(goflag.FlagString, "kind", "k", &flags.Kind, "Force the document kind: pdf, html or text", false)

	return ctx
}

func main() {
	// UTF-8 fallback keeps non-ASCII document text readable on minimal terminals.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	logger, closer, err := config.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
	}
	defer func() { _ = closer.Close() }()

	flags := &cliFlags{Page: 1, Distance: unsetDistance}
	exitCode := 0
	ctx := defineFlags(flags, func(name string) {
		if err := runCommand(name, flags, logger, os.Stdout, term.IsTerminal(int(os.Stdout.Fd()))); err != nil {
			fmt.Fprintf(os.Stderr, "docmark %s: %v\n", name, err)
			exitCode = 1
		}
	})

	subcmd, err := ctx.Parse(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if subcmd == nil {
		ctx.PrintUsage(os.Stdout)
		os.Exit(1)
	}

	subcmd.Handler()
	if exitCode != 0 {
		_ = closer.Close()
		os.Exit(exitCode)
	}
}

func runCommand(name string, flags *cliFlags, logger *slog.Logger, out io.Writer, ansi bool) error {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	cfg.Logger = logger
	logger.Debug("command start", "command", name, "file", flags.File)

	switch name {
	case "view":
		return runView(flags, cfg)
	case "search":
		return runSearch(out, flags, cfg, ansi)
	case "rect":
		return runRect(out, flags, cfg)
	}
	return fmt.Errorf("unknown command %q", name)
}

func runView(flags *cliFlags, cfg *config.Config) error {
	defaults, err := apppkg.DefaultsFromConfig(cfg)
	if err != nil {
		return err
	}
	kind, err := parseKindFlag(flags.Kind)
	if err != nil {
		return err
	}

	app, err := apppkg.NewApplication(apppkg.Options{
		Defaults: defaults,
		Logger:   cfg.Logger,
		Path:     flags.File,
		Kind:     kind,
		MimeType: flags.MimeType,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	return nil
}

func parseKindFlag(s string) (statepkg.DocumentKind, error) {
	if s == "" {
		return statepkg.KindNone, nil
	}
	return statepkg.ParseDocumentKind(s)
}
