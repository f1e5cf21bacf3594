package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	apppkg "github.com/kk-code-lab/docmark/internal/app"
	"github.com/kk-code-lab/docmark/internal/config"
	fsutil "github.com/kk-code-lab/docmark/internal/fs"
	"github.com/kk-code-lab/docmark/internal/search"
	statepkg "github.com/kk-code-lab/docmark/internal/state"
	"github.com/kk-code-lab/docmark/internal/textutil"
	"github.com/kk-code-lab/docmark/internal/viewport"
)

const (
	ansiHighlightOn   = "\x1b[7m"
	ansiHighlightOff  = "\x1b[27m"
	plainHighlightOn  = "["
	plainHighlightOff = "]"
)

func loadDocument(ctx context.Context, flags *cliFlags) (*fsutil.Document, error) {
	kind, err := parseKindFlag(flags.Kind)
	if err != nil {
		return nil, err
	}
	if kind != statepkg.KindNone {
		return fsutil.LoadFileAs(ctx, flags.File, statepkg.FormatForKind(kind))
	}
	return fsutil.LoadFile(ctx, flags.File, flags.MimeType)
}

// searchParams applies the search flags on top of the configured defaults.
func searchParams(flags *cliFlags, defaults statepkg.SearchParams) (statepkg.SearchParams, error) {
	params := defaults
	params.Text = flags.Pattern
	if flags.Mode != "" {
		mode, err := search.ParseMatchMode(flags.Mode)
		if err != nil {
			return params, err
		}
		params.Mode = mode
	}
	if flags.Distance != unsetDistance {
		params.MaxDistance = flags.Distance
	}
	if flags.Score != "" {
		v, err := strconv.ParseFloat(flags.Score, 64)
		if err != nil {
			return params, fmt.Errorf("invalid --score %q: %w", flags.Score, err)
		}
		params.MaxScore = v
	}
	if flags.Case != "" {
		v, err := strconv.ParseBool(flags.Case)
		if err != nil {
			return params, fmt.Errorf("invalid --case %q: %w", flags.Case, err)
		}
		params.CaseSensitive = v
	}
	if flags.WholeWord != "" {
		v, err := strconv.ParseBool(flags.WholeWord)
		if err != nil {
			return params, fmt.Errorf("invalid --whole-word %q: %w", flags.WholeWord, err)
		}
		params.WholeWord = v
	}
	return params, nil
}

// runSearch prints every matching line with its matches in reverse video,
// or in brackets when ansi is false. Paginated documents are searched page by
// page and prefixed with the page.
func runSearch(out io.Writer, flags *cliFlags, cfg *config.Config, ansi bool) error {
	defaults, err := apppkg.DefaultsFromConfig(cfg)
	if err != nil {
		return err
	}
	params, err := searchParams(flags, defaults.Search)
	if err != nil {
		return err
	}
	q := params.Query()

	ctx := context.Background()
	doc, err := loadDocument(ctx, flags)
	if err != nil {
		return err
	}

	pages := doc.Pages
	paginated := len(pages) > 0
	if !paginated {
		pages = []string{doc.Text}
	}
	hits, err := search.FindPageMatches(ctx, pages, q, defaults.Workers)
	if err != nil {
		return err
	}

	for _, pm := range hits {
		for _, line := range search.HighlightLines(pages[pm.Page-1], q) {
			if !line.Matched {
				continue
			}
			prefix := strconv.Itoa(line.Line)
			if paginated {
				prefix = fmt.Sprintf("p%d:%d", pm.Page, line.Line)
			}
			if q.Mode == search.ModeScored {
				prefix += fmt.Sprintf(" (%.2f)", line.Score)
			}
			fmt.Fprintf(out, "%s: %s\n", prefix, formatSegments(line.Segments, ansi))
		}
	}
	return nil
}

func formatSegments(segments []search.Segment, ansi bool) string {
	on, off := plainHighlightOn, plainHighlightOff
	if ansi {
		on, off = ansiHighlightOn, ansiHighlightOff
	}
	var b strings.Builder
	for _, seg := range segments {
		text := textutil.SanitizeTerminalText(seg.Text)
		if seg.Highlighted {
			b.WriteString(on)
			b.WriteString(text)
			b.WriteString(off)
			continue
		}
		b.WriteString(text)
	}
	return b.String()
}

func parseFloatFlag(name, value string, fallback float64) (float64, error) {
	if value == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return v, nil
}

// rectParams applies the rectangle flags on top of the configured rectangle.
func rectParams(flags *cliFlags, cfg *config.Config) (viewport.RectParams, error) {
	rect := viewport.RectParams{PageNumber: flags.Page}
	fields := []struct {
		name     string
		value    string
		fallback float64
		dst      *float64
	}{
		{"x", flags.X, cfg.Rect.X, &rect.X},
		{"y", flags.Y, cfg.Rect.Y, &rect.Y},
		{"width", flags.Width, cfg.Rect.Width, &rect.Width},
		{"height", flags.Height, cfg.Rect.Height, &rect.Height},
		{"scale", flags.Scale, cfg.Rect.Scale, &rect.Scale},
	}
	for _, f := range fields {
		v, err := parseFloatFlag(f.name, f.value, f.fallback)
		if err != nil {
			return rect, err
		}
		*f.dst = v
	}
	return rect.Clamped(), nil
}

// runRect prints where the rectangle lands on the rendered document. Flowing
// documents are laid out on a surface the size of the configured page.
func runRect(out io.Writer, flags *cliFlags, cfg *config.Config) error {
	rect, err := rectParams(flags, cfg)
	if err != nil {
		return err
	}
	doc, err := loadDocument(context.Background(), flags)
	if err != nil {
		return err
	}

	kind := statepkg.KindForFormat(doc.Format)
	model := kind.PagingModel()
	geom := viewport.PageGeometry{
		NaturalWidth:   cfg.Page.Width,
		NaturalHeight:  cfg.Page.Height,
		ViewportWidth:  cfg.Page.Width,
		ViewportHeight: cfg.Page.Height,
	}

	count := doc.PageCount()
	if model == viewport.PagingContinuous {
		count, err = flowPageCount(doc.Text, rect.Scale, cfg)
		if err != nil {
			return err
		}
	}
	rect.PageNumber = viewport.ClampPageNumber(rect.PageNumber, count)
	pages := "?"
	if count > 0 {
		pages = strconv.Itoa(count)
	}
	if size, ok := doc.NaturalSize(rect.PageNumber); ok {
		geom.NaturalWidth, geom.NaturalHeight = size.Width, size.Height
	}

	vr := viewport.ToViewportRect(rect, geom, model)
	overlay := viewport.OverlayColors(cfg.Search.HighlightColor)

	fmt.Fprintf(out, "kind: %s (%s)\n", kind, model)
	fmt.Fprintf(out, "page: %d/%s  natural: %sx%s\n", rect.PageNumber, pages,
		formatFloat(geom.NaturalWidth), formatFloat(geom.NaturalHeight))
	fmt.Fprintf(out, "rect: left=%s top=%s width=%s height=%s unit=%s visible=%t\n",
		formatFloat(vr.Left), formatFloat(vr.Top), formatFloat(vr.Width), formatFloat(vr.Height), vr.Unit, vr.Visible())
	fmt.Fprintf(out, "style: border=%s fill=%s\n", overlay.BorderHex(), overlay.FillCSS())
	return nil
}

// flowPageCount splits a flowing text into virtual pages the height of the
// configured page, wrapping it the way the viewer does.
func flowPageCount(text string, scale float64, cfg *config.Config) (int, error) {
	d, err := apppkg.DefaultsFromConfig(cfg)
	if err != nil {
		return 0, err
	}
	columns := 0
	if d.CellWidth > 0 {
		columns = int(cfg.Page.Width / d.CellWidth)
	}
	height := statepkg.ContentHeight(text, columns, d.TabWidth, d.CellHeight*scale)
	return viewport.VirtualPageCount(height, cfg.Page.Height), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
