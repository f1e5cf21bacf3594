package fs

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

var (
	markupPolicy      = bluemonday.UGCPolicy()
	markdownConverter = converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
)

// decodeMarkup strips scripts and unsafe attributes, then flattens what is
// left into text that reads the way the page renders.
func decodeMarkup(name string, content []byte) (*Document, error) {
	raw := NormalizeTextContent(content)
	clean := markupPolicy.Sanitize(raw)
	text, err := markdownConverter.ConvertString(clean)
	if err != nil {
		return nil, fmt.Errorf("%s: flatten markup: %w", name, err)
	}
	text = norm.NFC.String(strings.TrimSpace(text))
	return &Document{Name: name, Format: FormatHTML, Text: text, Markup: clean}, nil
}
