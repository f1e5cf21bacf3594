package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// PageSize is a natural page size in points.
type PageSize struct {
	Width  float64
	Height float64
}

// Document is the decoded form of an uploaded file.
type Document struct {
	Name   string
	Format Format
	// Text is the searchable content. For PDFs it is the page texts joined
	// with newlines.
	Text string
	// Markup is the sanitised HTML source, set for FormatHTML only.
	Markup string
	// Pages and PageSizes are set for FormatPDF only.
	Pages     []string
	PageSizes []PageSize
}

// PageCount reports the number of real pages, or 0 for flowing formats whose
// page count depends on the viewport.
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// NaturalSize returns the size of the 1-based page, if the format has one.
func (d *Document) NaturalSize(page int) (PageSize, bool) {
	if d == nil || page < 1 || page > len(d.PageSizes) {
		return PageSize{}, false
	}
	return d.PageSizes[page-1], true
}

// Decode turns raw bytes into a Document. The format comes from mimeType or
// the name's extension; content sniffing is the last resort.
func Decode(name, mimeType string, content []byte) (*Document, error) {
	format, err := DetectFormat(name, mimeType)
	if err != nil {
		if !errors.Is(err, ErrUnsupportedKind) {
			return nil, err
		}
		if format = SniffFormat(content); format == FormatUnknown {
			return nil, err
		}
	}
	return DecodeAs(format, name, content)
}

// DecodeAs decodes content with an explicit format.
func DecodeAs(format Format, name string, content []byte) (*Document, error) {
	switch format {
	case FormatPDF:
		return decodePDF(name, content)
	case FormatHTML:
		return decodeMarkup(name, content)
	case FormatText:
		return decodePlainText(name, content)
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedKind)
	}
}

// LoadFile reads and decodes path. ctx is checked before and after the read.
func LoadFile(ctx context.Context, path, mimeType string) (*Document, error) {
	content, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return Decode(filepath.Base(path), mimeType, content)
}

// LoadFileAs reads path and decodes it with an explicit format.
func LoadFileAs(ctx context.Context, path string, format Format) (*Document, error) {
	content, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return DecodeAs(format, filepath.Base(path), content)
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return content, nil
}
