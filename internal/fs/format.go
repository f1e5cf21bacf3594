package fs

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedKind is returned when a file is neither a paginated
	// document, markup, nor plain text.
	ErrUnsupportedKind = errors.New("unsupported document kind")
	// ErrEmptyDocument is returned when decoding produced no usable content.
	ErrEmptyDocument = errors.New("empty document")
)

// Format identifies how uploaded bytes are decoded.
type Format int

const (
	FormatUnknown Format = iota
	FormatPDF
	FormatHTML
	FormatText
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatHTML:
		return "html"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

var mimeFormats = map[string]Format{
	"application/pdf":       FormatPDF,
	"text/html":             FormatHTML,
	"application/xhtml+xml": FormatHTML,
	"text/plain":            FormatText,
}

var extensionFormats = map[string]Format{
	".pdf":   FormatPDF,
	".html":  FormatHTML,
	".htm":   FormatHTML,
	".xhtml": FormatHTML,
	".txt":   FormatText,
	".text":  FormatText,
	".log":   FormatText,
	".md":    FormatText,
}

// DetectFormat picks a format from the MIME type when one is given and
// falls back to the file extension.
func DetectFormat(name, mimeType string) (Format, error) {
	if mimeType != "" {
		mediaType, _, err := mime.ParseMediaType(mimeType)
		if err == nil {
			if f, ok := mimeFormats[strings.ToLower(mediaType)]; ok {
				return f, nil
			}
		}
	}
	ext := strings.ToLower(filepath.Ext(name))
	if f, ok := extensionFormats[ext]; ok {
		return f, nil
	}
	return FormatUnknown, fmt.Errorf("%s: %w", name, ErrUnsupportedKind)
}

// SniffFormat looks at the leading bytes of content. It is used when neither
// a MIME type nor a known extension is available.
func SniffFormat(content []byte) Format {
	head := content
	if len(head) > textDetectionSampleSize {
		head = head[:textDetectionSampleSize]
	}
	if bytes.HasPrefix(head, pdfMagic) {
		return FormatPDF
	}
	trimmed := bytes.ToLower(bytes.TrimSpace(head))
	if bytes.HasPrefix(trimmed, []byte("<!doctype html")) || bytes.HasPrefix(trimmed, []byte("<html")) {
		return FormatHTML
	}
	if IsTextFile("", head) {
		return FormatText
	}
	return FormatUnknown
}
