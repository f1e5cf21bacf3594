package state

import (
	"fmt"
	"strings"

	fsutil "github.com/kk-code-lab/docmark/internal/fs"
	"github.com/kk-code-lab/docmark/internal/viewport"
)

// DocumentKind selects an instance slot and the parameter set that goes with it.
type DocumentKind int

const (
	KindNone DocumentKind = iota
	KindPaginated
	KindMarkup
	KindPlainText
)

// Kinds lists every selectable kind in cycling order.
var Kinds = []DocumentKind{KindPaginated, KindMarkup, KindPlainText}

func (k DocumentKind) String() string {
	switch k {
	case KindPaginated:
		return "pdf"
	case KindMarkup:
		return "html"
	case KindPlainText:
		return "text"
	default:
		return "none"
	}
}

// Next returns the kind after k, wrapping around. KindNone starts the cycle.
func (k DocumentKind) Next() DocumentKind {
	for i, candidate := range Kinds {
		if candidate == k {
			return Kinds[(i+1)%len(Kinds)]
		}
	}
	return Kinds[0]
}

// PagingModel reports how pages of this kind are laid out.
func (k DocumentKind) PagingModel() viewport.PagingModel {
	if k == KindPaginated {
		return viewport.PagingDiscrete
	}
	return viewport.PagingContinuous
}

// ParseDocumentKind accepts the names produced by String plus a few aliases.
func ParseDocumentKind(s string) (DocumentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf", "paginated":
		return KindPaginated, nil
	case "html", "htm", "markup":
		return KindMarkup, nil
	case "text", "txt", "plain":
		return KindPlainText, nil
	default:
		return KindNone, fmt.Errorf("unknown document kind %q", s)
	}
}

// KindForFormat maps a decoded format to its slot.
func KindForFormat(f fsutil.Format) DocumentKind {
	switch f {
	case fsutil.FormatPDF:
		return KindPaginated
	case fsutil.FormatHTML:
		return KindMarkup
	case fsutil.FormatText:
		return KindPlainText
	default:
		return KindNone
	}
}

// FormatForKind is the inverse of KindForFormat.
func FormatForKind(k DocumentKind) fsutil.Format {
	switch k {
	case KindPaginated:
		return fsutil.FormatPDF
	case KindMarkup:
		return fsutil.FormatHTML
	case KindPlainText:
		return fsutil.FormatText
	default:
		return fsutil.FormatUnknown
	}
}

// KindForFile picks a kind from a MIME type or file name.
func KindForFile(name, mimeType string) (DocumentKind, error) {
	f, err := fsutil.DetectFormat(name, mimeType)
	if err != nil {
		return KindNone, err
	}
	return KindForFormat(f), nil
}
