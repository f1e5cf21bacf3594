package fs

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/unicode/norm"
)

// Natural page size assumed when a document does not report one (A4 in points).
const (
	DefaultPageWidth  = 595
	DefaultPageHeight = 842
)

var pdfMagic = []byte("%PDF-")

func decodePDF(name string, content []byte) (*Document, error) {
	if !bytes.Contains(content[:min(len(content), 1024)], pdfMagic) {
		return nil, fmt.Errorf("%s: missing pdf header", name)
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(content), conf)
	if err != nil {
		return nil, fmt.Errorf("%s: read pdf: %w", name, err)
	}
	if ctx.PageCount < 1 {
		return nil, fmt.Errorf("%s: no pages: %w", name, ErrEmptyDocument)
	}

	doc := &Document{
		Name:      name,
		Format:    FormatPDF,
		Pages:     make([]string, ctx.PageCount),
		PageSizes: make([]PageSize, ctx.PageCount),
	}

	dims, err := ctx.PageDims()
	for i := range doc.PageSizes {
		size := PageSize{Width: DefaultPageWidth, Height: DefaultPageHeight}
		if err == nil && i < len(dims) && dims[i].Width > 0 && dims[i].Height > 0 {
			size = PageSize{Width: dims[i].Width, Height: dims[i].Height}
		}
		doc.PageSizes[i] = size
	}

	for i := range doc.Pages {
		doc.Pages[i] = pageText(ctx, i+1)
	}
	doc.Text = strings.Join(doc.Pages, "\n")
	return doc, nil
}

func pageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	return norm.NFC.String(textFromContentStream(data))
}

// textFromContentStream collects string operands of the text showing
// operators. Line moves start a new output line. Operators are found by
// tokenizing, so streams written on a single line work as well.
func textFromContentStream(data []byte) string {
	var lines []string
	var current strings.Builder
	var operands []string
	flush := func() {
		line := strings.TrimRight(current.String(), " ")
		if line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}
	show := func() {
		for _, op := range operands {
			current.WriteString(op)
		}
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case isPDFWhitespace(c), c == '[', c == ']', c == '{', c == '}':
			i++
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '(':
			raw, next := readPDFLiteral(data, i)
			operands = append(operands, decodePDFString(raw))
			i = next
		case c == '<' && i+1 < len(data) && data[i+1] == '<', c == '>' && i+1 < len(data) && data[i+1] == '>':
			i += 2
		case c == '<':
			end := bytes.IndexByte(data[i:], '>')
			if end < 0 {
				end = len(data) - i
			}
			operands = append(operands, decodePDFHex(data[i+1:i+end]))
			i += end + 1
		case c == '/':
			i = skipPDFToken(data, i+1)
		default:
			next := skipPDFToken(data, i+1)
			token := string(data[i:next])
			i = next
			if isPDFNumber(token) {
				continue
			}
			switch token {
			case "Tj", "TJ":
				show()
			case "'", `"`:
				flush()
				show()
			case "Td", "TD", "T*", "ET":
				flush()
			case "ID":
				// Inline image data runs up to the EI operator.
				if end := bytes.Index(data[i:], []byte("EI")); end >= 0 {
					i += end + 2
				} else {
					i = len(data)
				}
			}
			operands = operands[:0]
		}
	}
	flush()
	return strings.Join(lines, "\n")
}

func isPDFWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}

func isPDFDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return isPDFWhitespace(c)
}

func skipPDFToken(data []byte, i int) int {
	for i < len(data) && !isPDFDelimiter(data[i]) {
		i++
	}
	return i
}

func isPDFNumber(token string) bool {
	_, err := strconv.ParseFloat(token, 64)
	return err == nil
}

// readPDFLiteral returns the raw bytes of the literal string opening at
// data[start] and the index just past its closing parenthesis. Balanced
// parentheses may appear unescaped inside.
func readPDFLiteral(data []byte, start int) ([]byte, int) {
	depth := 0
	for i := start; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return data[start+1 : i], i + 1
			}
		}
	}
	return data[start+1:], len(data)
}

func decodePDFHex(raw []byte) string {
	digits := make([]byte, 0, len(raw)+1)
	for _, c := range raw {
		if !isPDFWhitespace(c) {
			digits = append(digits, c)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, hex.DecodedLen(len(digits)))
	n, err := hex.Decode(out, digits)
	if err != nil {
		return ""
	}
	return string(out[:n])
}

func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] < '0' || raw[i] > '7' {
				sb.WriteByte(raw[i])
				continue
			}
			val := 0
			for n := 0; n < 3 && i < len(raw) && raw[i] >= '0' && raw[i] <= '7'; n++ {
				val = val*8 + int(raw[i]-'0')
				i++
			}
			i--
			sb.WriteByte(byte(val))
		}
	}
	return sb.String()
}
