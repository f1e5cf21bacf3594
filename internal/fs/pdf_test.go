package fs

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"
)

// buildTestPDF writes a minimal uncompressed PDF with one page per content
// stream, all pages sharing the given MediaBox size.
func buildTestPDF(t *testing.T, width, height float64, contents ...string) []byte {
	t.Helper()
	var b bytes.Buffer
	var offsets []int
	object := func(body string) {
		offsets = append(offsets, b.Len())
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	b.WriteString("%PDF-1.4\n")
	var kids bytes.Buffer
	for i := range contents {
		fmt.Fprintf(&kids, "%d 0 R ", 4+2*i)
	}
	object("<< /Type /Catalog /Pages 2 0 R >>")
	object(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", bytes.TrimSpace(kids.Bytes()), len(contents)))
	object("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	for i, content := range contents {
		object(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			width, height, 5+2*i))
		object(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return b.Bytes()
}

func TestDecodePDF(t *testing.T) {
	tests := []struct {
		name     string
		contents []string
		want     []string
	}{
		{
			name:     "multi-line stream",
			contents: []string{"BT\n/F1 12 Tf\n72 712 Td\n(Hello World) Tj\nET"},
			want:     []string{"Hello World"},
		},
		{
			name:     "single-line stream",
			contents: []string{"BT /F1 12 Tf 72 712 Td (Hello World) Tj ET"},
			want:     []string{"Hello World"},
		},
		{
			name: "two pages",
			contents: []string{
				"BT /F1 12 Tf 72 712 Td (Hello) Tj ET",
				"BT /F1 12 Tf 72 712 Td [(Sec) -20 (ond)] TJ 0 -14 Td <70616765> Tj ET",
			},
			want: []string{"Hello", "Second\npage"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode("test.pdf", "", buildTestPDF(t, 612, 792, tt.contents...))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if doc.Format != FormatPDF {
				t.Fatalf("format = %v, want pdf", doc.Format)
			}
			if doc.PageCount() != len(tt.contents) {
				t.Fatalf("PageCount = %d, want %d", doc.PageCount(), len(tt.contents))
			}
			for i := range tt.contents {
				size, ok := doc.NaturalSize(i + 1)
				if !ok || size != (PageSize{Width: 612, Height: 792}) {
					t.Fatalf("page %d size = %+v, %v", i+1, size, ok)
				}
			}
			if !reflect.DeepEqual(doc.Pages, tt.want) {
				t.Fatalf("Pages = %q, want %q", doc.Pages, tt.want)
			}
		})
	}
}

func TestTextFromContentStream(t *testing.T) {
	stream := []byte(`BT
/F1 12 Tf
72 712 Td
(Hello, ) Tj
(World) Tj
0 -14 Td
[(Sec) 20 (ond line)] TJ
T*
(Third \(quoted\) line) Tj
ET`)
	got := textFromContentStream(stream)
	want := "Hello, World\nSecond line\nThird (quoted) line"
	if got != want {
		t.Fatalf("textFromContentStream = %q, want %q", got, want)
	}
}

func TestDecodePDFString(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`plain`, "plain"},
		{`a\nb`, "a\nb"},
		{`\101\102`, "AB"},
		{`tab\there`, "tab\there"},
		{`x\\y`, `x\y`},
	}
	for _, tt := range tests {
		if got := decodePDFString([]byte(tt.raw)); got != tt.want {
			t.Errorf("decodePDFString(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestTextFromContentStreamSingleLine(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{"show", "BT /F1 12 Tf 72 712 Td (Hello World) Tj ET", "Hello World"},
		{"next line quote", "BT (one) Tj (two) ' ET", "one\ntwo"},
		{"nested parens", "BT (a (b) c) Tj ET", "a (b) c"},
		{"hex string", "BT <48 69> Tj ET", "Hi"},
		{"marked content dict", "/Span <</MCID 0>> BDC BT (x) Tj ET EMC", "x"},
		{"comment skipped", "BT % (hidden) Tj\n(shown) Tj ET", "shown"},
		{"operands cleared by other operators", "BT (lost) 0 0 Td (kept) Tj ET", "kept"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textFromContentStream([]byte(tt.stream)); got != tt.want {
				t.Fatalf("textFromContentStream = %q, want %q", got, tt.want)
			}
		})
	}
}
