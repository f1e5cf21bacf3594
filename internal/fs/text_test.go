package fs

import "testing"

func TestIsTextFileDetectsUTF16LE(t *testing.T) {
	content := []byte{0xFF, 0xFE, 0x41, 0x00, 0x0D, 0x00, 0x0A, 0x00}
	if !IsTextFile("notes.txt", content) {
		t.Fatalf("expected UTF-16 LE content to be treated as text")
	}
}

func TestIsTextFileRejectsBinary(t *testing.T) {
	if IsTextFile("", []byte{0x00, 0x01, 0x02, 0x03}) {
		t.Fatalf("expected NUL bytes to be treated as binary")
	}
	if IsTextFile("photo.png", []byte("plain")) {
		t.Fatalf("expected binary extension to short-circuit")
	}
}

func TestNormalizeTextContent(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{"utf16 le", []byte{0xFF, 0xFE, 0x41, 0x00, 0x0D, 0x00, 0x0A, 0x00}, "A\r\n"},
		{"utf16 be", []byte{0xFE, 0xFF, 0x00, 0x41, 0x00, 0x42}, "AB"},
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "hi"},
		{"decomposed accent composes", []byte("e\u0301t\u00e9"), "\u00e9t\u00e9"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTextContent(tt.content); got != tt.want {
				t.Fatalf("NormalizeTextContent returned %q, want %q", got, tt.want)
			}
		})
	}
}
