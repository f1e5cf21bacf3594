package textutil

import (
	"reflect"
	"testing"
)

func TestWrapOffsets(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  []int
	}{
		{"fits", "hello", 10, []int{0}},
		{"exact fit", "hello", 5, []int{0}},
		{"wraps", "abcdefgh", 3, []int{0, 3, 6}},
		{"wide runes", "日本語", 4, []int{0, 2}},
		{"empty", "", 5, []int{0}},
		{"zero width", "abc", 0, []int{0}},
		{"tab expands", "a\tb", 4, []int{0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapOffsets([]rune(tt.line), tt.width, 4)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("WrapOffsets(%q, %d) = %v, want %v", tt.line, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrappedRowCount(t *testing.T) {
	lines := []string{"abcdef", "", "ab"}
	if got := WrappedRowCount(lines, 3, 4); got != 4 {
		t.Fatalf("WrappedRowCount = %d, want 4", got)
	}
}

func TestCellWidth(t *testing.T) {
	if got := CellWidth('\t', 1, 4); got != 3 {
		t.Fatalf("tab at column 1 = %d, want 3", got)
	}
	if got := CellWidth(0x200B, 0, 4); got != DisplayWidth("⟪ZWSP⟫") {
		t.Fatalf("formatting rune width = %d", got)
	}
	if got := CellWidth('x', 0, 4); got != 1 {
		t.Fatalf("ascii width = %d", got)
	}
}
