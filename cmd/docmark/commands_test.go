package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kk-code-lab/docmark/internal/config"
	"github.com/kk-code-lab/docmark/internal/search"
	statepkg "github.com/kk-code-lab/docmark/internal/state"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestSearchParams(t *testing.T) {
	defaults := statepkg.DefaultDefaults().Search

	tests := []struct {
		name    string
		flags   cliFlags
		check   func(statepkg.SearchParams) bool
		wantErr bool
	}{
		{
			name:  "defaults kept",
			flags: cliFlags{Pattern: "fox"},
			check: func(p statepkg.SearchParams) bool {
				return p.Text == "fox" && p.Mode == search.ModeExact && p.WholeWord && !p.CaseSensitive
			},
		},
		{
			name:  "distance mode",
			flags: cliFlags{Pattern: "fox", Mode: "distance", Distance: 2},
			check: func(p statepkg.SearchParams) bool { return p.Mode == search.ModeDistance && p.MaxDistance == 2 },
		},
		{
			name:  "score and case",
			flags: cliFlags{Pattern: "fox", Mode: "scored", Score: "0.25", Case: "true"},
			check: func(p statepkg.SearchParams) bool { return p.MaxScore == 0.25 && p.CaseSensitive },
		},
		{name: "bad mode", flags: cliFlags{Mode: "regex"}, wantErr: true},
		{name: "bad score", flags: cliFlags{Score: "high"}, wantErr: true},
		{name: "bad bool", flags: cliFlags{WholeWord: "maybe"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := searchParams(&tt.flags, defaults)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("searchParams: %v", err)
			}
			if !tt.check(got) {
				t.Fatalf("unexpected params %+v", got)
			}
		})
	}
}

func TestSearchParamsDistanceOverride(t *testing.T) {
	defaults := statepkg.DefaultDefaults().Search
	defaults.MaxDistance = 3

	tests := []struct {
		name     string
		distance int
		want     int
	}{
		{"unset keeps config", unsetDistance, 3},
		{"zero overrides config", 0, 0},
		{"explicit value", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := searchParams(&cliFlags{Pattern: "fox", Distance: tt.distance}, defaults)
			if err != nil {
				t.Fatalf("searchParams: %v", err)
			}
			if got.MaxDistance != tt.want {
				t.Fatalf("MaxDistance = %d, want %d", got.MaxDistance, tt.want)
			}
		})
	}
}

func TestRunSearchPrintsMatchingLines(t *testing.T) {
	path := writeTemp(t, "notes.txt", "alpha fox\nbeta\nfox fox")
	var out bytes.Buffer
	if err := runSearch(&out, &cliFlags{File: path, Pattern: "fox"}, config.Default(), true); err != nil {
		t.Fatalf("runSearch: %v", err)
	}

	want := "1: alpha " + ansiHighlightOn + "fox" + ansiHighlightOff + "\n" +
		"3: " + ansiHighlightOn + "fox" + ansiHighlightOff + " " + ansiHighlightOn + "fox" + ansiHighlightOff + "\n"
	if out.String() != want {
		t.Fatalf("unexpected output\n got %q\nwant %q", out.String(), want)
	}
}

func TestRunSearchScoredShowsScore(t *testing.T) {
	path := writeTemp(t, "notes.txt", "quick brown fox\nnothing here")
	var out bytes.Buffer
	flags := &cliFlags{File: path, Pattern: "quick", Mode: "scored", Score: "0.1"}
	if err := runSearch(&out, flags, config.Default(), false); err != nil {
		t.Fatalf("runSearch: %v", err)
	}
	if !strings.HasPrefix(out.String(), "1 (0.00): [quick]") {
		t.Fatalf("expected a perfect score on line 1, got %q", out.String())
	}
	if strings.Contains(out.String(), "nothing") {
		t.Fatalf("unrelated line printed: %q", out.String())
	}
}

func TestRunSearchRejectsUnsupportedFile(t *testing.T) {
	path := writeTemp(t, "blob.bin", "\x00\x01\x02\x03")
	if err := runSearch(&bytes.Buffer{}, &cliFlags{File: path, Pattern: "x"}, config.Default(), false); err == nil {
		t.Fatalf("expected error for binary file")
	}
}

func TestRunRectContinuous(t *testing.T) {
	path := writeTemp(t, "page.html", "<p>hello</p>")
	var out bytes.Buffer
	flags := &cliFlags{File: path, X: "50", Y: "50", Width: "100", Height: "100", Page: 1}
	if err := runRect(&out, flags, config.Default()); err != nil {
		t.Fatalf("runRect: %v", err)
	}

	for _, want := range []string{
		"kind: html (continuous)",
		"rect: left=50.00 top=50.00 width=100.00 height=100.00 unit=px visible=true",
		"style: border=#ffff00 fill=rgba(255, 255, 0, 0.1)",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunRectScaleAndEmpty(t *testing.T) {
	path := writeTemp(t, "notes.txt", "hello")
	var out bytes.Buffer
	flags := &cliFlags{File: path, Width: "0", Scale: "2", Page: 2}
	if err := runRect(&out, flags, config.Default()); err != nil {
		t.Fatalf("runRect: %v", err)
	}
	// One line fits on a single page, so page 2 clamps to 1.
	for _, want := range []string{
		"page: 1/1",
		"rect: left=0.00 top=0.00 width=0.00 height=200.00 unit=px visible=false",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunRectClampsFlowingPages(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "single page",
			content: "hello",
			want:    []string{"page: 1/1", "top=10.00"},
		},
		{
			// 100 rows of 12 units over an 842 high page.
			name:    "two pages",
			content: strings.Repeat("line\r\n", 99) + "line",
			want:    []string{"page: 2/2", "top=852.00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "notes.txt", tt.content)
			var out bytes.Buffer
			flags := &cliFlags{File: path, Y: "10", Page: 5}
			if err := runRect(&out, flags, config.Default()); err != nil {
				t.Fatalf("runRect: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Fatalf("output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestRectParamsRejectsBadFloat(t *testing.T) {
	if _, err := rectParams(&cliFlags{X: "left", Page: 1}, config.Default()); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFormatSegments(t *testing.T) {
	segments := []search.Segment{{Text: "a "}, {Text: "fox", Highlighted: true}, {Text: "\x1b[2J"}}
	tests := []struct {
		name string
		ansi bool
		want string
	}{
		{"plain markers", false, "a [fox]?[2J"},
		{"reverse video", true, "a " + ansiHighlightOn + "fox" + ansiHighlightOff + "?[2J"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSegments(segments, tt.ansi); got != tt.want {
				t.Fatalf("formatSegments = %q, want %q", got, tt.want)
			}
		})
	}
}
