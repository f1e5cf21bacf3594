package state

import (
	"testing"

	fsutil "github.com/kk-code-lab/docmark/internal/fs"
)

func TestRegistrySelectKindRestoresContent(t *testing.T) {
	r := NewRegistry()
	r.Upload(KindPaginated, "a.pdf", "pdf text")
	r.Upload(KindMarkup, "b.html", "markup text")

	if v := r.SelectKind(KindMarkup); v.Text != "markup text" || v.Handle != "b.html" {
		t.Fatalf("unexpected markup view %+v", v)
	}
	if v := r.SelectKind(KindPaginated); v.Text != "pdf text" || v.Kind != KindPaginated {
		t.Fatalf("unexpected pdf view %+v", v)
	}
	if v := r.SelectKind(KindMarkup); v.Text != "markup text" {
		t.Fatalf("markup content lost after switching: %+v", v)
	}
	if v := r.SelectKind(KindPlainText); v.Loaded || v.Text != "" {
		t.Fatalf("empty slot leaked content: %+v", v)
	}
}

func TestRegistryUploadClearsPageCount(t *testing.T) {
	r := NewRegistry()
	r.SelectKind(KindMarkup)
	r.Upload(KindMarkup, "a.html", "one")
	r.ReportPageCount(KindMarkup, 4)
	if got := r.View().PageCount; got != 4 {
		t.Fatalf("expected page count 4, got %d", got)
	}
	r.Upload(KindMarkup, "b.html", "two")
	if v := r.View(); v.PageCountKnown() || v.Text != "two" {
		t.Fatalf("expected replaced content with unknown page count, got %+v", v)
	}
}

func TestRegistryReportPageCountForInactiveKind(t *testing.T) {
	r := NewRegistry()
	r.Upload(KindPaginated, "a.pdf", "pdf")
	r.Upload(KindMarkup, "b.html", "html")
	r.SelectKind(KindMarkup)
	r.ReportPageCount(KindMarkup, 2)

	if changed := r.ReportPageCount(KindPaginated, 7); changed {
		t.Fatalf("inactive report should not change the active view")
	}
	if got := r.View().PageCount; got != 2 {
		t.Fatalf("active view picked up another kind's count: %d", got)
	}
	if got := r.SelectKind(KindPaginated).PageCount; got != 7 {
		t.Fatalf("stored count not projected after selecting: %d", got)
	}
}

func TestRegistryDropsSupersededLoads(t *testing.T) {
	r := NewRegistry()
	first := r.BeginLoad(KindPlainText)
	second := r.BeginLoad(KindPlainText)

	if r.CompleteLoad(KindPlainText, first, "old.txt", &fsutil.Document{Text: "old"}) {
		t.Fatalf("superseded load must be dropped")
	}
	if !r.CompleteLoad(KindPlainText, second, "new.txt", &fsutil.Document{Text: "new"}) {
		t.Fatalf("current load must apply")
	}
	if inst := r.Instance(KindPlainText); inst.Text != "new" || !inst.Loaded {
		t.Fatalf("unexpected instance %+v", inst)
	}

	pending := r.BeginLoad(KindPlainText)
	r.Upload(KindPlainText, "direct.txt", "direct")
	if r.CompleteLoad(KindPlainText, pending, "late.txt", &fsutil.Document{Text: "late"}) {
		t.Fatalf("upload should supersede a pending load")
	}
	if got := r.Instance(KindPlainText).Text; got != "direct" {
		t.Fatalf("stale load resurrected content: %q", got)
	}
}

func TestRegistryReportPageCountAtChecksGeneration(t *testing.T) {
	r := NewRegistry()
	gen := r.Upload(KindMarkup, "a.html", "a")
	r.SelectKind(KindMarkup)
	r.Upload(KindMarkup, "b.html", "b")
	if r.ReportPageCountAt(KindMarkup, gen, 9) {
		t.Fatalf("stale measurement must be ignored")
	}
	if got := r.View().PageCount; got != 0 {
		t.Fatalf("stale count applied: %d", got)
	}
	if !r.ReportPageCountAt(KindMarkup, r.Generation(KindMarkup), 3) {
		t.Fatalf("current measurement must apply")
	}
}

func TestRegistryReset(t *testing.T) {
	r := NewRegistry()
	r.Upload(KindPaginated, "a.pdf", "a")
	r.SelectKind(KindPaginated)
	pending := r.BeginLoad(KindMarkup)

	r.Reset()

	if r.Active() != KindNone {
		t.Fatalf("expected no active kind, got %v", r.Active())
	}
	for _, k := range Kinds {
		if inst := r.Instance(k); inst.Loaded || inst.Text != "" {
			t.Fatalf("slot %v not cleared: %+v", k, inst)
		}
	}
	if r.CompleteLoad(KindMarkup, pending, "late.html", &fsutil.Document{Text: "late"}) {
		t.Fatalf("reset should invalidate pending loads")
	}
	if v := r.View(); v.Loaded || v.Kind != KindNone {
		t.Fatalf("unexpected view after reset %+v", v)
	}
}

func TestKindHelpers(t *testing.T) {
	tests := []struct {
		name, mime string
		want       DocumentKind
	}{
		{"doc.pdf", "", KindPaginated},
		{"x", "application/pdf", KindPaginated},
		{"page.htm", "", KindMarkup},
		{"x", "text/html", KindMarkup},
		{"notes.txt", "", KindPlainText},
	}
	for _, tt := range tests {
		got, err := KindForFile(tt.name, tt.mime)
		if err != nil || got != tt.want {
			t.Errorf("KindForFile(%q, %q) = %v, %v; want %v", tt.name, tt.mime, got, err, tt.want)
		}
	}
	if _, err := KindForFile("image.png", ""); err == nil {
		t.Errorf("expected error for unsupported file")
	}
	if KindNone.Next() != KindPaginated || KindPlainText.Next() != KindPaginated {
		t.Errorf("unexpected kind cycle")
	}
	if k, err := ParseDocumentKind("markup"); err != nil || k != KindMarkup {
		t.Errorf("ParseDocumentKind(markup) = %v, %v", k, err)
	}
}
