package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAsyncDocumentLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("async content"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	loader := NewAsyncDocumentLoader(nil)
	results := make(chan DocumentLoadResult, 1)
	loader.Start(DocumentLoadRequest{
		Kind:       KindPlainText,
		Generation: 7,
		Path:       path,
		Callback:   func(res DocumentLoadResult) { results <- res },
	})

	select {
	case res := <-results:
		if res.Err != nil {
			t.Fatalf("load failed: %v", res.Err)
		}
		if res.Generation != 7 || res.Document == nil || res.Document.Text != "async content" {
			t.Fatalf("unexpected result %+v", res)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for loader")
	}
}

func TestAsyncDocumentLoaderIgnoresIncompleteRequests(t *testing.T) {
	loader := NewAsyncDocumentLoader(nil)
	called := make(chan struct{}, 1)
	loader.Start(DocumentLoadRequest{Kind: KindPlainText, Path: "x.txt", Callback: func(DocumentLoadResult) { called <- struct{}{} }})
	loader.Cancel(99)
	select {
	case <-called:
		t.Fatalf("request without generation should not run")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestReducerDispatchesAsyncLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("from disk"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	state, r := newTestState(t)
	actions := make(chan Action, 4)
	state.SetDispatch(func(a Action) { actions <- a })
	state.Loader = NewAsyncDocumentLoader(nil)

	mustReduce(t, r, state, LoadDocumentAction{Path: path, Select: true})
	if state.Loading[KindPlainText] != path {
		t.Fatalf("expected pending load marker, got %v", state.Loading)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case a := <-actions:
			mustReduce(t, r, state, a)
			if _, ok := a.(DocumentLoadedAction); ok {
				if got := state.ActiveView().Text; got != "from disk" {
					t.Fatalf("unexpected text %q", got)
				}
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for load result")
		}
	}
}
