package state

import (
	"context"
	"log/slog"
	"sync"

	fsutil "github.com/kk-code-lab/docmark/internal/fs"
)

// DocumentLoader decodes documents asynchronously.
type DocumentLoader interface {
	Start(req DocumentLoadRequest)
	Cancel(generation uint64)
}

// DocumentLoadRequest describes the file to decode.
type DocumentLoadRequest struct {
	Kind       DocumentKind
	Generation uint64
	Path       string
	Callback   func(DocumentLoadResult)
}

// DocumentLoadResult carries the decoded document or any error.
type DocumentLoadResult struct {
	Kind       DocumentKind
	Generation uint64
	Path       string
	Document   *fsutil.Document
	Err        error
}

// NewAsyncDocumentLoader constructs the default goroutine-based loader.
func NewAsyncDocumentLoader(logger *slog.Logger) DocumentLoader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &asyncDocumentLoader{
		jobs:   make(map[uint64]context.CancelFunc),
		logger: logger,
	}
}

type asyncDocumentLoader struct {
	mu     sync.Mutex
	jobs   map[uint64]context.CancelFunc
	logger *slog.Logger
}

func (l *asyncDocumentLoader) Start(req DocumentLoadRequest) {
	if req.Generation == 0 || req.Path == "" || req.Callback == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.mu.Lock()
	l.jobs[req.Generation] = cancel
	l.mu.Unlock()

	go func() {
		defer func() {
			l.mu.Lock()
			delete(l.jobs, req.Generation)
			l.mu.Unlock()
		}()

		l.logger.Debug("load start", "kind", req.Kind, "generation", req.Generation, "path", req.Path)
		doc, err := fsutil.LoadFileAs(ctx, req.Path, FormatForKind(req.Kind))

		select {
		case <-ctx.Done():
			l.logger.Debug("load cancelled", "generation", req.Generation)
			return
		default:
		}

		req.Callback(DocumentLoadResult{
			Kind:       req.Kind,
			Generation: req.Generation,
			Path:       req.Path,
			Document:   doc,
			Err:        err,
		})
	}()
}

func (l *asyncDocumentLoader) Cancel(generation uint64) {
	l.mu.Lock()
	if cancel, ok := l.jobs[generation]; ok {
		cancel()
		delete(l.jobs, generation)
	}
	l.mu.Unlock()
}
