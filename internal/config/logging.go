package config

import (
	"io"
	"log/slog"
	"os"
)

// DebugFileEnv names the file that receives debug logs.
const DebugFileEnv = "DOCMARK_DEBUG_FILE"

// NewLogger opens the debug log named by DOCMARK_DEBUG_FILE. Without it the
// returned logger discards everything. The closer must be called on exit.
func NewLogger() (*slog.Logger, io.Closer, error) {
	path := os.Getenv(DebugFileEnv)
	if path == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return slog.New(slog.DiscardHandler), nopCloser{}, err
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
