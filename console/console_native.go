//go:build !(js && wasm)

package console

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Native builds have no browser console; records go to a JSON slog handler
// on stderr so the same call sites work in tests and in cmd tools.

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     levelVar,
		AddSource: false,
	}))
}

// SetOutput redirects native log records to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

// Logger returns the slog logger backing the native console.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func emit(level slog.Level, args []any) {
	if !enabled(level) {
		return
	}
	Logger().Log(context.Background(), level, message(args))
}

// Debug logs at debug level.
func Debug(args ...any) {
	emit(slog.LevelDebug, args)
}

// Log logs at info level.
func Log(args ...any) {
	emit(slog.LevelInfo, args)
}

// Warn logs at warn level.
func Warn(args ...any) {
	emit(slog.LevelWarn, args)
}

// Error logs at error level.
func Error(args ...any) {
	emit(slog.LevelError, args)
}
