//go:build js && wasm

package console

import (
	"log/slog"
	"syscall/js"
)

func call(method string, level slog.Level, args []any) {
	if !enabled(level) {
		return
	}
	console := js.Global().Get("console")
	console.Call(method, message(args))
}

func Debug(args ...any) {
	call("debug", slog.LevelDebug, args)
}

func Log(args ...any) {
	call("log", slog.LevelInfo, args)
}

func Warn(args ...any) {
	call("warn", slog.LevelWarn, args)
}

func Error(args ...any) {
	call("error", slog.LevelError, args)
}
