package console

import (
	"fmt"
	"log/slog"
	"strings"
)

// levelVar filters every backend. Debug output is off until SetLevel("debug").
var levelVar = new(slog.LevelVar)

// SetLevel sets the minimum level from its textual name.
// Unknown names fall back to info.
func SetLevel(raw string) {
	levelVar.Set(ParseLevel(raw))
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to slog levels.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func enabled(level slog.Level) bool {
	return level >= levelVar.Level()
}

// message joins console-style variadic arguments the way the browser console prints them.
func message(args []any) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}
