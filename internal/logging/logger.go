package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// replaceAttr standardizes common keys (e.g., "error" -> "err").
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

// New creates a configured application logger.
// It writes to Stderr so command output on Stdout stays machine readable.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	}))
}

// NewJSON creates a JSON logger for long-running servers.
func NewJSON(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}
