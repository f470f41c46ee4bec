package gridhost

import (
	"io"
	"log/slog"
)

// NewLogger returns a text logger writing to w at info level, or debug
// level when verbose is set.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
