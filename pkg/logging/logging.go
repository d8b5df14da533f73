// Package logging configures structured logging for splitfriends.
//
// Usage:
//
//	logging.Setup(os.Stderr, "info", "text") // colored tint output
//	logging.Setup(os.Stdout, "debug", "json") // slog JSON for log shipping
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Setup installs the default slog logger writing to w at the given level.
// format is "json" for slog's JSON handler, anything else for tint.
func Setup(w io.Writer, level, format string) {
	slog.SetDefault(New(w, ParseLevel(level), format))
}

// New builds a logger without installing it.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		}))
	}
	return slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
			NoColor:    !isTerminal(w),
		}),
	)
}

// ParseLevel maps debug, info, warn and error to slog levels (default: info).
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
