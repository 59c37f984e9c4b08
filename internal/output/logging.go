package output

import (
	"io"
	"log/slog"
	"math"
)

// SetupLogger creates a slog.Logger for the given verbosity, writing to w
// (typically os.Stderr).
//
// Level mapping, highest priority first:
//   - quiet: all messages suppressed
//   - debug: slog.LevelDebug
//   - verbose: slog.LevelInfo
//   - default: slog.LevelWarn
func SetupLogger(quiet, verbose, debug bool, w io.Writer) *slog.Logger {
	var level slog.Level

	switch {
	case quiet:
		level = slog.Level(math.MaxInt)
	case debug:
		level = slog.LevelDebug
	case verbose:
		level = slog.LevelInfo
	default:
		level = slog.LevelWarn
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
