package app

import (
	"io"
	"log/slog"

	"github.com/valv/kitbag/enumset"
)

// LogLevels maps the CLI level names onto slog levels.
var LogLevels = enumset.Must(
	enumset.Pair[slog.Level]{Name: "debug", Value: slog.LevelDebug},
	enumset.Pair[slog.Level]{Name: "info", Value: slog.LevelInfo},
	enumset.Pair[slog.Level]{Name: "warn", Value: slog.LevelWarn},
	enumset.Pair[slog.Level]{Name: "error", Value: slog.LevelError},
)

// LogFormats holds the supported handler formats.
var LogFormats = enumset.Must(
	enumset.Pair[string]{Name: "text", Value: "text"},
	enumset.Pair[string]{Name: "json", Value: "json"},
)

// newLogger creates and configures a new slog.Logger instance. It does not
// set the global logger, allowing for isolated logger instances. Unknown
// names fall back to info/text; the CLI validates them before this runs.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level, err := LogLevels.Parse(levelStr)
	if err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(outW, handlerOpts))
}
