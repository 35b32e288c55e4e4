// server/logging/logging.go
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns the root logger. format "console" gives human readable output,
// anything else JSON lines. An unparsable level falls back to info.
func New(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "noteful").Logger()
}
