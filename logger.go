package layoutgen

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger constructs a zerolog.Logger with sane defaults for hosts that do
// not already carry one. Debug mode lowers the level and switches to the
// human-readable console writer.
func NewLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()

	if debug {
		logger = logger.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}

	return logger
}

// Logger aliases the zerolog.Logger so callers can depend on the logging
// contract without importing the third-party module directly. It keeps the
// freedom to replace the underlying logger in the future while presenting a
// stable surface area.
type Logger = zerolog.Logger
