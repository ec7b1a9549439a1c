package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process-wide logger. All best-effort failure paths
// (persistence, health sync, companion messaging) log here and carry on;
// nothing in the session lifecycle surfaces those errors to the caller.
func New(level string) zerolog.Logger {
	return NewWithWriter(level, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.WarnLevel
	}
	return zerolog.New(w).Level(parsed).With().Timestamp().Logger()
}
