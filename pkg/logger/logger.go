package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"demo-credit/config"

	"github.com/rs/zerolog"
)

// Service is stamped on every event so shipped logs can be filtered per process.
const Service = "demo-credit"

// New builds the process logger from the log section of the config.
// Pretty switches to console output for local runs.
func New(cfg config.LogConfig) zerolog.Logger {
	var w io.Writer = os.Stdout
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return base(w, cfg.Level).Caller().Logger()
}

// NewWithWriter writes JSON events to w. Tests use it to capture output.
func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	return base(w, level).Logger()
}

func base(w io.Writer, level string) zerolog.Context {
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("service", Service)
}

// ParseLevel maps a configured level name to zerolog. Unknown or empty names mean info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
