// Package logger provides structured logging using zerolog.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	levelDebug = "debug"
	levelInfo  = "info"
	levelWarn  = "warn"
	levelError = "error"
)

// Log is the global logger instance. It discards everything until Init is called.
var Log = zerolog.Nop()

// Init initializes the global logger with the given level and output format.
// A nil writer means stderr.
func Init(level string, pretty bool, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339

	if w == nil {
		w = os.Stderr
	}
	if pretty {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
		}
	}

	zerolog.SetGlobalLevel(ParseLevel(level))

	Log = zerolog.New(w).
		With().
		Timestamp().
		Logger()
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return Log.With().Str("component", name).Logger()
}

// ParseLevel converts a string log level to zerolog.Level.
// Unknown values fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case levelDebug:
		return zerolog.DebugLevel
	case levelInfo:
		return zerolog.InfoLevel
	case levelWarn:
		return zerolog.WarnLevel
	case levelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
