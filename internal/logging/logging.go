// Package logging builds the structured zerolog logger every engine
// component threads through as a child logger, following the host
// application's pkg/logger convention.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls the root logger's verbosity and output format.
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // human-readable console output instead of JSON
}

// New builds the root logger. Component constructors derive their own
// child logger from it via .With().Str("component", "...").Logger() so log
// lines are attributable without every call site repeating the component
// name.
func New(cfg Config) zerolog.Logger {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stdout
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything, the default every
// component constructor falls back to when no logger is supplied. The
// engine's computation packages never require logging to function, they
// only benefit from it when present.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
