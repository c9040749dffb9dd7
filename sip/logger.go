package sip

import (
	"os"

	"github.com/rs/zerolog"
)

// defaultLogger is the package-wide fallback used by a Parser created
// without WithParserLogger.
var defaultLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().
	Level(zerolog.InfoLevel)

// SetDefaultLogger overrides the logger new Parsers pick up by default.
// Must be called before NewParser if a custom logger is required.
func SetDefaultLogger(l zerolog.Logger) {
	defaultLogger = l
}

// DefaultLogger returns the logger used by Parsers that were not given an
// explicit WithParserLogger option.
func DefaultLogger() zerolog.Logger {
	return defaultLogger
}
