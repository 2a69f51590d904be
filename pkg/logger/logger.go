// Package logger configures the process-wide zerolog logger.
//
// All output goes to stderr: in stdio transport mode stdout carries the
// MCP protocol stream and must stay clean.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger at the given level. Unknown levels fall
// back to info.
func New(level string) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(writer).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps a config level string to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
