// Package logging builds the charmbracelet/log logger shared by the
// store, the codec, and the CLI.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Prefix is shown at the start of every log line.
const Prefix = "todo"

// New returns a logger writing to w at the named level.
// Unknown level names fall back to warn.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:  ParseLevel(level),
		Prefix: Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel parses a level name to a charmbracelet/log Level.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}
