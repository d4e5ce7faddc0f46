package awesomemap

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger creates a logger for map diagnostics. Timestamps are formatted as
// "HH:MM:SS.ms" and every line carries the "awesomemap" prefix.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Prefix:          "awesomemap",
		Level:           level,
	})
}

// defaultLogger writes warnings and errors to stderr, or everything down to
// debug when cfg.Debug is set.
func defaultLogger(cfg Config) *log.Logger {
	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	return NewLogger(os.Stderr, level)
}
