// Package logging provides leveled, structured logging for the todo tool.
// Log output goes to stderr so that command output on stdout stays clean.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Options holds configuration for a logger.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	Prefix          string
	Output          io.Writer
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Level:     log.WarnLevel,
		Formatter: log.TextFormatter,
		Prefix:    "todo",
		Output:    os.Stderr,
	}
}

var (
	mu            sync.Mutex
	defaultLogger *log.Logger
)

// New creates a logger from opts. TODO_DEBUG forces debug level.
func New(opts Options) *log.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := opts.Level
	if DebugEnabled() {
		level = log.DebugLevel
	}
	return log.NewWithOptions(out, log.Options{
		Level:           level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// NewFromConfig creates a logger from string settings as found in config files and env vars.
// A nil out writes to stderr.
func NewFromConfig(level, format string, verbose bool, out io.Writer) *log.Logger {
	opts := DefaultOptions()
	if out != nil {
		opts.Output = out
	}
	opts.Level = ParseLevel(level)
	opts.Formatter = ParseFormatter(format)
	if verbose && opts.Level > log.InfoLevel {
		opts.Level = log.InfoLevel
	}
	return New(opts)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Default returns the process-wide logger, creating it on first use.
func Default() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(DefaultOptions())
	}
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

// ParseLevel parses a level name, falling back to warn.
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

// ParseFormatter parses a formatter name, falling back to text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// IsValidLevel reports whether ParseLevel understands level.
func IsValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// IsValidFormat reports whether ParseFormatter understands format.
func IsValidFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text", "json", "logfmt":
		return true
	}
	return false
}
