// Package logging wraps hclog with the small leveled surface the rest of the
// tool uses. Color state is shared with display formatting through the term
// package; an optional file sink receives the same lines uncolored.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/backmassage/framescript/internal/config"
	"github.com/backmassage/framescript/internal/term"
)

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	hc      hclog.Logger
	verbose bool
	file    *os.File
}

// NewLogger configures colors from cfg (via term) and optionally opens
// cfg.LogFile. Call Close() when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	l := &Logger{verbose: cfg.Verbose}

	out := io.Writer(os.Stdout)
	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		out = io.MultiWriter(os.Stdout, f)
	}

	level := hclog.Info
	if cfg.Verbose {
		level = hclog.Debug
	}
	color := hclog.ColorOff
	if term.Enabled() {
		color = hclog.ForceColor
	}

	l.hc = hclog.New(&hclog.LoggerOptions{
		Name:   "framescript",
		Level:  level,
		Output: out,
		Color:  color,
	})
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Named returns a logger for a subsystem, sharing sinks and level.
func (l *Logger) Named(name string) *Logger {
	return &Logger{hc: l.hc.Named(name), verbose: l.verbose}
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.hc.Info(fmt.Sprintf(format, args...))
}

// Success logs a completed step at INFO level.
func (l *Logger) Success(format string, args ...interface{}) {
	l.hc.Info(term.Green + fmt.Sprintf(format, args...) + term.NC)
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.hc.Warn(fmt.Sprintf(format, args...))
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.hc.Error(fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level; dropped unless verbose was set.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.hc.Debug(fmt.Sprintf(format, args...))
}
