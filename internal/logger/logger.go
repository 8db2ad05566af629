// Package logger provides the leveled diagnostic logger used by the
// telemetry facade. Output is best-effort and intended for humans: the
// only thing the facade ever logs is the debug-gated notice that a call
// was dropped because no provider is configured, so nothing here should
// ever be relied upon programmatically.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Level names, ordered from least to most verbose. The configured level is
// an index into this list; a message is emitted when its level index is at
// or below the configured one.
var levels = []string{"error", "warn", "info", "debug"}

// Logger writes timestamped, name-prefixed lines to a single output.
type Logger struct {
	name   string
	level  int
	output io.Writer
}

// New creates a Logger with the "info" default level. The
// BEACONFLOW_LOG_LEVEL environment variable overrides the level; debug
// output only appears when it is set to "debug".
func New(name string) *Logger {
	return NewWithLevel(name, "info", os.Stdout)
}

// NewWithLevel creates a Logger with an explicit level and output writer.
// Used by tests and custom configurations. BEACONFLOW_LOG_LEVEL still
// takes precedence over the level argument.
func NewWithLevel(name, level string, output io.Writer) *Logger {
	if env := os.Getenv("BEACONFLOW_LOG_LEVEL"); env != "" {
		level = env
	}

	index := -1
	for i, l := range levels {
		if l == level {
			index = i
			break
		}
	}
	if index == -1 {
		index = 2 // info
	}

	return &Logger{
		name:   name,
		level:  index,
		output: output,
	}
}

// Name returns the logger's name.
func (l *Logger) Name() string {
	return l.name
}

func (l *Logger) emit(message string) {
	now := time.Now()
	fmt.Fprintf(l.output, "[%02d:%02d:%02d.%03d] [%s] %s\n",
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond()/1e6,
		l.name, message)
}

// Error logs at the error level.
func (l *Logger) Error(args ...any) {
	if l.level < 0 {
		return
	}
	l.emit(fmt.Sprint(args...))
}

// Warn logs at the warn level.
func (l *Logger) Warn(args ...any) {
	if l.level < 1 {
		return
	}
	l.emit(fmt.Sprint(args...))
}

// Info logs at the info level.
func (l *Logger) Info(args ...any) {
	if l.level < 2 {
		return
	}
	l.emit(fmt.Sprint(args...))
}

// Debug logs at the debug level. Suppressed unless the logger was built
// with (or the environment selects) the "debug" level.
func (l *Logger) Debug(args ...any) {
	if l.level < 3 {
		return
	}
	l.emit(fmt.Sprint(args...))
}

// Errorf is printf-style Error.
func (l *Logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}

// Warnf is printf-style Warn.
func (l *Logger) Warnf(format string, args ...any) {
	l.Warn(fmt.Sprintf(format, args...))
}

// Infof is printf-style Info.
func (l *Logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

// Debugf is printf-style Debug.
func (l *Logger) Debugf(format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}
