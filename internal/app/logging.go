// Package app wires the backend together and drives one frame per loop
// iteration.
package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel orders message severities for filtering.
type LogLevel int

// Severity levels, least to most severe.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// String returns the level's log-line tag.
func (l LogLevel) String() string {
	if l < LogLevelDebug || l > LogLevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel maps a level name, case-insensitively, to its LogLevel.
// Unrecognized names default to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger provides leveled logging for the backend. The library default is
// disabled output; the demo points it at a file since the terminal is the
// display surface.
type Logger struct {
	mu       sync.Mutex
	level    LogLevel
	output   io.Writer
	prefix   string
	disabled bool
}

// NewLogger creates a logger writing to output at the given minimum level.
// A nil output falls back to os.Stderr.
func NewLogger(level LogLevel, output io.Writer, prefix string) *Logger {
	if output == nil {
		output = os.Stderr
	}
	return &Logger{level: level, output: output, prefix: prefix}
}

// Disable turns off all output.
func (l *Logger) Disable() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.disabled = true
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LogLevelDebug, msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LogLevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LogLevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LogLevelError, msg, args...)
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.disabled || level < l.level {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	timestamp := time.Now().Format("2006-01-02T15:04:05.000")
	var line string
	if l.prefix != "" {
		line = fmt.Sprintf("%s [%s] %s: %s\n", timestamp, level, l.prefix, msg)
	} else {
		line = fmt.Sprintf("%s [%s] %s\n", timestamp, level, msg)
	}
	_, _ = l.output.Write([]byte(line))
}
