// Package logger provides a simple leveled logger for the application.
// It supports three levels: off (no output), normal (info/warn/error),
// and verbose (includes debug). Child loggers created with Named share
// the parent's level and output. The logger is safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// ParseLevel maps the -verbose / -quiet style switches to a level.
// quiet wins over verbose.
func ParseLevel(verbose, quiet bool) Level {
	switch {
	case quiet:
		return LevelOff
	case verbose:
		return LevelVerbose
	default:
		return LevelNormal
	}
}

// state is shared between a logger and its named children.
type state struct {
	mu    sync.RWMutex
	level Level
	out   *log.Logger
}

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	st     *state
	prefix string
}

// New creates a logger with the given level, writing to the given output.
// If out is nil, os.Stderr is used.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{st: &state{level: level, out: log.New(out, "", log.Ltime)}}
}

// Named returns a child logger that prefixes every message with name.
func (l *Logger) Named(name string) *Logger {
	prefix := name + ": "
	if l.prefix != "" {
		prefix = l.prefix + prefix
	}
	return &Logger{st: l.st, prefix: prefix}
}

// SetLevel changes the log level at runtime for this logger and all of
// its relatives.
func (l *Logger) SetLevel(level Level) {
	l.st.mu.Lock()
	defer l.st.mu.Unlock()
	l.st.level = level
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	l.st.mu.RLock()
	defer l.st.mu.RUnlock()
	return l.st.level
}

// Debug logs a message at debug level (only visible in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	l.emit(LevelVerbose, "[DBG] ", format, args)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.emit(LevelNormal, "[INF] ", format, args)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.emit(LevelNormal, "[WRN] ", format, args)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.emit(LevelNormal, "[ERR] ", format, args)
}

func (l *Logger) emit(min Level, tag, format string, args []any) {
	l.st.mu.RLock()
	defer l.st.mu.RUnlock()
	if l.st.level < min {
		return
	}
	l.st.out.Output(3, tag+l.prefix+fmt.Sprintf(format, args...))
}
