// Package logging is the component-tagged logger shared by every subsystem.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Logger writes one line per call, tagged with the emitting component.
type Logger interface {
	Debugf(component string, format string, args ...interface{})
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	default:
		return "ERROR"
	}
}

// ParseLevel accepts debug, info or error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

type NoopLogger struct{}

func (NoopLogger) Debugf(component, format string, args ...interface{}) {}
func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// WriterLogger writes "RFC3339 [LEVEL] component: message" lines to w,
// dropping anything below its minimum level. It is safe for concurrent use.
type WriterLogger struct {
	mu       sync.Mutex
	w        io.Writer
	minLevel Level
	now      func() time.Time
}

func NewWriterLogger(w io.Writer, minLevel Level) *WriterLogger {
	return &WriterLogger{w: w, minLevel: minLevel, now: time.Now}
}

// OpenFile creates the parent directory of path and appends to it.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func (l *WriterLogger) Debugf(component, format string, args ...interface{}) {
	l.write(LevelDebug, component, format, args...)
}

func (l *WriterLogger) Infof(component, format string, args ...interface{}) {
	l.write(LevelInfo, component, format, args...)
}

func (l *WriterLogger) Errorf(component, format string, args ...interface{}) {
	l.write(LevelError, component, format, args...)
}

func (l *WriterLogger) write(level Level, component, format string, args ...interface{}) {
	if level < l.minLevel {
		return
	}
	msg := fmt.Sprintf(format, args...)
	line := l.now().Format(time.RFC3339) + " [" + level.String() + "] " + component + ": " + msg + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := io.WriteString(l.w, line); err != nil && l.w != os.Stderr {
		fmt.Fprintf(os.Stderr, "log write failed: %v\n", err)
	}
}
