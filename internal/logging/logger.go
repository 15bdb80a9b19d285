// internal/logging/logger.go

// Package logging provides the leveled logger used across the pipeline.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Logger is the logging interface passed to every pipeline component.
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
	WithField(key string, value interface{}) Logger
}

// Level represents message severity.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

type lineLogger struct {
	level  Level
	out    io.Writer
	fields map[string]interface{}
	mu     *sync.Mutex
}

// New creates a logger writing timestamped lines to stderr.
func New(level Level) Logger {
	return &lineLogger{
		level:  level,
		out:    os.Stderr,
		fields: map[string]interface{}{},
		mu:     &sync.Mutex{},
	}
}

// NewWithWriter creates a logger writing to the given sink; used by tests.
func NewWithWriter(level Level, out io.Writer) Logger {
	return &lineLogger{
		level:  level,
		out:    out,
		fields: map[string]interface{}{},
		mu:     &sync.Mutex{},
	}
}

func (l *lineLogger) Debug(msg string) { l.log(DebugLevel, msg) }
func (l *lineLogger) Info(msg string)  { l.log(InfoLevel, msg) }
func (l *lineLogger) Warn(msg string)  { l.log(WarnLevel, msg) }
func (l *lineLogger) Error(msg string) { l.log(ErrorLevel, msg) }

func (l *lineLogger) Debugf(format string, args ...interface{}) {
	l.log(DebugLevel, fmt.Sprintf(format, args...))
}

func (l *lineLogger) Infof(format string, args ...interface{}) {
	l.log(InfoLevel, fmt.Sprintf(format, args...))
}

func (l *lineLogger) Warnf(format string, args ...interface{}) {
	l.log(WarnLevel, fmt.Sprintf(format, args...))
}

func (l *lineLogger) Errorf(format string, args ...interface{}) {
	l.log(ErrorLevel, fmt.Sprintf(format, args...))
}

func (l *lineLogger) WithField(key string, value interface{}) Logger {
	fields := make(map[string]interface{}, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value

	return &lineLogger{
		level:  l.level,
		out:    l.out,
		fields: fields,
		mu:     l.mu,
	}
}

func (l *lineLogger) log(level Level, msg string) {
	if level < l.level {
		return
	}

	levelStr := [...]string{"DEBUG", "INFO", "WARN", "ERROR"}[level]
	line := fmt.Sprintf("[%s] [%s] %s",
		time.Now().Format("2006-01-02 15:04:05"), levelStr, msg)
	if len(l.fields) > 0 {
		line += " " + formatFields(l.fields)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, line)
}

// formatFields renders fields deterministically so log lines are greppable.
func formatFields(fields map[string]interface{}) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}

// Nop returns a logger that discards everything; used by tests.
func Nop() Logger {
	return &lineLogger{
		level:  ErrorLevel + 1,
		out:    io.Discard,
		fields: map[string]interface{}{},
		mu:     &sync.Mutex{},
	}
}
