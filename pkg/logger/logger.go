// Package logger provides component-tagged structured logging for the
// parse-mode setter. It is a thin facade over log/slog: every entry carries
// a "component" attribute so chained middleware and transport logs remain
// distinguishable in one stream.
package logger

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// Level mirrors slog levels with the package's own names so call sites do
// not import slog directly.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelVar = func() *slog.LevelVar {
	v := new(slog.LevelVar)
	v.Set(slog.LevelInfo)
	return v
}()

var log atomic.Pointer[slog.Logger]

func init() {
	log.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelVar,
	})))
}

// SetLevel sets the minimum level emitted.
func SetLevel(l Level) {
	switch l {
	case DEBUG:
		levelVar.Set(slog.LevelDebug)
	case INFO:
		levelVar.Set(slog.LevelInfo)
	case WARN:
		levelVar.Set(slog.LevelWarn)
	case ERROR:
		levelVar.Set(slog.LevelError)
	}
}

// SetOutput replaces the underlying handler, mainly for tests.
func SetOutput(l *slog.Logger) {
	log.Store(l)
}

func logWith(level slog.Level, component, msg string, fields map[string]any) {
	attrs := make([]any, 0, 2+2*len(fields))
	attrs = append(attrs, "component", component)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	log.Load().Log(context.Background(), level, msg, attrs...)
}

// InfoC logs an info message tagged with a component.
func InfoC(component, msg string) {
	logWith(slog.LevelInfo, component, msg, nil)
}

// InfoCF logs an info message with a component tag and structured fields.
func InfoCF(component, msg string, fields map[string]any) {
	logWith(slog.LevelInfo, component, msg, fields)
}

// DebugCF logs a debug message with a component tag and structured fields.
func DebugCF(component, msg string, fields map[string]any) {
	logWith(slog.LevelDebug, component, msg, fields)
}

// WarnCF logs a warning with a component tag and structured fields.
func WarnCF(component, msg string, fields map[string]any) {
	logWith(slog.LevelWarn, component, msg, fields)
}

// ErrorCF logs an error with a component tag and structured fields.
func ErrorCF(component, msg string, fields map[string]any) {
	logWith(slog.LevelError, component, msg, fields)
}
