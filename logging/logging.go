// Package logging defines the structured logger the library writes to.
//
// The library never logs unless a Logger is supplied; the default is NoOp.
// NewLogrus adapts a logrus logger, NewDefault builds one at warn level.
package logging

import (
	"io"
	"maps"
	"os"

	"github.com/sirupsen/logrus"
)

// Level represents log levels.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Fields represents structured logging fields.
type Fields map[string]any

// Logger defines the interface the library expects for logging.
type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(err error, msg string, fields ...Fields)

	// WithFields returns a logger with preset fields.
	WithFields(fields Fields) Logger

	// SetLevel sets the minimum log level.
	SetLevel(level Level)
}

// OrNoOp returns l, or a NoOp logger when l is nil.
func OrNoOp(l Logger) Logger {
	if l == nil {
		return NoOp()
	}
	return l
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

// NoOp returns a logger that discards everything.
func NoOp() Logger { return NoOpLogger{} }

func (NoOpLogger) Debug(string, ...Fields)        {}
func (NoOpLogger) Info(string, ...Fields)         {}
func (NoOpLogger) Warn(string, ...Fields)         {}
func (NoOpLogger) Error(error, string, ...Fields) {}
func (n NoOpLogger) WithFields(Fields) Logger     { return n }
func (NoOpLogger) SetLevel(Level)                 {}

// LogrusLogger adapts a logrus entry to Logger.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrus wraps l. A nil l uses logrus.StandardLogger.
func NewLogrus(l *logrus.Logger) *LogrusLogger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

// NewDefault returns a logrus-backed logger writing text to stderr at warn
// level.
func NewDefault() *LogrusLogger {
	return NewWriter(os.Stderr, WarnLevel)
}

// NewWriter returns a logrus-backed logger writing text to w at level.
func NewWriter(w io.Writer, level Level) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
	l.SetLevel(toLogrus(level))
	return NewLogrus(l)
}

func (l *LogrusLogger) with(fields []Fields) *logrus.Entry {
	if len(fields) == 0 {
		return l.entry
	}
	merged := make(logrus.Fields)
	for _, f := range fields {
		maps.Copy(merged, f)
	}
	return l.entry.WithFields(merged)
}

func (l *LogrusLogger) Debug(msg string, fields ...Fields) { l.with(fields).Debug(msg) }
func (l *LogrusLogger) Info(msg string, fields ...Fields)  { l.with(fields).Info(msg) }
func (l *LogrusLogger) Warn(msg string, fields ...Fields)  { l.with(fields).Warn(msg) }

func (l *LogrusLogger) Error(err error, msg string, fields ...Fields) {
	l.with(fields).WithError(err).Error(msg)
}

func (l *LogrusLogger) WithFields(fields Fields) Logger {
	return &LogrusLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// SetLevel changes the level of the underlying logrus logger, which is
// shared by every logger derived from it with WithFields.
func (l *LogrusLogger) SetLevel(level Level) {
	l.entry.Logger.SetLevel(toLogrus(level))
}

func toLogrus(level Level) logrus.Level {
	switch level {
	case DebugLevel:
		return logrus.DebugLevel
	case InfoLevel:
		return logrus.InfoLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}
