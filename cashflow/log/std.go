package log

import (
	"fmt"
	stdlog "log"
	"strings"
)

// logControlCharReplacer escapes control characters that can be used for log
// injection (CWE-117). Newlines, carriage returns, and tabs in log messages
// can forge fake log entries or inject false audit trail entries.
var logControlCharReplacer = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// sanitizeLogString escapes control characters in a single string value.
func sanitizeLogString(s string) string {
	return logControlCharReplacer.Replace(s)
}

// StdLogger is the Go built-in (log) implementation of the Logger interface.
//
// All string message and field values are sanitized to prevent log injection.
type StdLogger struct {
	// Level is the verbosity ceiling: entries less severe than it are dropped.
	Level  Level
	fields []Field
}

// NewStd creates a stdlib-backed logger with the given verbosity ceiling.
func NewStd(level Level) *StdLogger {
	return &StdLogger{Level: level}
}

// Log writes a log entry through the standard library logger.
func (l *StdLogger) Log(level Level, msg string, fields ...Field) {
	if !l.Enabled(level) {
		return
	}

	var builder strings.Builder

	builder.WriteString(level.String())
	builder.WriteString(": ")
	builder.WriteString(sanitizeLogString(msg))

	for _, field := range append(l.fields, fields...) {
		builder.WriteString(" ")
		builder.WriteString(field.Key)
		builder.WriteString("=")

		if s, ok := field.Value.(string); ok {
			builder.WriteString(sanitizeLogString(s))
		} else {
			builder.WriteString(sanitizeLogString(fmt.Sprint(field.Value)))
		}
	}

	stdlog.Print(builder.String())
}

// With returns a child logger carrying additional fields.
//
//nolint:ireturn
func (l *StdLogger) With(fields ...Field) Logger {
	child := &StdLogger{Level: l.Level}
	child.fields = append(append(child.fields, l.fields...), fields...)

	return child
}

// Enabled checks if the given level is enabled.
//
// The comparison uses l.Level >= level because the logger's level acts as a
// verbosity ceiling: a logger at LevelInfo (2) emits Error (0), Warn (1), and
// Info (2) messages, but suppresses Debug (3).
func (l *StdLogger) Enabled(level Level) bool {
	if l == nil {
		return false
	}

	return l.Level >= level
}

// Sync is a no-op for the standard library backend.
func (l *StdLogger) Sync() error { return nil }
