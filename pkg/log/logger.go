package log

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the severity level of a log message.
type Level int

// Log levels
const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// String returns the string representation of the log level.
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
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name (case-insensitive) into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// Field is a single key/value pair of structured context.
type Field struct {
	Key   string
	Value interface{}
}

// Str returns a string Field.
func Str(key, value string) Field { return Field{Key: key, Value: value} }

// Int returns an int Field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 returns a uint64 Field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Dur returns a duration Field rendered in its native string form.
func Dur(key string, value time.Duration) Field { return Field{Key: key, Value: value.String()} }

// Err returns an error Field under the conventional "error" key.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Component tags logs with a component name.
func Component(name string) Field { return Field{Key: "component", Value: name} }

// Entry represents a single log entry handed to formatters.
type Entry struct {
	Level     Level
	Message   string
	Fields    []Field
	Timestamp time.Time
}

// Logger defines the core logging interface for reel components.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	// With returns a Logger that includes fields on every entry.
	With(fields ...Field) Logger

	// SetLevel sets the minimum log level.
	SetLevel(level Level)

	// GetLevel returns the current minimum log level.
	GetLevel() Level
}

// LoggerOption is a function that configures a logger.
type LoggerOption func(*BaseLogger)

// BaseLogger implements the Logger interface.
type BaseLogger struct {
	mu        sync.Mutex
	level     Level
	fields    []Field
	formatter Formatter
	outputs   []Output
	exit      func(int)
}

// NewLogger creates a new logger with the given options.
func NewLogger(options ...LoggerOption) Logger {
	logger := &BaseLogger{
		level:     InfoLevel,
		formatter: &TextFormatter{},
		exit:      os.Exit,
	}
	for _, option := range options {
		option(logger)
	}
	if len(logger.outputs) == 0 {
		logger.outputs = append(logger.outputs, NewConsoleOutput())
	}
	return logger
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) LoggerOption {
	return func(l *BaseLogger) { l.level = level }
}

// WithFormatter sets the log formatter.
func WithFormatter(formatter Formatter) LoggerOption {
	return func(l *BaseLogger) { l.formatter = formatter }
}

// WithOutput adds an output to the logger.
func WithOutput(output Output) LoggerOption {
	return func(l *BaseLogger) { l.outputs = append(l.outputs, output) }
}

func (l *BaseLogger) log(level Level, msg string, fields []Field) {
	l.mu.Lock()
	if level < l.level {
		l.mu.Unlock()
		return
	}
	entry := &Entry{
		Level:     level,
		Message:   msg,
		Fields:    append(append([]Field(nil), l.fields...), fields...),
		Timestamp: time.Now(),
	}
	formatted, err := l.formatter.Format(entry)
	if err != nil {
		l.mu.Unlock()
		return
	}
	for _, out := range l.outputs {
		_ = out.Write(entry, formatted)
	}
	exit := l.exit
	l.mu.Unlock()
	if level == FatalLevel {
		exit(1)
	}
}

// Debug logs at DebugLevel.
func (l *BaseLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields) }

// Info logs at InfoLevel.
func (l *BaseLogger) Info(msg string, fields ...Field) { l.log(InfoLevel, msg, fields) }

// Warn logs at WarnLevel.
func (l *BaseLogger) Warn(msg string, fields ...Field) { l.log(WarnLevel, msg, fields) }

// Error logs at ErrorLevel.
func (l *BaseLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields) }

// Fatal logs at FatalLevel and exits the process.
func (l *BaseLogger) Fatal(msg string, fields ...Field) { l.log(FatalLevel, msg, fields) }

// With returns a child logger carrying the extra fields.
func (l *BaseLogger) With(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	child := &BaseLogger{
		level:     l.level,
		fields:    append(append([]Field(nil), l.fields...), fields...),
		formatter: l.formatter,
		outputs:   l.outputs,
		exit:      l.exit,
	}
	return child
}

// SetLevel sets the minimum log level.
func (l *BaseLogger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// GetLevel returns the current minimum log level.
func (l *BaseLogger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}
