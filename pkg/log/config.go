package log

import (
	"context"
	"fmt"
	stdlog "log"
	"log/slog"
	"strings"
)

// Config declares a logger shape for construction from flags or env.
type Config struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// ApplyConfig builds a Logger from cfg. Empty fields fall back to
// level=info, format=text.
func ApplyConfig(cfg *Config) (Logger, error) {
	level := InfoLevel
	if cfg != nil && cfg.Level != "" {
		parsed, err := ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	var formatter Formatter = &TextFormatter{}
	if cfg != nil && cfg.Format != "" {
		switch strings.ToLower(cfg.Format) {
		case "text":
			formatter = &TextFormatter{}
		case "json":
			formatter = &JSONFormatter{}
		default:
			return nil, fmt.Errorf("unknown log format %q", cfg.Format)
		}
	}
	return NewLogger(WithLevel(level), WithFormatter(formatter)), nil
}

// RedirectStdLog routes the standard library's log package into logger at
// InfoLevel.
func RedirectStdLog(logger Logger) {
	stdlog.SetFlags(0)
	stdlog.SetOutput(stdLogWriter{logger: logger})
}

type stdLogWriter struct {
	logger Logger
}

func (w stdLogWriter) Write(p []byte) (int, error) {
	w.logger.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// ToSlog adapts a Logger to a *slog.Logger for libraries that expect one.
func ToSlog(logger Logger) *slog.Logger {
	return slog.New(slogHandler{logger: logger})
}

type slogHandler struct {
	logger Logger
	attrs  []Field
}

func (h slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return fromSlogLevel(level) >= h.logger.GetLevel()
}

func (h slogHandler) Handle(_ context.Context, r slog.Record) error {
	fields := append([]Field(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, Field{Key: a.Key, Value: a.Value.Any()})
		return true
	})
	switch fromSlogLevel(r.Level) {
	case DebugLevel:
		h.logger.Debug(r.Message, fields...)
	case WarnLevel:
		h.logger.Warn(r.Message, fields...)
	case ErrorLevel:
		h.logger.Error(r.Message, fields...)
	default:
		h.logger.Info(r.Message, fields...)
	}
	return nil
}

func (h slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := append([]Field(nil), h.attrs...)
	for _, a := range attrs {
		fields = append(fields, Field{Key: a.Key, Value: a.Value.Any()})
	}
	return slogHandler{logger: h.logger, attrs: fields}
}

func (h slogHandler) WithGroup(string) slog.Handler { return h }

func fromSlogLevel(level slog.Level) Level {
	switch {
	case level < slog.LevelInfo:
		return DebugLevel
	case level < slog.LevelWarn:
		return InfoLevel
	case level < slog.LevelError:
		return WarnLevel
	default:
		return ErrorLevel
	}
}
