// Package log provides reel's structured logging facade.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context. Output goes through a pluggable
// Formatter (text or JSON) and Output (console by default), so services can
// share one pipeline while choosing their own shape at the edges.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("journals"), log.Str("journal", "default"))
//	l.Info("journal opened", log.Uint64("commits", 0))
//
// # Configuration
//
// ApplyConfig builds a logger from a declarative Config (level + format),
// which is how the CLI honors REEL_LOG_LEVEL and REEL_LOG_FORMAT.
//
// # Interop
//
// RedirectStdLog routes the standard library's log package into a Logger.
// ToSlog adapts a Logger to a *slog.Logger for libraries that expect one.
package log
