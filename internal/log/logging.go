// Package log builds the configured slog.Logger for the ps2d commands and
// carries the raw byte trace logger.
//
// Without a log file, records below Error go to stdout and Error and above
// to stderr, so redirecting stderr separates failures from normal output.
// With a log file, everything goes to stderr and to the file.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// LevelTrace sits below Debug and enables byte-level protocol tracing.
const LevelTrace slog.Level = -8

// ParseLevel maps a level name to its slog.Level. Unknown names fall back
// to Info rather than failing; level strings come from config files and a
// typo should not keep the server from starting.
func ParseLevel(name string) slog.Level {
	switch name {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MultiHandler duplicates every record to a set of handlers.
type MultiHandler struct{ handlers []slog.Handler }

func (m MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m MultiHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, h := range m.handlers {
		_ = h.Handle(ctx, rec)
	}
	return nil
}

func (m MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return MultiHandler{handlers: next}
}

func (m MultiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithGroup(name)
	}
	return MultiHandler{handlers: next}
}

// LevelFilter gates records into an underlying handler by level predicate.
// Used to split one logger's output across stdout and stderr.
type LevelFilter struct {
	pass func(slog.Level) bool
	h    slog.Handler
}

func (f LevelFilter) Enabled(ctx context.Context, level slog.Level) bool {
	return f.pass(level) && f.h.Enabled(ctx, level)
}

func (f LevelFilter) Handle(ctx context.Context, rec slog.Record) error {
	if !f.pass(rec.Level) {
		return nil
	}
	return f.h.Handle(ctx, rec)
}

func (f LevelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithAttrs(attrs)}
}

func (f LevelFilter) WithGroup(name string) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithGroup(name)}
}

// SetupLogger builds the process logger. The returned closers own any log
// file opened here; the caller closes them at shutdown.
func SetupLogger(levelName, logFile string) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(levelName)

	var handlers []slog.Handler
	var closers []io.Closer

	if logFile == "" {
		out := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		handlers = append(handlers,
			LevelFilter{pass: func(l slog.Level) bool { return l < slog.LevelError }, h: out})

		errOut := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})
		handlers = append(handlers,
			LevelFilter{pass: func(l slog.Level) bool { return l >= slog.LevelError }, h: errOut})
	} else {
		handlers = append(handlers,
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, f)
		handlers = append(handlers,
			slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}

	return slog.New(MultiHandler{handlers: handlers}), closers, nil
}
