package logx

import (
	"context"
	"log/slog"
	"time"
)

// SlogAdapter backs Logger with a *slog.Logger.
type SlogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter wraps l.
func NewSlogAdapter(l *slog.Logger) Logger {
	return &SlogAdapter{l: l}
}

func (s *SlogAdapter) Debug(msg string, fields ...Field) { s.log(slog.LevelDebug, msg, fields) }
func (s *SlogAdapter) Info(msg string, fields ...Field)  { s.log(slog.LevelInfo, msg, fields) }
func (s *SlogAdapter) Warn(msg string, fields ...Field)  { s.log(slog.LevelWarn, msg, fields) }
func (s *SlogAdapter) Error(msg string, fields ...Field) { s.log(slog.LevelError, msg, fields) }

// With returns a child logger carrying the given fields.
func (s *SlogAdapter) With(fields ...Field) Logger {
	attrs := toSlogAttrs(fields)
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return &SlogAdapter{l: s.l.With(args...)}
}

// Sync is a no-op; slog handlers write through.
func (s *SlogAdapter) Sync() error { return nil }

func (s *SlogAdapter) log(level slog.Level, msg string, fields []Field) {
	ctx := context.Background()
	if !s.l.Enabled(ctx, level) {
		return
	}
	s.l.LogAttrs(ctx, level, msg, toSlogAttrs(fields)...)
}

// toSlogAttrs keeps scalar kinds typed and flattens errors to their message.
func toSlogAttrs(fields []Field) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			attrs = append(attrs, slog.String(f.Key, v.Error()))
		case string:
			attrs = append(attrs, slog.String(f.Key, v))
		case int:
			attrs = append(attrs, slog.Int(f.Key, v))
		case int64:
			attrs = append(attrs, slog.Int64(f.Key, v))
		case float64:
			attrs = append(attrs, slog.Float64(f.Key, v))
		case bool:
			attrs = append(attrs, slog.Bool(f.Key, v))
		case time.Duration:
			attrs = append(attrs, slog.Duration(f.Key, v))
		case time.Time:
			attrs = append(attrs, slog.Time(f.Key, v))
		default:
			attrs = append(attrs, slog.Any(f.Key, v))
		}
	}
	return attrs
}
