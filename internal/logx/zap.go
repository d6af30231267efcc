package logx

import (
	"time"

	"go.uber.org/zap"
)

// ZapAdapter backs Logger with a *zap.Logger.
type ZapAdapter struct {
	z *zap.Logger
}

func NewZapAdapter(z *zap.Logger) Logger {
	return &ZapAdapter{z: z}
}

func (a *ZapAdapter) Debug(msg string, fields ...Field) { a.z.Debug(msg, zapFields(fields)...) }
func (a *ZapAdapter) Info(msg string, fields ...Field)  { a.z.Info(msg, zapFields(fields)...) }
func (a *ZapAdapter) Warn(msg string, fields ...Field)  { a.z.Warn(msg, zapFields(fields)...) }
func (a *ZapAdapter) Error(msg string, fields ...Field) { a.z.Error(msg, zapFields(fields)...) }

func (a *ZapAdapter) With(fields ...Field) Logger {
	return &ZapAdapter{z: a.z.With(zapFields(fields)...)}
}

func (a *ZapAdapter) Sync() error { return a.z.Sync() }

func zapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		switch v := f.Value.(type) {
		case string:
			out[i] = zap.String(f.Key, v)
		case int:
			out[i] = zap.Int(f.Key, v)
		case int64:
			out[i] = zap.Int64(f.Key, v)
		case float64:
			out[i] = zap.Float64(f.Key, v)
		case bool:
			out[i] = zap.Bool(f.Key, v)
		case time.Duration:
			out[i] = zap.Duration(f.Key, v)
		case time.Time:
			out[i] = zap.Time(f.Key, v)
		case error:
			out[i] = zap.NamedError(f.Key, v)
		default:
			out[i] = zap.Any(f.Key, v)
		}
	}
	return out
}
