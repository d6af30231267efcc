// Package logx is the logging facade used across the service. Callers build
// typed fields and the backend (slog or zap) decides how they are encoded.
package logx

// Logger is implemented by the slog and zap adapters and by Nop.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With returns a logger that prepends fields to every entry.
	With(fields ...Field) Logger
	// Sync flushes buffered entries. Call it once before exit.
	Sync() error
}
