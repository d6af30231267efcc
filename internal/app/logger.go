package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"service-rider-dispatch/internal/config"
	"service-rider-dispatch/internal/logx"
)

// NewLogger builds the process logger from cfg.Log. Both backends write JSON to stdout.
func NewLogger(cfg *config.Config) (logx.Logger, error) {
	level := strings.ToLower(cfg.Log.Level)
	switch cfg.Log.Backend {
	case "zap":
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("zap level %q: %w", level, err)
		}
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
		zcfg.OutputPaths = []string{"stdout"}
		base, err := zcfg.Build()
		if err != nil {
			return nil, fmt.Errorf("build zap logger: %w", err)
		}
		return logx.NewZapAdapter(base), nil
	case "", "slog":
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("slog level %q: %w", level, err)
		}
		base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: lvl,
		}))
		return logx.NewSlogAdapter(base), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", cfg.Log.Backend)
	}
}
