package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"service-rider-dispatch/internal/app"
	"service-rider-dispatch/internal/config"
	"service-rider-dispatch/internal/logx"
	"service-rider-dispatch/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	logger, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	direction := pflag.Arg(0)
	if err := migrate(direction, cfg.DB.DSN()); err != nil {
		logger.Error("migration failed", logx.String("direction", direction), logx.Err(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("migration applied", logx.String("direction", direction))
}

func migrate(direction, dsn string) error {
	switch direction {
	case "", "up":
		return repository.MigrateUp(dsn)
	case "down":
		return repository.MigrateDown(dsn)
	default:
		return fmt.Errorf("unknown direction %q, want up or down", direction)
	}
}
