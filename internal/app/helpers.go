package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-rider-dispatch/internal/logx"
	"service-rider-dispatch/internal/repository"
)

const dbAttemptTimeout = 3 * time.Second

// newPool is swapped out by tests.
var newPool = repository.NewPool

type dbConnectFunc func(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error)

// connectDbWithRetry dials until the database answers or retries attempts
// have failed. At least one attempt is always made.
func connectDbWithRetry(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error) {
	retries = max(retries, 1)

	var err error
	for attempt := 1; ; attempt++ {
		var pool *pgxpool.Pool
		if pool, err = dialDb(ctx, dsn); err == nil {
			logger.Info("db connected", logx.Int("attempt", attempt))
			return pool, nil
		}
		logger.Warn("db connect failed",
			logx.Int("attempt", attempt),
			logx.Int("retries", retries),
			logx.Err(err),
		)
		if attempt == retries {
			break
		}

		wait := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			wait.Stop()
			return nil, ctx.Err()
		case <-wait.C:
		}
	}
	return nil, fmt.Errorf("db connect failed after %d attempts: %w", retries, err)
}

func dialDb(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, dbAttemptTimeout)
	defer cancel()
	return newPool(ctx, dsn)
}
