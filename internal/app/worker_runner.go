package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-rider-dispatch/internal/logx"
	"service-rider-dispatch/internal/transport/kafka"
)

// WorkerRunner runs the Kafka consumer and the sweep loop.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun blocks until the worker stops and panics on anything but a requested shutdown.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

type workerIn struct {
	dig.In

	Ctx      context.Context
	Pool     *pgxpool.Pool
	Logger   logx.Logger
	Consumer *kafka.Consumer
	Sweep    *sweepLoop
	Redis    redisCloser
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(in workerIn) error {
	if in.Sweep == nil {
		return fmt.Errorf("sweep loop is nil: worker container misconfigured")
	}
	defer closeWorker(in.Pool, in.Logger, in.Consumer, in.Redis)

	ctx, cancel := context.WithCancel(in.Ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	start := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := fn(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				in.Logger.Error("worker component stopped", logx.String("component", name), logx.Err(err))
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
			cancel()
		}()
	}

	if in.Consumer == nil {
		in.Logger.Info("kafka not configured, order consumer disabled")
	} else {
		start("kafka consumer", in.Consumer.Run)
	}
	start("sweep loop", in.Sweep.Run)

	in.Logger.Info("service-rider-dispatch worker started")
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return in.Ctx.Err()
}

func closeWorker(pool *pgxpool.Pool, logger logx.Logger, consumer *kafka.Consumer, redis redisCloser) {
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
	}
	if redis != nil {
		if err := redis(); err != nil {
			logger.Error("redis close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
	_ = logger.Sync()
}
