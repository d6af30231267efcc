package app

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"service-rider-dispatch/internal/domain"
	"service-rider-dispatch/internal/lease"
	"service-rider-dispatch/internal/logx"
)

const sweepLeaseKey = "dispatch:sweep"

type sweeper interface {
	Sweep(ctx context.Context) (domain.SweepResult, error)
}

// sweepLoop runs the expiry sweep on a ticker. Only the replica holding the
// lease sweeps on a given tick.
type sweepLoop struct {
	svc      sweeper
	locker   lease.Locker
	interval time.Duration
	skipped  prometheus.Counter
	logger   logx.Logger
}

func newSweepLoop(
	svc sweeper,
	locker lease.Locker,
	interval time.Duration,
	skipped prometheus.Counter,
	logger logx.Logger,
) *sweepLoop {
	if locker == nil {
		locker = lease.Nop{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &sweepLoop{
		svc:      svc,
		locker:   locker,
		interval: interval,
		skipped:  skipped,
		logger:   logger,
	}
}

// Run blocks until ctx is done and returns ctx.Err().
func (l *sweepLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Info("sweep loop started", logx.Duration("interval", l.interval))
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("sweep loop stopped")
			return ctx.Err()
		case <-ticker.C:
			l.tick(ctx)
		}
	}
}

func (l *sweepLoop) tick(ctx context.Context) {
	release, ok, err := l.locker.Acquire(ctx, sweepLeaseKey, l.interval)
	if err != nil {
		// Sweep writes are version guarded, a duplicate run is harmless.
		l.logger.Warn("sweep lease unavailable, sweeping anyway", logx.Err(err))
		release = nil
		ok = true
	}
	if !ok {
		if l.skipped != nil {
			l.skipped.Inc()
		}
		l.logger.Debug("sweep skipped, lease held elsewhere")
		return
	}
	if release != nil {
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				l.logger.Warn("sweep lease release failed", logx.Err(err))
			}
		}()
	}

	res, err := l.svc.Sweep(ctx)
	if err != nil {
		if ctx.Err() == nil {
			l.logger.Error("sweep failed", logx.Err(err))
		}
		return
	}
	if res.Processed > 0 || res.Failed > 0 {
		l.logger.Info("sweep done",
			logx.Int("processed", res.Processed),
			logx.Int("reoffered", res.Reoffered),
			logx.Int("failed", res.Failed),
		)
	}
}
