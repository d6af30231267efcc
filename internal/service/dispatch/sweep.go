package dispatch

import (
	"context"
	"fmt"
	"time"

	"service-rider-dispatch/internal/domain"
	"service-rider-dispatch/internal/logx"
	"service-rider-dispatch/internal/ports/dispatchtx"
)

// Sweep clears every offer whose expiry has passed and re-offers each order
// to another driver. Processed counts cleared offers only; a second run with
// no new expiries processes nothing. Failures on individual orders are logged
// and do not stop the sweep.
func (s *Service) Sweep(ctx context.Context) (domain.SweepResult, error) {
	started := time.Now()

	listCtx, cancel := s.withTimeout(ctx)
	snaps, err := s.orders.ListExpiredOffers(listCtx, s.clock(), s.sweepBatch)
	cancel()
	if err != nil {
		return domain.SweepResult{}, fmt.Errorf("list expired offers: %w", err)
	}

	var res domain.SweepResult
	touched := make(map[string]struct{}, len(snaps))
	for _, snap := range snaps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		touched[snap.OrderID] = struct{}{}
		s.expireOne(ctx, snap, &res)
	}

	if s.retryUnassigned {
		s.retryStranded(ctx, touched, &res)
	}

	s.metrics.ObserveSweep(res, time.Since(started))
	s.logger.Info("sweep completed",
		logx.String("event", "sweep_completed"),
		logx.Int("processed", res.Processed),
		logx.Int("reoffered", res.Reoffered),
		logx.Int("failed", res.Failed),
		logx.Duration("elapsed", time.Since(started)),
	)
	return res, nil
}

func (s *Service) expireOne(ctx context.Context, snap domain.OfferSnapshot, res *domain.SweepResult) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.clock()
	var cleared bool
	err := s.tx.WithTx(ctx, func(tx dispatchtx.Repository) error {
		ok, err := tx.WithdrawExpired(ctx, snap)
		if err != nil || !ok {
			return err
		}
		cleared = true
		return tx.AppendEvent(ctx, domain.NewAssignmentEvent(snap.OrderID, &snap.DriverID, domain.EventExpired, now))
	})
	if err != nil {
		res.Failed++
		s.logger.Warn("expire offer failed",
			logx.String("order_id", snap.OrderID),
			logx.Int64("driver_id", snap.DriverID),
			logx.Err(err),
		)
		return
	}
	if !cleared {
		// accepted, rejected or re-offered since the scan
		return
	}

	res.Processed++
	s.logger.Info("offer expired",
		logx.String("event", "offer_expired"),
		logx.String("order_id", snap.OrderID),
		logx.Int64("driver_id", snap.DriverID),
		logx.Time("expired_at", snap.ExpiresAt),
	)

	exclude := map[int64]struct{}{snap.DriverID: {}}
	if _, err := s.assign(ctx, snap.OrderID, exclude); err != nil {
		s.logReassignFailure(snap.OrderID, err)
		return
	}
	res.Reoffered++
}

func (s *Service) retryStranded(ctx context.Context, skip map[string]struct{}, res *domain.SweepResult) {
	listCtx, cancel := s.withTimeout(ctx)
	ids, err := s.orders.ListStranded(listCtx, s.sweepBatch)
	cancel()
	if err != nil {
		s.logger.Warn("list stranded orders failed", logx.Err(err))
		return
	}

	for _, id := range ids {
		if ctx.Err() != nil {
			return
		}
		if _, ok := skip[id]; ok {
			continue
		}
		opCtx, cancel := s.withTimeout(ctx)
		_, err := s.assign(opCtx, id, nil)
		cancel()
		if err != nil {
			s.logReassignFailure(id, err)
			continue
		}
		res.Reoffered++
	}
}
