package dispatch

import (
	"context"
	"fmt"
	"strings"

	"service-rider-dispatch/internal/apperr"
	"service-rider-dispatch/internal/domain"
	"service-rider-dispatch/internal/logx"
	"service-rider-dispatch/internal/ports/dispatchtx"
)

// casAttempts bounds re-reads when a version-guarded write loses a race.
const casAttempts = 3

// Ingest stores an order snapshot received from the storefront.
func (s *Service) Ingest(ctx context.Context, o domain.UpsertOrder) error {
	o.ID = strings.TrimSpace(o.ID)
	if o.ID == "" {
		return apperr.New(apperr.CodeInvalidInput, "order_id is required")
	}
	if !o.Status.Valid() {
		return apperr.New(apperr.CodeInvalidInput, "unknown status "+string(o.Status))
	}
	if o.PickupLat < -90 || o.PickupLat > 90 || o.PickupLng < -180 || o.PickupLng > 180 {
		return apperr.New(apperr.CodeInvalidInput, "pickup coordinates out of range")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.orders.Upsert(ctx, o); err != nil {
		return fmt.Errorf("ingest order: %w", err)
	}
	return nil
}

// Cancel moves an order to CANCELLED, dropping any outstanding offer. The
// write is guarded by the status version read in the same attempt.
func (s *Service) Cancel(ctx context.Context, orderID string) error {
	err := s.versioned(ctx, orderID, domain.EventCancelled,
		func(o *domain.Order) error {
			if o.Status.Terminal() {
				return apperr.New(apperr.CodeOrderNotReady, "status "+string(o.Status))
			}
			return nil
		},
		func(ctx context.Context, tx dispatchtx.Repository, o *domain.Order) (bool, error) {
			return tx.CancelOrder(ctx, o.ID, o.StatusVersion)
		},
	)
	s.metrics.ObserveOperation("cancel", err)
	return err
}

// MarkDelivered completes an order that has a committed driver.
func (s *Service) MarkDelivered(ctx context.Context, orderID string) error {
	err := s.versioned(ctx, orderID, domain.EventDelivered,
		func(o *domain.Order) error {
			if o.DriverID == nil || (o.Status != domain.OrderDriverAssigned && o.Status != domain.OrderInDelivery) {
				return apperr.New(apperr.CodeOrderNotReady, "status "+string(o.Status))
			}
			return nil
		},
		func(ctx context.Context, tx dispatchtx.Repository, o *domain.Order) (bool, error) {
			return tx.MarkDelivered(ctx, o.ID, o.StatusVersion)
		},
	)
	s.metrics.ObserveOperation("deliver", err)
	return err
}

func (s *Service) versioned(
	ctx context.Context,
	orderID string,
	kind domain.EventKind,
	check func(o *domain.Order) error,
	write func(ctx context.Context, tx dispatchtx.Repository, o *domain.Order) (bool, error),
) error {
	orderID, err := validateOrderID(orderID)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	for attempt := 1; attempt <= casAttempts; attempt++ {
		var applied bool
		now := s.clock()
		err := s.tx.WithTx(ctx, func(tx dispatchtx.Repository) error {
			o, err := tx.GetOrder(ctx, orderID)
			if err != nil {
				return err
			}
			if o == nil {
				return apperr.ErrOrderNotFound
			}
			if err := check(o); err != nil {
				return err
			}
			ok, err := write(ctx, tx, o)
			if err != nil || !ok {
				return err
			}
			applied = true
			return tx.AppendEvent(ctx, domain.NewAssignmentEvent(orderID, o.DriverID, kind, now))
		})
		if err != nil {
			return err
		}
		if applied {
			s.logger.Info("order "+string(kind),
				logx.String("event", "order_"+string(kind)),
				logx.String("order_id", orderID),
			)
			return nil
		}
		s.logger.Debug("status version moved, retrying",
			logx.String("order_id", orderID),
			logx.Int("attempt", attempt),
		)
	}
	return fmt.Errorf("order %q changed concurrently: %w", orderID, apperr.ErrConflict)
}
