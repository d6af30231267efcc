package orders

import (
	"context"
	"errors"

	"service-rider-dispatch/internal/apperr"
	"service-rider-dispatch/internal/logx"
)

// Processor applies storefront order events to the dispatch engine.
type Processor struct {
	dispatch DispatchPort
	logger   logx.Logger
	factory  *actionFactory
}

func NewProcessor(dispatchSvc DispatchPort, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		dispatch: dispatchSvc,
		logger:   logger,
	}
	p.factory = newActionFactory(p.onSnapshot, p.onReady, p.onCancelled, p.onDelivered)
	return p
}

// Handle processes a single orders.Event. Unknown statuses are ignored.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	a, ok := p.factory.get(e.Status)
	if !ok {
		p.logger.Debug("order event ignored",
			logx.String("order_id", e.OrderID),
			logx.String("status", e.Status),
		)
		return nil
	}
	e.Status = string(a.status)
	return a.run(ctx, e)
}

func (p *Processor) onSnapshot(ctx context.Context, e Event) error {
	return p.dispatch.Ingest(ctx, e.upsert())
}

func (p *Processor) onReady(ctx context.Context, e Event) error {
	if err := p.dispatch.Ingest(ctx, e.upsert()); err != nil {
		return err
	}
	_, err := p.dispatch.Assign(ctx, e.OrderID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperr.ErrNoDriversAvailable),
		errors.Is(err, apperr.ErrOrderAlreadyAssigned),
		errors.Is(err, apperr.ErrOrderNotReady):
		// the sweeper picks stranded orders up later
		p.logger.Info("order not offered on ingest",
			logx.String("order_id", e.OrderID),
			logx.Err(err),
		)
		return nil
	default:
		return err
	}
}

func (p *Processor) onCancelled(ctx context.Context, e Event) error {
	err := p.dispatch.Cancel(ctx, e.OrderID)
	if errors.Is(err, apperr.ErrOrderNotFound) || errors.Is(err, apperr.ErrOrderNotReady) {
		return nil
	}
	return err
}

func (p *Processor) onDelivered(ctx context.Context, e Event) error {
	err := p.dispatch.MarkDelivered(ctx, e.OrderID)
	if errors.Is(err, apperr.ErrOrderNotFound) {
		return nil
	}
	return err
}
