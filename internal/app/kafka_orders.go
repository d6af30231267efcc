package app

import (
	"context"
	"errors"

	"service-rider-dispatch/internal/apperr"
	"service-rider-dispatch/internal/service/orders"
	"service-rider-dispatch/internal/transport/kafka"
)

type eventHandler interface {
	Handle(ctx context.Context, e orders.Event) error
}

// makeOrdersKafka adapts the processor to the consumer. Business failures
// will not change on redelivery, so they are marked permanent.
func makeOrdersKafka(h eventHandler) kafka.HandleFunc {
	return func(ctx context.Context, event orders.Event) error {
		err := h.Handle(ctx, event)
		if err == nil {
			return nil
		}
		if isBusinessError(err) {
			return kafka.Permanent(err)
		}
		return err
	}
}

func isBusinessError(err error) bool {
	if _, ok := apperr.CodeOf(err); ok {
		return true
	}
	return errors.Is(err, apperr.ErrInvalid) || errors.Is(err, apperr.ErrNotFound)
}
