//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"service-rider-dispatch/internal/domain"
)

// DispatchPort is the part of the dispatch engine that storefront events drive.
type DispatchPort interface {
	Ingest(ctx context.Context, o domain.UpsertOrder) error
	Assign(ctx context.Context, orderID string) (domain.AssignResult, error)
	Cancel(ctx context.Context, orderID string) error
	MarkDelivered(ctx context.Context, orderID string) error
}
