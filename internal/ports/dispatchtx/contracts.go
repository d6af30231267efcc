package dispatchtx

import (
	"context"
	"time"

	"service-rider-dispatch/internal/domain"
)

// Repository is the set of conditional writes available inside one
// transaction. Every bool result reports whether the expected prior state
// still held and the row was changed.
type Repository interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)

	// SetOffer requires READY, no driver and no outstanding offer.
	SetOffer(ctx context.Context, orderID string, driverID int64, expiresAt time.Time) (bool, error)
	// CommitOffer requires an unexpired offer to driverID at now.
	CommitOffer(ctx context.Context, orderID string, driverID int64, now time.Time) (bool, error)
	// ClearOffer requires an outstanding offer to driverID.
	ClearOffer(ctx context.Context, orderID string, driverID int64) (bool, error)
	// WithdrawExpired requires the stored offer to equal the snapshot.
	WithdrawExpired(ctx context.Context, snap domain.OfferSnapshot) (bool, error)
	// ClaimOrder requires READY, no driver and no outstanding offer.
	ClaimOrder(ctx context.Context, orderID string, driverID int64) (bool, error)
	// CancelOrder and MarkDelivered require the given status version.
	CancelOrder(ctx context.Context, orderID string, version int64) (bool, error)
	MarkDelivered(ctx context.Context, orderID string, version int64) (bool, error)

	RecordRejection(ctx context.Context, r domain.Rejection) error
	AppendEvent(ctx context.Context, e domain.AssignmentEvent) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
