package driver

import (
	"context"
	"time"

	"service-rider-dispatch/internal/domain"
)

// driverRepository defines storage operations required by the business layer.
type driverRepository interface {
	Get(ctx context.Context, id int64) (*domain.Driver, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Driver, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Driver, error)
	Create(ctx context.Context, d *domain.Driver) (int64, error)
	UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error)
	UpdateAvailability(ctx context.Context, id int64, u domain.AvailabilityUpdate) (bool, error)
	UpdateLocation(ctx context.Context, id int64, loc domain.Location, at time.Time) (bool, error)
}
