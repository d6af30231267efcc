//go:generate mockgen -source=contracts.go -destination=dispatch_mocks_test.go -package=dispatch

package dispatch

import (
	"context"
	"time"

	"service-rider-dispatch/internal/domain"
	"service-rider-dispatch/internal/ports/dispatchtx"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error
}

type orderStore interface {
	Get(ctx context.Context, id string) (*domain.Order, error)
	Upsert(ctx context.Context, o domain.UpsertOrder) error
	ListExpiredOffers(ctx context.Context, now time.Time, limit int) ([]domain.OfferSnapshot, error)
	ListStranded(ctx context.Context, limit int) ([]string, error)
	ListPendingOffers(ctx context.Context, driverID int64, now time.Time) ([]domain.PendingOffer, error)
}

type driverReader interface {
	Get(ctx context.Context, id int64) (*domain.Driver, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Driver, error)
	ListCandidates(ctx context.Context, orderID string) ([]domain.Driver, error)
}

// Metrics receives engine outcomes. err is nil on success.
type Metrics interface {
	ObserveOperation(op string, err error)
	ObserveSweep(res domain.SweepResult, elapsed time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) ObserveOperation(string, error) {}

func (nopMetrics) ObserveSweep(domain.SweepResult, time.Duration) {}
