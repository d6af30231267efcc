package handlers

import (
	"context"

	"service-rider-dispatch/internal/domain"
)

type dispatchUsecase interface {
	Assign(ctx context.Context, orderID string) (domain.AssignResult, error)
	Accept(ctx context.Context, driverID int64, orderID string) error
	Reject(ctx context.Context, driverID int64, orderID string) (domain.RejectResult, error)
	Claim(ctx context.Context, driverID int64, orderID string) error
	Sweep(ctx context.Context) (domain.SweepResult, error)
	PendingOffers(ctx context.Context, driverID int64) ([]domain.PendingOffer, error)
	DriverForUser(ctx context.Context, userID string) (*domain.Driver, error)
}

type orderUsecase interface {
	Order(ctx context.Context, orderID string) (*domain.Order, error)
	Cancel(ctx context.Context, orderID string) error
}

type driverUsecase interface {
	Get(ctx context.Context, id int64) (*domain.Driver, error)
	Me(ctx context.Context, userID string) (*domain.Driver, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Driver, error)
	Create(ctx context.Context, d *domain.Driver) (int64, error)
	UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error)
	SetAvailability(ctx context.Context, userID string, u domain.AvailabilityUpdate) (*domain.Driver, error)
	ReportLocation(ctx context.Context, userID string, loc domain.Location) (*domain.Driver, error)
}
