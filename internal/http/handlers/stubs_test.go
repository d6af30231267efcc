package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"

	"service-rider-dispatch/internal/apperr"
	"service-rider-dispatch/internal/auth"
	"service-rider-dispatch/internal/domain"
	"service-rider-dispatch/internal/logx"
)

func testLogger() logx.Logger { return logx.Nop() }

type stubDispatch struct {
	assignFn        func(ctx context.Context, orderID string) (domain.AssignResult, error)
	acceptFn        func(ctx context.Context, driverID int64, orderID string) error
	rejectFn        func(ctx context.Context, driverID int64, orderID string) (domain.RejectResult, error)
	claimFn         func(ctx context.Context, driverID int64, orderID string) error
	sweepFn         func(ctx context.Context) (domain.SweepResult, error)
	pendingFn       func(ctx context.Context, driverID int64) ([]domain.PendingOffer, error)
	driverForUserFn func(ctx context.Context, userID string) (*domain.Driver, error)
}

func (s *stubDispatch) Assign(ctx context.Context, orderID string) (domain.AssignResult, error) {
	return s.assignFn(ctx, orderID)
}

func (s *stubDispatch) Accept(ctx context.Context, driverID int64, orderID string) error {
	return s.acceptFn(ctx, driverID, orderID)
}

func (s *stubDispatch) Reject(ctx context.Context, driverID int64, orderID string) (domain.RejectResult, error) {
	return s.rejectFn(ctx, driverID, orderID)
}

func (s *stubDispatch) Claim(ctx context.Context, driverID int64, orderID string) error {
	return s.claimFn(ctx, driverID, orderID)
}

func (s *stubDispatch) Sweep(ctx context.Context) (domain.SweepResult, error) {
	return s.sweepFn(ctx)
}

func (s *stubDispatch) PendingOffers(ctx context.Context, driverID int64) ([]domain.PendingOffer, error) {
	return s.pendingFn(ctx, driverID)
}

func (s *stubDispatch) DriverForUser(ctx context.Context, userID string) (*domain.Driver, error) {
	return s.driverForUserFn(ctx, userID)
}

type stubOrders struct {
	orderFn  func(ctx context.Context, orderID string) (*domain.Order, error)
	cancelFn func(ctx context.Context, orderID string) error
}

func (s *stubOrders) Order(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orderFn(ctx, orderID)
}

func (s *stubOrders) Cancel(ctx context.Context, orderID string) error {
	return s.cancelFn(ctx, orderID)
}

type stubDrivers struct {
	getFn             func(ctx context.Context, id int64) (*domain.Driver, error)
	meFn              func(ctx context.Context, userID string) (*domain.Driver, error)
	listFn            func(ctx context.Context, limit, offset *int) ([]domain.Driver, error)
	createFn          func(ctx context.Context, d *domain.Driver) (int64, error)
	updatePartialFn   func(ctx context.Context, u domain.PartialDriverUpdate) (bool, error)
	setAvailabilityFn func(ctx context.Context, userID string, u domain.AvailabilityUpdate) (*domain.Driver, error)
	reportLocationFn  func(ctx context.Context, userID string, loc domain.Location) (*domain.Driver, error)
}

func (s *stubDrivers) Get(ctx context.Context, id int64) (*domain.Driver, error) {
	return s.getFn(ctx, id)
}

func (s *stubDrivers) Me(ctx context.Context, userID string) (*domain.Driver, error) {
	return s.meFn(ctx, userID)
}

func (s *stubDrivers) List(ctx context.Context, limit, offset *int) ([]domain.Driver, error) {
	return s.listFn(ctx, limit, offset)
}

func (s *stubDrivers) Create(ctx context.Context, d *domain.Driver) (int64, error) {
	return s.createFn(ctx, d)
}

func (s *stubDrivers) UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error) {
	return s.updatePartialFn(ctx, u)
}

func (s *stubDrivers) SetAvailability(ctx context.Context, userID string, u domain.AvailabilityUpdate) (*domain.Driver, error) {
	return s.setAvailabilityFn(ctx, userID, u)
}

func (s *stubDrivers) ReportLocation(ctx context.Context, userID string, loc domain.Location) (*domain.Driver, error) {
	return s.reportLocationFn(ctx, userID, loc)
}

func newRequest(method, target, body string, p *domain.Principal) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if p != nil {
		req = req.WithContext(auth.WithPrincipal(req.Context(), *p))
	}
	return req
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func driverPrincipal() *domain.Principal {
	return &domain.Principal{UserID: "user-7", Role: domain.RoleDriver}
}

func adminPrincipal() *domain.Principal {
	return &domain.Principal{UserID: "admin-1", Role: domain.RoleAdmin}
}

func knownDriver(ctx context.Context, userID string) (*domain.Driver, error) {
	if userID != "user-7" {
		return nil, apperr.ErrDriverProfileNotFound
	}
	return &domain.Driver{ID: 7, UserID: userID, IsActive: true}, nil
}
