package dispatch_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"service-rider-dispatch/internal/apperr"
	"service-rider-dispatch/internal/domain"
	"service-rider-dispatch/internal/logx"
	"service-rider-dispatch/internal/ports/dispatchtx"
	"service-rider-dispatch/internal/service/dispatch"
)

func newCtrl(t *testing.T) *gomock.Controller {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return ctrl
}

type mocks struct {
	tx      *dispatch.MocktxRunner
	orders  *dispatch.MockorderStore
	drivers *dispatch.MockdriverReader
	metrics *dispatch.MockMetrics
}

func newMocked(t *testing.T) (*dispatch.Service, mocks) {
	t.Helper()
	ctrl := newCtrl(t)
	m := mocks{
		tx:      dispatch.NewMocktxRunner(ctrl),
		orders:  dispatch.NewMockorderStore(ctrl),
		drivers: dispatch.NewMockdriverReader(ctrl),
		metrics: dispatch.NewMockMetrics(ctrl),
	}
	svc := dispatch.NewService(m.tx, m.orders, m.drivers, dispatch.Options{}, logx.Nop(), m.metrics)
	return svc, m
}

// stubTx lets a test override single conditional writes.
type stubTx struct {
	dispatchtx.Repository

	setOfferFn    func(context.Context, string, int64, time.Time) (bool, error)
	commitOfferFn func(context.Context, string, int64, time.Time) (bool, error)
	clearOfferFn  func(context.Context, string, int64) (bool, error)
	getOrderFn    func(context.Context, string) (*domain.Order, error)
	rejectionFn   func(context.Context, domain.Rejection) error
	appendFn      func(context.Context, domain.AssignmentEvent) error
}

func (s *stubTx) SetOffer(ctx context.Context, id string, d int64, at time.Time) (bool, error) {
	return s.setOfferFn(ctx, id, d, at)
}

func (s *stubTx) CommitOffer(ctx context.Context, id string, d int64, now time.Time) (bool, error) {
	return s.commitOfferFn(ctx, id, d, now)
}

func (s *stubTx) ClearOffer(ctx context.Context, id string, d int64) (bool, error) {
	return s.clearOfferFn(ctx, id, d)
}

func (s *stubTx) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.getOrderFn(ctx, id)
}

func (s *stubTx) RecordRejection(ctx context.Context, r domain.Rejection) error {
	return s.rejectionFn(ctx, r)
}

func (s *stubTx) AppendEvent(ctx context.Context, e domain.AssignmentEvent) error {
	if s.appendFn == nil {
		return nil
	}
	return s.appendFn(ctx, e)
}

func runWith(tx dispatchtx.Repository) func(context.Context, func(dispatchtx.Repository) error) error {
	return func(_ context.Context, fn func(dispatchtx.Repository) error) error {
		return fn(tx)
	}
}

func readyOrder() *domain.Order {
	return &domain.Order{ID: "o-1", Status: domain.OrderReady, PickupLat: pickupLat, PickupLng: pickupLng}
}

func eligible(id int64, km float64) domain.Driver {
	return domain.Driver{
		ID: id, IsActive: true, IsOnline: true, Availability: domain.AvailabilityAvailable,
		Latitude: ptr(north(km)), Longitude: ptr(pickupLng),
	}
}

func TestAssign_StoreErrorsAreWrapped(t *testing.T) {
	t.Parallel()

	svc, m := newMocked(t)
	dbErr := errors.New("connection refused")

	m.orders.EXPECT().Get(gomock.Any(), "o-1").Return(nil, dbErr)
	m.metrics.EXPECT().ObserveOperation("assign", gomock.Any())

	_, err := svc.Assign(context.Background(), "o-1")
	require.ErrorIs(t, err, dbErr)
	_, isBusiness := apperr.CodeOf(err)
	require.False(t, isBusiness)
}

func TestAssign_CandidateErrorIsWrapped(t *testing.T) {
	t.Parallel()

	svc, m := newMocked(t)
	dbErr := errors.New("timeout")

	m.orders.EXPECT().Get(gomock.Any(), "o-1").Return(readyOrder(), nil)
	m.drivers.EXPECT().ListCandidates(gomock.Any(), "o-1").Return(nil, dbErr)
	m.metrics.EXPECT().ObserveOperation("assign", gomock.Any())

	_, err := svc.Assign(context.Background(), "o-1")
	require.ErrorIs(t, err, dbErr)
	require.Contains(t, err.Error(), "list candidates")
}

func TestAssign_LostRaceAtWriteTime(t *testing.T) {
	t.Parallel()

	svc, m := newMocked(t)

	m.orders.EXPECT().Get(gomock.Any(), "o-1").Return(readyOrder(), nil)
	m.drivers.EXPECT().ListCandidates(gomock.Any(), "o-1").Return([]domain.Driver{eligible(3, 2), eligible(8, 1)}, nil)
	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runWith(&stubTx{
		setOfferFn: func(_ context.Context, id string, driverID int64, _ time.Time) (bool, error) {
			require.Equal(t, "o-1", id)
			require.Equal(t, int64(8), driverID)
			return false, nil
		},
		appendFn: func(context.Context, domain.AssignmentEvent) error {
			t.Fatal("no event on a lost race")
			return nil
		},
	}))
	m.metrics.EXPECT().ObserveOperation("assign", apperr.ErrOrderAlreadyAssigned)

	_, err := svc.Assign(context.Background(), "o-1")
	require.ErrorIs(t, err, apperr.ErrOrderAlreadyAssigned)
}

func TestAssign_DropsNaNDistances(t *testing.T) {
	t.Parallel()

	svc, m := newMocked(t)
	o := readyOrder()
	o.PickupLat = math.NaN()

	m.orders.EXPECT().Get(gomock.Any(), "o-1").Return(o, nil)
	m.drivers.EXPECT().ListCandidates(gomock.Any(), "o-1").Return([]domain.Driver{eligible(1, 1)}, nil)
	m.metrics.EXPECT().ObserveOperation("assign", apperr.ErrNoDriversAvailable)

	_, err := svc.Assign(context.Background(), "o-1")
	require.ErrorIs(t, err, apperr.ErrNoDriversAvailable)
}

func TestAccept_TxErrorPropagates(t *testing.T) {
	t.Parallel()

	svc, m := newMocked(t)
	txErr := errors.New("begin tx failed")

	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(txErr)
	m.metrics.EXPECT().ObserveOperation("accept", txErr)

	require.ErrorIs(t, svc.Accept(context.Background(), 1, "o-1"), txErr)
}

func TestAccept_ClassifyReadError(t *testing.T) {
	t.Parallel()

	svc, m := newMocked(t)
	readErr := errors.New("read failed")

	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runWith(&stubTx{
		commitOfferFn: func(context.Context, string, int64, time.Time) (bool, error) { return false, nil },
		getOrderFn:    func(context.Context, string) (*domain.Order, error) { return nil, readErr },
	}))
	m.metrics.EXPECT().ObserveOperation("accept", readErr)

	require.ErrorIs(t, svc.Accept(context.Background(), 1, "o-1"), readErr)
}

func TestReject_RecordErrorAbortsWithoutCascade(t *testing.T) {
	t.Parallel()

	svc, m := newMocked(t)
	recErr := errors.New("insert failed")

	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runWith(&stubTx{
		clearOfferFn: func(context.Context, string, int64) (bool, error) { return true, nil },
		rejectionFn:  func(context.Context, domain.Rejection) error { return recErr },
	}))
	m.metrics.EXPECT().ObserveOperation("reject", recErr)

	_, err := svc.Reject(context.Background(), 1, "o-1")
	require.ErrorIs(t, err, recErr)
}

func TestReject_CascadeInfraErrorIsReportedNotReturned(t *testing.T) {
	t.Parallel()

	svc, m := newMocked(t)
	dbErr := errors.New("db down")

	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runWith(&stubTx{
		clearOfferFn: func(context.Context, string, int64) (bool, error) { return true, nil },
		rejectionFn: func(_ context.Context, r domain.Rejection) error {
			require.Equal(t, domain.Rejection{OrderID: "o-1", DriverID: 4, CreatedAt: r.CreatedAt}, r)
			return nil
		},
	}))
	m.metrics.EXPECT().ObserveOperation("reject", nil)
	m.orders.EXPECT().Get(gomock.Any(), "o-1").Return(nil, dbErr)

	res, err := svc.Reject(context.Background(), 4, "o-1")
	require.NoError(t, err)
	require.Nil(t, res.Next)
	require.ErrorIs(t, res.ReassignErr, dbErr)
}

func TestSweep_ListErrorAborts(t *testing.T) {
	t.Parallel()

	svc, m := newMocked(t)
	dbErr := errors.New("db down")

	m.orders.EXPECT().ListExpiredOffers(gomock.Any(), gomock.Any(), 100).Return(nil, dbErr)

	res, err := svc.Sweep(context.Background())
	require.ErrorIs(t, err, dbErr)
	require.Equal(t, domain.SweepResult{}, res)
}

func TestSweep_ReportsMetrics(t *testing.T) {
	t.Parallel()

	svc, m := newMocked(t)

	m.orders.EXPECT().ListExpiredOffers(gomock.Any(), gomock.Any(), 100).Return(nil, nil)
	m.metrics.EXPECT().ObserveSweep(domain.SweepResult{}, gomock.Any())

	res, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	require.Zero(t, res.Processed)
}

func TestSweep_StopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	svc, m := newMocked(t)
	ctx, cancel := context.WithCancel(context.Background())

	m.orders.EXPECT().ListExpiredOffers(gomock.Any(), gomock.Any(), 100).DoAndReturn(
		func(context.Context, time.Time, int) ([]domain.OfferSnapshot, error) {
			cancel()
			return []domain.OfferSnapshot{{OrderID: "o-1", DriverID: 1}}, nil
		})

	_, err := svc.Sweep(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewService_Defaults(t *testing.T) {
	t.Parallel()

	svc := dispatch.NewService(nil, nil, nil, dispatch.Options{}, nil, nil)
	require.Equal(t, 90*time.Second, svc.OfferTTL())
}
