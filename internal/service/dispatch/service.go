package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"service-rider-dispatch/internal/apperr"
	"service-rider-dispatch/internal/domain"
	"service-rider-dispatch/internal/logx"
	"service-rider-dispatch/internal/ports/dispatchtx"
)

const (
	defaultOfferTTL         = 90 * time.Second
	defaultOperationTimeout = 3 * time.Second
	defaultSweepBatch       = 100
)

// Options tunes the engine.
type Options struct {
	OfferTTL         time.Duration
	OperationTimeout time.Duration
	SweepBatch       int
	// RetryUnassigned makes Sweep also re-attempt READY orders that have
	// neither a driver nor an outstanding offer.
	RetryUnassigned bool
	// Now overrides the wall clock. Defaults to time.Now in UTC.
	Now func() time.Time
}

// Service is the driver assignment engine. It keeps no state of its own:
// every decision is taken from the stored order and driver rows, and every
// write is conditional on the state it was decided from.
type Service struct {
	tx      txRunner
	orders  orderStore
	drivers driverReader

	offerTTL         time.Duration
	operationTimeout time.Duration
	sweepBatch       int
	retryUnassigned  bool

	logger  logx.Logger
	metrics Metrics
	now     func() time.Time
}

// NewService - creates a new dispatch Service.
func NewService(tx txRunner, orders orderStore, drivers driverReader, opts Options, logger logx.Logger, m Metrics) *Service {
	if opts.OfferTTL <= 0 {
		opts.OfferTTL = defaultOfferTTL
	}
	if opts.OperationTimeout <= 0 {
		opts.OperationTimeout = defaultOperationTimeout
	}
	if opts.SweepBatch <= 0 {
		opts.SweepBatch = defaultSweepBatch
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if m == nil {
		m = nopMetrics{}
	}
	return &Service{
		tx:               tx,
		orders:           orders,
		drivers:          drivers,
		offerTTL:         opts.OfferTTL,
		operationTimeout: opts.OperationTimeout,
		sweepBatch:       opts.SweepBatch,
		retryUnassigned:  opts.RetryUnassigned,
		logger:           logger,
		metrics:          m,
		now:              opts.Now,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// clock returns the current time at storage precision, so that timestamps
// read back from the database compare equal to the ones written.
func (s *Service) clock() time.Time {
	return s.now().Truncate(time.Microsecond)
}

// OfferTTL reports how long an offer stays valid.
func (s *Service) OfferTTL() time.Duration { return s.offerTTL }

// Assign offers a READY order to the nearest eligible driver.
func (s *Service) Assign(ctx context.Context, orderID string) (domain.AssignResult, error) {
	orderID, err := validateOrderID(orderID)
	if err != nil {
		return domain.AssignResult{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.assign(ctx, orderID, nil)
	s.metrics.ObserveOperation("assign", err)
	if err != nil {
		return domain.AssignResult{}, err
	}
	return res, nil
}

func (s *Service) assign(ctx context.Context, orderID string, exclude map[int64]struct{}) (domain.AssignResult, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return domain.AssignResult{}, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return domain.AssignResult{}, apperr.ErrOrderNotFound
	}
	if !order.Assignable() {
		return domain.AssignResult{}, apperr.New(apperr.CodeOrderNotReady, "status "+string(order.Status))
	}
	if order.HasPendingOffer() {
		return domain.AssignResult{}, apperr.ErrOrderAlreadyAssigned
	}

	drivers, err := s.drivers.ListCandidates(ctx, orderID)
	if err != nil {
		return domain.AssignResult{}, fmt.Errorf("list candidates: %w", err)
	}
	ranked := rankCandidates(*order, drivers, exclude)
	if len(ranked) == 0 {
		return domain.AssignResult{}, apperr.ErrNoDriversAvailable
	}
	best := ranked[0]

	now := s.clock()
	expiresAt := now.Add(s.offerTTL)
	driverID := best.Driver.ID

	err = s.tx.WithTx(ctx, func(tx dispatchtx.Repository) error {
		ok, err := tx.SetOffer(ctx, orderID, driverID, expiresAt)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrOrderAlreadyAssigned
		}
		return tx.AppendEvent(ctx, domain.NewAssignmentEvent(orderID, &driverID, domain.EventOffered, now))
	})
	if err != nil {
		return domain.AssignResult{}, err
	}

	res := domain.AssignResult{
		OrderID:    orderID,
		DriverID:   driverID,
		ExpiresAt:  expiresAt,
		DistanceKm: best.DistanceKm,
	}
	s.logger.Info("order offered",
		logx.String("event", "order_offered"),
		logx.String("order_id", orderID),
		logx.Int64("driver_id", driverID),
		logx.Float64("distance_km", best.DistanceKm),
		logx.Time("expires_at", expiresAt),
		logx.Int("candidates", len(ranked)),
	)
	return res, nil
}

// Accept commits the order to driverID if the offer is still valid.
func (s *Service) Accept(ctx context.Context, driverID int64, orderID string) error {
	orderID, err := validateOrderID(orderID)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.clock()
	err = s.tx.WithTx(ctx, func(tx dispatchtx.Repository) error {
		ok, err := tx.CommitOffer(ctx, orderID, driverID, now)
		if err != nil {
			return err
		}
		if !ok {
			return classifyAcceptFailure(ctx, tx, orderID, driverID, now)
		}
		return tx.AppendEvent(ctx, domain.NewAssignmentEvent(orderID, &driverID, domain.EventAccepted, now))
	})
	s.metrics.ObserveOperation("accept", err)
	if err != nil {
		return err
	}

	s.logger.Info("offer accepted",
		logx.String("event", "offer_accepted"),
		logx.String("order_id", orderID),
		logx.Int64("driver_id", driverID),
	)
	return nil
}

func classifyAcceptFailure(ctx context.Context, tx dispatchtx.Repository, orderID string, driverID int64, now time.Time) error {
	o, err := tx.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return apperr.ErrOrderNotFound
	}
	if o.OfferedTo(driverID) && o.Assignable() && o.OfferExpired(now) {
		return apperr.ErrOfferExpired
	}
	return apperr.ErrNotPendingForThisDriver
}

// Reject withdraws the offer held by driverID, excludes the driver from
// future offers of this order, and immediately offers the order to the next
// candidate. The rejection stands even when no next candidate exists.
func (s *Service) Reject(ctx context.Context, driverID int64, orderID string) (domain.RejectResult, error) {
	orderID, err := validateOrderID(orderID)
	if err != nil {
		return domain.RejectResult{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.clock()
	err = s.tx.WithTx(ctx, func(tx dispatchtx.Repository) error {
		ok, err := tx.ClearOffer(ctx, orderID, driverID)
		if err != nil {
			return err
		}
		if !ok {
			o, err := tx.GetOrder(ctx, orderID)
			if err != nil {
				return err
			}
			if o == nil {
				return apperr.ErrOrderNotFound
			}
			return apperr.ErrNotPendingForThisDriver
		}
		if err := tx.RecordRejection(ctx, domain.Rejection{OrderID: orderID, DriverID: driverID, CreatedAt: now}); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, domain.NewAssignmentEvent(orderID, &driverID, domain.EventRejected, now))
	})
	s.metrics.ObserveOperation("reject", err)
	if err != nil {
		return domain.RejectResult{}, err
	}

	s.logger.Info("offer rejected",
		logx.String("event", "offer_rejected"),
		logx.String("order_id", orderID),
		logx.Int64("driver_id", driverID),
	)

	res := domain.RejectResult{OrderID: orderID}
	next, err := s.assign(ctx, orderID, nil)
	if err != nil {
		res.ReassignErr = err
		s.logReassignFailure(orderID, err)
		return res, nil
	}
	res.Next = &next
	return res, nil
}

// Claim binds an order that was never offered directly to driverID.
func (s *Service) Claim(ctx context.Context, driverID int64, orderID string) error {
	orderID, err := validateOrderID(orderID)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err = s.claim(ctx, driverID, orderID)
	s.metrics.ObserveOperation("claim", err)
	if err != nil {
		return err
	}

	s.logger.Info("order claimed",
		logx.String("event", "order_claimed"),
		logx.String("order_id", orderID),
		logx.Int64("driver_id", driverID),
	)
	return nil
}

func (s *Service) claim(ctx context.Context, driverID int64, orderID string) error {
	driver, err := s.drivers.Get(ctx, driverID)
	if err != nil {
		return fmt.Errorf("load driver: %w", err)
	}
	if driver == nil || !driver.IsActive {
		return apperr.ErrDriverProfileNotFound
	}

	now := s.clock()
	return s.tx.WithTx(ctx, func(tx dispatchtx.Repository) error {
		ok, err := tx.ClaimOrder(ctx, orderID, driverID)
		if err != nil {
			return err
		}
		if !ok {
			o, err := tx.GetOrder(ctx, orderID)
			if err != nil {
				return err
			}
			switch {
			case o == nil:
				return apperr.ErrOrderNotFound
			case o.DriverID != nil || o.HasPendingOffer():
				return apperr.ErrOrderAlreadyAssigned
			default:
				return apperr.New(apperr.CodeOrderNotReady, "status "+string(o.Status))
			}
		}
		return tx.AppendEvent(ctx, domain.NewAssignmentEvent(orderID, &driverID, domain.EventClaimed, now))
	})
}

// PendingOffers lists the unexpired offers addressed to driverID.
func (s *Service) PendingOffers(ctx context.Context, driverID int64) ([]domain.PendingOffer, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	offers, err := s.orders.ListPendingOffers(ctx, driverID, s.clock())
	if err != nil {
		return nil, fmt.Errorf("list pending offers: %w", err)
	}
	return offers, nil
}

// DriverForUser resolves the driver profile owned by a user account.
func (s *Service) DriverForUser(ctx context.Context, userID string) (*domain.Driver, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.drivers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load driver for user: %w", err)
	}
	if d == nil {
		return nil, apperr.ErrDriverProfileNotFound
	}
	return d, nil
}

// Order returns the assignment view of an order.
func (s *Service) Order(ctx context.Context, orderID string) (*domain.Order, error) {
	orderID, err := validateOrderID(orderID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if o == nil {
		return nil, apperr.ErrOrderNotFound
	}
	return o, nil
}

func validateOrderID(raw string) (string, error) {
	orderID := strings.TrimSpace(raw)
	if orderID == "" {
		return "", apperr.New(apperr.CodeInvalidInput, "order_id is required")
	}
	return orderID, nil
}

func (s *Service) logReassignFailure(orderID string, err error) {
	if code, ok := apperr.CodeOf(err); ok {
		s.logger.Info("order left unassigned",
			logx.String("event", "reassign_skipped"),
			logx.String("order_id", orderID),
			logx.String("reason", string(code)),
		)
		return
	}
	s.logger.Error("reassign failed",
		logx.String("order_id", orderID),
		logx.Err(err),
	)
}
