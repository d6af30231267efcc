package driver

import (
	"context"
	"strings"
	"time"

	"service-rider-dispatch/internal/apperr"
	"service-rider-dispatch/internal/domain"
)

const maxPageSize = 100

// Service coordinates driver profile logic and orchestrates repository calls.
type Service struct {
	repo             driverRepository
	operationTimeout time.Duration
	now              func() time.Time
}

// NewService creates and configures a driver Service.
func NewService(r driverRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             r,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateCreate validates a driver for creation and fills defaults.
func validateCreate(d *domain.Driver) error {
	if d == nil {
		return apperr.ErrInvalid
	}
	d.UserID = strings.TrimSpace(d.UserID)
	if d.UserID == "" {
		return apperr.ErrInvalid
	}
	if strings.TrimSpace(d.Name) == "" {
		return apperr.ErrInvalid
	}
	if !domain.ValidatePhone(d.Phone) {
		return apperr.ErrInvalid
	}
	if d.Availability == "" {
		d.Availability = domain.AvailabilityOffService
	}
	if !d.Availability.Valid() {
		return apperr.ErrInvalid
	}
	return nil
}

func validateUpdate(u *domain.PartialDriverUpdate) error {
	if u.ID <= 0 {
		return apperr.ErrInvalid
	}
	if u.Name == nil && u.Phone == nil && u.IsActive == nil {
		return apperr.ErrInvalid
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return apperr.ErrInvalid
	}
	if u.Phone != nil && !domain.ValidatePhone(*u.Phone) {
		return apperr.ErrInvalid
	}
	return nil
}

func validateAvailability(u domain.AvailabilityUpdate) error {
	if u.IsOnline == nil && u.Availability == nil {
		return apperr.ErrInvalid
	}
	if u.Availability != nil && !u.Availability.Valid() {
		return apperr.ErrInvalid
	}
	return nil
}

func validateLocation(loc domain.Location) error {
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return apperr.ErrInvalid
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return apperr.ErrInvalid
	}
	return nil
}

func validatePage(limit, offset *int) error {
	if limit != nil && (*limit <= 0 || *limit > maxPageSize) {
		return apperr.ErrInvalid
	}
	if offset != nil && *offset < 0 {
		return apperr.ErrInvalid
	}
	return nil
}

// Get retrieves a driver by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Driver, error) {
	if id <= 0 {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrDriverProfileNotFound
	}
	return d, nil
}

// Me resolves the driver profile linked to a user account.
func (s *Service) Me(ctx context.Context, userID string) (*domain.Driver, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrDriverProfileNotFound
	}
	return d, nil
}

// List returns drivers with optional pagination
func (s *Service) List(ctx context.Context, limit, offset *int) ([]domain.Driver, error) {
	if err := validatePage(limit, offset); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, limit, offset)
}

// Create persists a new driver and returns its generated ID.
func (s *Service) Create(ctx context.Context, d *domain.Driver) (int64, error) {
	if err := validateCreate(d); err != nil {
		return 0, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Create(ctx, d)
}

// UpdatePartial applies a partial update to a driver. It returns true if a row was updated.
func (s *Service) UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error) {
	if err := validateUpdate(&u); err != nil {
		return false, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdatePartial(ctx, u)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, apperr.ErrDriverProfileNotFound
	}
	return true, nil
}

// SetAvailability toggles the online and availability flags of the
// driver owned by userID.
func (s *Service) SetAvailability(ctx context.Context, userID string, u domain.AvailabilityUpdate) (*domain.Driver, error) {
	if err := validateAvailability(u); err != nil {
		return nil, err
	}
	d, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdateAvailability(ctx, d.ID, u)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrDriverProfileNotFound
	}
	if u.IsOnline != nil {
		d.IsOnline = *u.IsOnline
	}
	if u.Availability != nil {
		d.Availability = *u.Availability
	}
	return d, nil
}

// ReportLocation stores the current position of the driver owned by userID.
func (s *Service) ReportLocation(ctx context.Context, userID string, loc domain.Location) (*domain.Driver, error) {
	if err := validateLocation(loc); err != nil {
		return nil, err
	}
	d, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	at := s.now().Truncate(time.Microsecond)
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdateLocation(ctx, d.ID, loc, at)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrDriverProfileNotFound
	}
	d.Latitude, d.Longitude, d.LocationUpdatedAt = &loc.Latitude, &loc.Longitude, &at
	return d, nil
}
