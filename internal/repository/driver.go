package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-rider-dispatch/internal/apperr"
	"service-rider-dispatch/internal/domain"
)

const driverColumns = `id, user_id, name, phone, is_active, is_online, availability_status,
    latitude, longitude, location_updated_at`

// DriverRepo represents the driver directory.
type DriverRepo struct{ db *pgxpool.Pool }

// NewDriverRepo creates a new DriverRepo.
func NewDriverRepo(db *pgxpool.Pool) *DriverRepo { return &DriverRepo{db: db} }

// Get - returns driver by its ID.
func (r *DriverRepo) Get(ctx context.Context, id int64) (*domain.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id=$1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver %d: %w", id, err)
	}
	return d, nil
}

// GetByUserID returns the driver profile owned by a user account.
func (r *DriverRepo) GetByUserID(ctx context.Context, userID string) (*domain.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE user_id=$1`, userID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver by user %q: %w", userID, err)
	}
	return d, nil
}

// List returns drivers ordered by id. If limit/offset are nil, returns the full list.
func (r *DriverRepo) List(ctx context.Context, limit, offset *int) ([]domain.Driver, error) {
	q := `SELECT ` + driverColumns + ` FROM drivers ORDER BY id`
	args := make([]any, 0, 2)
	if limit != nil {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, *limit)
	}
	if offset != nil {
		q += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, *offset)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	capacity := 0
	if limit != nil && *limit > 0 {
		capacity = *limit
	}
	return collectDrivers(rows, capacity)
}

// ListCandidates returns drivers eligible for an offer of orderID: active,
// online, available, located, and not in the order's rejection set.
func (r *DriverRepo) ListCandidates(ctx context.Context, orderID string) ([]domain.Driver, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+driverColumns+`
        FROM drivers d
        WHERE d.is_active
          AND d.is_online
          AND d.availability_status = $2
          AND d.latitude IS NOT NULL
          AND d.longitude IS NOT NULL
          AND NOT EXISTS (
              SELECT 1 FROM order_rejections r
              WHERE r.order_id = $1 AND r.driver_id = d.id
          )
        ORDER BY d.id
    `, orderID, string(domain.AvailabilityAvailable))
	if err != nil {
		return nil, fmt.Errorf("list candidates for order %q: %w", orderID, err)
	}
	return collectDrivers(rows, 0)
}

// Create - creates a new driver.
func (r *DriverRepo) Create(ctx context.Context, d *domain.Driver) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO drivers(user_id, name, phone, is_active, is_online, availability_status)
        VALUES($1, $2, $3, $4, $5, $6)
        RETURNING id`,
		d.UserID, d.Name, d.Phone, d.IsActive, d.IsOnline, string(d.Availability)).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.ErrConflict
		}
		return 0, fmt.Errorf("create driver: %w", err)
	}
	return id, nil
}

// UpdatePartial applies a partial update to a driver and returns true if a row was affected.
func (r *DriverRepo) UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE drivers
        SET
            name       = COALESCE($2, name),
            phone      = COALESCE($3, phone),
            is_active  = COALESCE($4, is_active),
            updated_at = now()
        WHERE id = $1
    `, u.ID, u.Name, u.Phone, u.IsActive)
	if err != nil {
		if IsDuplicate(err) {
			return false, apperr.ErrConflict
		}
		return false, fmt.Errorf("update driver %d: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpdateAvailability toggles online and availability state.
func (r *DriverRepo) UpdateAvailability(ctx context.Context, id int64, u domain.AvailabilityUpdate) (bool, error) {
	var availability *string
	if u.Availability != nil {
		s := string(*u.Availability)
		availability = &s
	}
	ct, err := r.db.Exec(ctx, `
        UPDATE drivers
        SET
            is_online           = COALESCE($2, is_online),
            availability_status = COALESCE($3, availability_status),
            updated_at          = now()
        WHERE id = $1
    `, id, u.IsOnline, availability)
	if err != nil {
		return false, fmt.Errorf("update driver %d availability: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpdateLocation stores the last reported position.
func (r *DriverRepo) UpdateLocation(ctx context.Context, id int64, loc domain.Location, at time.Time) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE drivers
        SET latitude = $2, longitude = $3, location_updated_at = $4, updated_at = now()
        WHERE id = $1
    `, id, loc.Latitude, loc.Longitude, at)
	if err != nil {
		return false, fmt.Errorf("update driver %d location: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

func scanDriver(row pgx.Row) (*domain.Driver, error) {
	var d domain.Driver
	if err := row.Scan(
		&d.ID, &d.UserID, &d.Name, &d.Phone, &d.IsActive, &d.IsOnline, &d.Availability,
		&d.Latitude, &d.Longitude, &d.LocationUpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func collectDrivers(rows pgx.Rows, capacity int) ([]domain.Driver, error) {
	defer rows.Close()

	out := make([]domain.Driver, 0, capacity)
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
