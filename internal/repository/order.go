package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-rider-dispatch/internal/domain"
)

const orderColumns = `id, merchant_id, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
    status, delivery_status, driver_id, pending_driver_id, assignment_expires_at,
    status_version, created_at, updated_at`

// OrderRepo reads order assignment state outside of transactions.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

// Get returns the order or nil when it does not exist.
func (r *OrderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	return getOrder(ctx, r.db, id)
}

// Upsert stores an order snapshot coming from the storefront. Assignment
// columns are never touched, and the status only moves forward while the
// order is still in its preparation phase.
func (r *OrderRepo) Upsert(ctx context.Context, o domain.UpsertOrder) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO orders (id, merchant_id, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO UPDATE SET
            merchant_id = EXCLUDED.merchant_id,
            pickup_lat  = EXCLUDED.pickup_lat,
            pickup_lng  = EXCLUDED.pickup_lng,
            dropoff_lat = EXCLUDED.dropoff_lat,
            dropoff_lng = EXCLUDED.dropoff_lng,
            status      = CASE
                              WHEN orders.status IN ('PENDING', 'CONFIRMED', 'PREPARING')
                              THEN EXCLUDED.status
                              ELSE orders.status
                          END,
            status_version = orders.status_version + 1,
            updated_at     = now()
    `, o.ID, o.MerchantID, o.PickupLat, o.PickupLng, o.DropoffLat, o.DropoffLng, string(o.Status))
	if err != nil {
		return fmt.Errorf("upsert order %q: %w", o.ID, err)
	}
	return nil
}

// ListExpiredOffers returns offers whose expiry is strictly before now, oldest first.
func (r *OrderRepo) ListExpiredOffers(ctx context.Context, now time.Time, limit int) ([]domain.OfferSnapshot, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, pending_driver_id, assignment_expires_at
        FROM orders
        WHERE pending_driver_id IS NOT NULL
          AND assignment_expires_at < $1
        ORDER BY assignment_expires_at, id
        LIMIT $2
    `, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list expired offers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.OfferSnapshot, 0, limit)
	for rows.Next() {
		var s domain.OfferSnapshot
		if err := rows.Scan(&s.OrderID, &s.DriverID, &s.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan expired offer: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListStranded returns READY orders that have neither a driver nor an offer.
func (r *OrderRepo) ListStranded(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id
        FROM orders
        WHERE status = 'READY'
          AND driver_id IS NULL
          AND pending_driver_id IS NULL
        ORDER BY updated_at, id
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("list stranded orders: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0, limit)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan stranded order: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListPendingOffers returns unexpired offers addressed to driverID.
func (r *OrderRepo) ListPendingOffers(ctx context.Context, driverID int64, now time.Time) ([]domain.PendingOffer, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, merchant_id, pickup_lat, pickup_lng, assignment_expires_at
        FROM orders
        WHERE pending_driver_id = $1
          AND assignment_expires_at > $2
          AND driver_id IS NULL
          AND status = 'READY'
        ORDER BY assignment_expires_at, id
    `, driverID, now)
	if err != nil {
		return nil, fmt.Errorf("list pending offers for driver %d: %w", driverID, err)
	}
	defer rows.Close()

	out := make([]domain.PendingOffer, 0)
	for rows.Next() {
		var p domain.PendingOffer
		if err := rows.Scan(&p.OrderID, &p.MerchantID, &p.PickupLat, &p.PickupLng, &p.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan pending offer: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getOrder(ctx context.Context, q querier, id string) (*domain.Order, error) {
	var o domain.Order
	err := q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id).Scan(
		&o.ID, &o.MerchantID, &o.PickupLat, &o.PickupLng, &o.DropoffLat, &o.DropoffLng,
		&o.Status, &o.DeliveryStatus, &o.DriverID, &o.PendingDriverID, &o.AssignmentExpiresAt,
		&o.StatusVersion, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %q: %w", id, err)
	}
	return &o, nil
}
