package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-rider-dispatch/internal/apperr"
	"service-rider-dispatch/internal/domain"
	"service-rider-dispatch/internal/ports/dispatchtx"
)

// DispatchRepo runs assignment state transitions in transactions.
type DispatchRepo struct {
	db *pgxpool.Pool
}

// NewDispatchRepo creates a new DispatchRepo.
func NewDispatchRepo(db *pgxpool.Pool) *DispatchRepo {
	return &DispatchRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DispatchRepo) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				panic(rbErr)
			}
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

var _ dispatchtx.Repository = (*TxRepo)(nil)

// GetOrder reads the order inside the transaction.
func (r *TxRepo) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return getOrder(ctx, r.tx, orderID)
}

// SetOffer - marks the order as offered to driverID until expiresAt.
func (r *TxRepo) SetOffer(ctx context.Context, orderID string, driverID int64, expiresAt time.Time) (bool, error) {
	return r.exec(ctx, "set offer", orderID, `
        UPDATE orders
        SET pending_driver_id     = $2,
            assignment_expires_at = $3,
            status_version        = status_version + 1,
            updated_at            = now()
        WHERE id = $1
          AND status = 'READY'
          AND driver_id IS NULL
          AND pending_driver_id IS NULL
    `, orderID, driverID, expiresAt)
}

// CommitOffer - binds the order to the offered driver.
func (r *TxRepo) CommitOffer(ctx context.Context, orderID string, driverID int64, now time.Time) (bool, error) {
	return r.exec(ctx, "commit offer", orderID, `
        UPDATE orders
        SET driver_id             = pending_driver_id,
            pending_driver_id     = NULL,
            assignment_expires_at = NULL,
            status                = 'DRIVER_ASSIGNED',
            delivery_status       = 'ASSIGNED',
            status_version        = status_version + 1,
            updated_at            = now()
        WHERE id = $1
          AND status = 'READY'
          AND driver_id IS NULL
          AND pending_driver_id = $2
          AND assignment_expires_at > $3
    `, orderID, driverID, now)
}

// ClearOffer - withdraws the offer held by driverID.
func (r *TxRepo) ClearOffer(ctx context.Context, orderID string, driverID int64) (bool, error) {
	return r.exec(ctx, "clear offer", orderID, `
        UPDATE orders
        SET pending_driver_id     = NULL,
            assignment_expires_at = NULL,
            status_version        = status_version + 1,
            updated_at            = now()
        WHERE id = $1
          AND driver_id IS NULL
          AND pending_driver_id = $2
    `, orderID, driverID)
}

// WithdrawExpired - clears an offer only if it still matches the scanned snapshot.
func (r *TxRepo) WithdrawExpired(ctx context.Context, snap domain.OfferSnapshot) (bool, error) {
	return r.exec(ctx, "withdraw expired offer", snap.OrderID, `
        UPDATE orders
        SET pending_driver_id     = NULL,
            assignment_expires_at = NULL,
            status_version        = status_version + 1,
            updated_at            = now()
        WHERE id = $1
          AND pending_driver_id = $2
          AND assignment_expires_at = $3
    `, snap.OrderID, snap.DriverID, snap.ExpiresAt)
}

// ClaimOrder - binds an unoffered READY order directly to driverID.
func (r *TxRepo) ClaimOrder(ctx context.Context, orderID string, driverID int64) (bool, error) {
	return r.exec(ctx, "claim order", orderID, `
        UPDATE orders
        SET driver_id       = $2,
            status          = 'DRIVER_ASSIGNED',
            delivery_status = 'ASSIGNED',
            status_version  = status_version + 1,
            updated_at      = now()
        WHERE id = $1
          AND status = 'READY'
          AND driver_id IS NULL
          AND pending_driver_id IS NULL
    `, orderID, driverID)
}

// CancelOrder - cancels the order and drops any outstanding offer.
func (r *TxRepo) CancelOrder(ctx context.Context, orderID string, version int64) (bool, error) {
	return r.exec(ctx, "cancel order", orderID, `
        UPDATE orders
        SET status                = 'CANCELLED',
            delivery_status       = 'CANCELLED',
            pending_driver_id     = NULL,
            assignment_expires_at = NULL,
            status_version        = status_version + 1,
            updated_at            = now()
        WHERE id = $1
          AND status_version = $2
          AND status NOT IN ('DELIVERED', 'CANCELLED')
    `, orderID, version)
}

// MarkDelivered - completes an order that has a committed driver.
func (r *TxRepo) MarkDelivered(ctx context.Context, orderID string, version int64) (bool, error) {
	return r.exec(ctx, "mark delivered", orderID, `
        UPDATE orders
        SET status          = 'DELIVERED',
            delivery_status = 'DELIVERED',
            status_version  = status_version + 1,
            updated_at      = now()
        WHERE id = $1
          AND status_version = $2
          AND driver_id IS NOT NULL
          AND status IN ('DRIVER_ASSIGNED', 'IN_DELIVERY')
    `, orderID, version)
}

// RecordRejection - adds the driver to the order's rejection set.
func (r *TxRepo) RecordRejection(ctx context.Context, rej domain.Rejection) error {
	_, err := r.tx.Exec(ctx, `
        INSERT INTO order_rejections (order_id, driver_id, reason, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (order_id, driver_id) DO NOTHING
    `, rej.OrderID, rej.DriverID, rej.Reason, rej.CreatedAt)
	if err != nil {
		return fmt.Errorf("record rejection %q/%d: %w", rej.OrderID, rej.DriverID, err)
	}
	return nil
}

// AppendEvent - writes one audit log row.
func (r *TxRepo) AppendEvent(ctx context.Context, e domain.AssignmentEvent) error {
	_, err := r.tx.Exec(ctx, `
        INSERT INTO order_assignment_events (id, order_id, driver_id, kind, at)
        VALUES ($1, $2, $3, $4, $5)
    `, e.ID, e.OrderID, e.DriverID, string(e.Kind), e.At)
	if err != nil {
		return fmt.Errorf("append %s event for %q: %w", e.Kind, e.OrderID, err)
	}
	return nil
}

func (r *TxRepo) exec(ctx context.Context, op, orderID, sql string, args ...any) (bool, error) {
	ct, err := r.tx.Exec(ctx, sql, args...)
	if err != nil {
		if IsForeignKeyViolation(err) {
			// The driver row was removed after the caller looked it up.
			return false, fmt.Errorf("%s %q: %w", op, orderID, apperr.ErrDriverProfileNotFound)
		}
		return false, fmt.Errorf("%s %q: %w", op, orderID, err)
	}
	return ct.RowsAffected() == 1, nil
}
