package dispatch_test

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"service-rider-dispatch/internal/domain"
	"service-rider-dispatch/internal/ports/dispatchtx"
)

// memStore is an in-memory order store and driver directory with the same
// conditional-write semantics as the SQL repositories. WithTx serialises
// transactions and applies staged writes only when fn succeeds.
type memStore struct {
	mu         sync.Mutex
	orders     map[string]domain.Order
	drivers    map[int64]domain.Driver
	rejections map[string]map[int64]struct{}
	events     []domain.AssignmentEvent

	// hooks for interleaving tests; called without the lock held
	afterListExpired func()
	withdrawErr      map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		orders:      make(map[string]domain.Order),
		drivers:     make(map[int64]domain.Driver),
		rejections:  make(map[string]map[int64]struct{}),
		withdrawErr: make(map[string]error),
	}
}

func ptr[T any](v T) *T { return &v }

func (m *memStore) putDriver(id int64, lat, lng float64) domain.Driver {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := domain.Driver{
		ID:           id,
		UserID:       userIDFor(id),
		Name:         "driver",
		IsActive:     true,
		IsOnline:     true,
		Availability: domain.AvailabilityAvailable,
		Latitude:     ptr(lat),
		Longitude:    ptr(lng),
	}
	m.drivers[id] = d
	return d
}

func (m *memStore) updateDriver(id int64, fn func(d *domain.Driver)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := m.drivers[id]
	fn(&d)
	m.drivers[id] = d
}

func userIDFor(id int64) string {
	return fmt.Sprintf("user-%d", id)
}

func (m *memStore) putReadyOrder(id string, lat, lng float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[id] = domain.Order{
		ID:             id,
		MerchantID:     "m-1",
		PickupLat:      lat,
		PickupLng:      lng,
		Status:         domain.OrderReady,
		DeliveryStatus: domain.DeliveryPending,
	}
}

func (m *memStore) order(id string) domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders[id]
}

func (m *memStore) eventKinds(orderID string) []domain.EventKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.EventKind
	for _, e := range m.events {
		if e.OrderID == orderID {
			out = append(out, e.Kind)
		}
	}
	return out
}

// expireOffer rewinds the outstanding offer of orderID into the past.
func (m *memStore) expireOffer(orderID string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := m.orders[orderID]
	o.AssignmentExpiresAt = ptr(at)
	m.orders[orderID] = o
}

// orderStore

func (m *memStore) Get(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *memStore) Upsert(_ context.Context, in domain.UpsertOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[in.ID]
	if !ok {
		o = domain.Order{ID: in.ID, Status: in.Status, DeliveryStatus: domain.DeliveryPending}
	} else if o.Status == domain.OrderPending || o.Status == domain.OrderConfirmed || o.Status == domain.OrderPreparing {
		o.Status = in.Status
	}
	o.MerchantID = in.MerchantID
	o.PickupLat, o.PickupLng = in.PickupLat, in.PickupLng
	o.DropoffLat, o.DropoffLng = in.DropoffLat, in.DropoffLng
	o.StatusVersion++
	m.orders[in.ID] = o
	return nil
}

func (m *memStore) ListExpiredOffers(_ context.Context, now time.Time, limit int) ([]domain.OfferSnapshot, error) {
	m.mu.Lock()
	out := make([]domain.OfferSnapshot, 0)
	for _, o := range m.orders {
		if o.PendingDriverID != nil && o.AssignmentExpiresAt.Before(now) {
			out = append(out, domain.OfferSnapshot{OrderID: o.ID, DriverID: *o.PendingDriverID, ExpiresAt: *o.AssignmentExpiresAt})
		}
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExpiresAt.Equal(out[j].ExpiresAt) {
			return out[i].ExpiresAt.Before(out[j].ExpiresAt)
		}
		return out[i].OrderID < out[j].OrderID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if m.afterListExpired != nil {
		m.afterListExpired()
	}
	return out, nil
}

func (m *memStore) ListStranded(_ context.Context, limit int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0)
	for _, o := range m.orders {
		if o.Status == domain.OrderReady && o.DriverID == nil && o.PendingDriverID == nil {
			ids = append(ids, o.ID)
		}
	}
	slices.Sort(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (m *memStore) ListPendingOffers(_ context.Context, driverID int64, now time.Time) ([]domain.PendingOffer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.PendingOffer, 0)
	for _, o := range m.orders {
		if o.OfferedTo(driverID) && o.Assignable() && o.AssignmentExpiresAt.After(now) {
			out = append(out, domain.PendingOffer{
				OrderID:    o.ID,
				MerchantID: o.MerchantID,
				PickupLat:  o.PickupLat,
				PickupLng:  o.PickupLng,
				ExpiresAt:  *o.AssignmentExpiresAt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out, nil
}

// driverReader

type driverDirectory struct{ m *memStore }

func (d driverDirectory) Get(_ context.Context, id int64) (*domain.Driver, error) {
	d.m.mu.Lock()
	defer d.m.mu.Unlock()
	drv, ok := d.m.drivers[id]
	if !ok {
		return nil, nil
	}
	return &drv, nil
}

func (d driverDirectory) GetByUserID(_ context.Context, userID string) (*domain.Driver, error) {
	d.m.mu.Lock()
	defer d.m.mu.Unlock()
	for _, drv := range d.m.drivers {
		if drv.UserID == userID {
			return &drv, nil
		}
	}
	return nil, nil
}

func (d driverDirectory) ListCandidates(_ context.Context, orderID string) ([]domain.Driver, error) {
	d.m.mu.Lock()
	defer d.m.mu.Unlock()
	out := make([]domain.Driver, 0)
	for _, drv := range d.m.drivers {
		if !drv.Eligible() {
			continue
		}
		if _, rejected := d.m.rejections[orderID][drv.ID]; rejected {
			continue
		}
		out = append(out, drv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// txRunner

func (m *memStore) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{
		m:          m,
		orders:     maps.Clone(m.orders),
		rejections: make(map[string]map[int64]struct{}, len(m.rejections)),
	}
	for k, v := range m.rejections {
		tx.rejections[k] = maps.Clone(v)
	}
	if err := fn(tx); err != nil {
		return err
	}
	m.orders = tx.orders
	m.rejections = tx.rejections
	m.events = append(m.events, tx.events...)
	return nil
}

type memTx struct {
	m          *memStore
	orders     map[string]domain.Order
	rejections map[string]map[int64]struct{}
	events     []domain.AssignmentEvent
}

func (t *memTx) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	o, ok := t.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (t *memTx) update(id string, pred func(o domain.Order) bool, mut func(o *domain.Order)) bool {
	o, ok := t.orders[id]
	if !ok || !pred(o) {
		return false
	}
	mut(&o)
	o.StatusVersion++
	t.orders[id] = o
	return true
}

func clearOffer(o *domain.Order) {
	o.PendingDriverID = nil
	o.AssignmentExpiresAt = nil
}

func (t *memTx) SetOffer(_ context.Context, id string, driverID int64, expiresAt time.Time) (bool, error) {
	return t.update(id,
		func(o domain.Order) bool {
			return o.Status == domain.OrderReady && o.DriverID == nil && o.PendingDriverID == nil
		},
		func(o *domain.Order) {
			o.PendingDriverID = ptr(driverID)
			o.AssignmentExpiresAt = ptr(expiresAt)
		}), nil
}

func (t *memTx) CommitOffer(_ context.Context, id string, driverID int64, now time.Time) (bool, error) {
	return t.update(id,
		func(o domain.Order) bool {
			return o.Status == domain.OrderReady && o.DriverID == nil && o.OfferedTo(driverID) &&
				o.AssignmentExpiresAt.After(now)
		},
		func(o *domain.Order) {
			o.DriverID = ptr(driverID)
			clearOffer(o)
			o.Status = domain.OrderDriverAssigned
			o.DeliveryStatus = domain.DeliveryAssigned
		}), nil
}

func (t *memTx) ClearOffer(_ context.Context, id string, driverID int64) (bool, error) {
	return t.update(id,
		func(o domain.Order) bool { return o.DriverID == nil && o.OfferedTo(driverID) },
		clearOffer), nil
}

func (t *memTx) WithdrawExpired(_ context.Context, snap domain.OfferSnapshot) (bool, error) {
	if err := t.m.withdrawErr[snap.OrderID]; err != nil {
		return false, err
	}
	return t.update(snap.OrderID,
		func(o domain.Order) bool {
			return o.OfferedTo(snap.DriverID) && o.AssignmentExpiresAt.Equal(snap.ExpiresAt)
		},
		clearOffer), nil
}

func (t *memTx) ClaimOrder(_ context.Context, id string, driverID int64) (bool, error) {
	return t.update(id,
		func(o domain.Order) bool {
			return o.Status == domain.OrderReady && o.DriverID == nil && o.PendingDriverID == nil
		},
		func(o *domain.Order) {
			o.DriverID = ptr(driverID)
			o.Status = domain.OrderDriverAssigned
			o.DeliveryStatus = domain.DeliveryAssigned
		}), nil
}

func (t *memTx) CancelOrder(_ context.Context, id string, version int64) (bool, error) {
	return t.update(id,
		func(o domain.Order) bool { return o.StatusVersion == version && !o.Status.Terminal() },
		func(o *domain.Order) {
			clearOffer(o)
			o.Status = domain.OrderCancelled
			o.DeliveryStatus = domain.DeliveryCancelled
		}), nil
}

func (t *memTx) MarkDelivered(_ context.Context, id string, version int64) (bool, error) {
	return t.update(id,
		func(o domain.Order) bool {
			return o.StatusVersion == version && o.DriverID != nil &&
				(o.Status == domain.OrderDriverAssigned || o.Status == domain.OrderInDelivery)
		},
		func(o *domain.Order) {
			o.Status = domain.OrderDelivered
			o.DeliveryStatus = domain.DeliveryDelivered
		}), nil
}

func (t *memTx) RecordRejection(_ context.Context, r domain.Rejection) error {
	if t.rejections[r.OrderID] == nil {
		t.rejections[r.OrderID] = make(map[int64]struct{})
	}
	t.rejections[r.OrderID][r.DriverID] = struct{}{}
	return nil
}

func (t *memTx) AppendEvent(_ context.Context, e domain.AssignmentEvent) error {
	t.events = append(t.events, e)
	return nil
}

var _ dispatchtx.Repository = (*memTx)(nil)
