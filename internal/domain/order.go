package domain

import "time"

type (
	// OrderStatus is the lifecycle status of an order.
	OrderStatus string
	// DeliveryStatus is the courier-facing delivery status of an order.
	DeliveryStatus string
)

// Order is the assignment-relevant projection of a marketplace order.
type Order struct {
	ID         string
	MerchantID string
	PickupLat  float64
	PickupLng  float64
	DropoffLat *float64
	DropoffLng *float64

	Status         OrderStatus
	DeliveryStatus DeliveryStatus

	DriverID            *int64
	PendingDriverID     *int64
	AssignmentExpiresAt *time.Time
	StatusVersion       int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPendingOffer reports whether an offer is outstanding.
func (o Order) HasPendingOffer() bool {
	return o.PendingDriverID != nil
}

// OfferedTo reports whether the outstanding offer belongs to driverID.
func (o Order) OfferedTo(driverID int64) bool {
	return o.PendingDriverID != nil && *o.PendingDriverID == driverID
}

// Assignable reports whether the order may receive a new offer or claim.
func (o Order) Assignable() bool {
	return o.Status == OrderReady && o.DriverID == nil
}

// OfferExpired reports whether the outstanding offer is no longer valid at now.
func (o Order) OfferExpired(now time.Time) bool {
	return o.AssignmentExpiresAt != nil && !o.AssignmentExpiresAt.After(now)
}

// OfferSnapshot identifies one specific offer. Sweeps clear an offer only
// while the stored pair still equals the snapshot.
type OfferSnapshot struct {
	OrderID   string
	DriverID  int64
	ExpiresAt time.Time
}

// UpsertOrder carries an order snapshot received from the storefront.
type UpsertOrder struct {
	ID         string
	MerchantID string
	PickupLat  float64
	PickupLng  float64
	DropoffLat *float64
	DropoffLng *float64
	Status     OrderStatus
}
