package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventKind names an assignment state transition.
type EventKind string

// Assignment event kinds.
const (
	EventOffered   EventKind = "offered"
	EventAccepted  EventKind = "accepted"
	EventRejected  EventKind = "rejected"
	EventExpired   EventKind = "expired"
	EventClaimed   EventKind = "claimed"
	EventCancelled EventKind = "cancelled"
	EventDelivered EventKind = "delivered"
)

// AssignmentEvent is one row of the append-only assignment audit log.
type AssignmentEvent struct {
	ID       uuid.UUID
	OrderID  string
	DriverID *int64
	Kind     EventKind
	At       time.Time
}

// NewAssignmentEvent builds an event with a fresh id.
func NewAssignmentEvent(orderID string, driverID *int64, kind EventKind, at time.Time) AssignmentEvent {
	return AssignmentEvent{
		ID:       uuid.New(),
		OrderID:  orderID,
		DriverID: driverID,
		Kind:     kind,
		At:       at,
	}
}

// Rejection records that a driver declined an order.
type Rejection struct {
	OrderID   string
	DriverID  int64
	Reason    string
	CreatedAt time.Time
}

// Candidate is an eligible driver ranked by distance to the pickup point.
type Candidate struct {
	Driver     Driver
	DistanceKm float64
}

// AssignResult is the outcome of a successful offer.
type AssignResult struct {
	OrderID    string
	DriverID   int64
	ExpiresAt  time.Time
	DistanceKm float64
}

// RejectResult reports a committed rejection and the cascade that followed it.
// ReassignErr is set when the cascade did not produce a new offer.
type RejectResult struct {
	OrderID     string
	Next        *AssignResult
	ReassignErr error
}

// SweepResult summarizes one timeout sweep.
type SweepResult struct {
	Processed int
	Reoffered int
	Failed    int
}

// PendingOffer is an unexpired offer shown to the offered driver.
type PendingOffer struct {
	OrderID    string
	MerchantID string
	PickupLat  float64
	PickupLng  float64
	ExpiresAt  time.Time
}
