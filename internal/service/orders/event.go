package orders

import (
	"time"

	"service-rider-dispatch/internal/domain"
)

// Event is one order lifecycle change as published by the storefront.
// Status is the raw storefront value until Processor normalizes it.
type Event struct {
	OrderID    string
	Status     string
	MerchantID string
	CreatedAt  time.Time

	PickupLat, PickupLng   float64
	DropoffLat, DropoffLng *float64
}

func (e Event) upsert() domain.UpsertOrder {
	return domain.UpsertOrder{
		ID:         e.OrderID,
		MerchantID: e.MerchantID,
		Status:     domain.OrderStatus(e.Status),
		PickupLat:  e.PickupLat,
		PickupLng:  e.PickupLng,
		DropoffLat: e.DropoffLat,
		DropoffLng: e.DropoffLng,
	}
}
