package kafka

import (
	"strings"
	"time"

	"service-rider-dispatch/internal/service/orders"
)

// EventDTO is the wire form of an order lifecycle event.
type EventDTO struct {
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	MerchantID string    `json:"merchant_id"`
	PickupLat  float64   `json:"pickup_lat"`
	PickupLng  float64   `json:"pickup_lng"`
	DropoffLat *float64  `json:"dropoff_lat,omitempty"`
	DropoffLng *float64  `json:"dropoff_lng,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToDomain converts EventDTO to orders.Event
func ToDomain(dto EventDTO) orders.Event {
	return orders.Event{
		OrderID:    strings.TrimSpace(dto.OrderID),
		Status:     strings.TrimSpace(dto.Status),
		MerchantID: strings.TrimSpace(dto.MerchantID),
		PickupLat:  dto.PickupLat,
		PickupLng:  dto.PickupLng,
		DropoffLat: dto.DropoffLat,
		DropoffLng: dto.DropoffLng,
		CreatedAt:  dto.CreatedAt,
	}
}
