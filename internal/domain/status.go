package domain

import "regexp"

// Order statuses.
const (
	OrderPending        OrderStatus = "PENDING"
	OrderConfirmed      OrderStatus = "CONFIRMED"
	OrderPreparing      OrderStatus = "PREPARING"
	OrderReady          OrderStatus = "READY"
	OrderDriverAssigned OrderStatus = "DRIVER_ASSIGNED"
	OrderInDelivery     OrderStatus = "IN_DELIVERY"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCancelled      OrderStatus = "CANCELLED"
)

// Delivery statuses.
const (
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliveryAssigned  DeliveryStatus = "ASSIGNED"
	DeliveryPickedUp  DeliveryStatus = "PICKED_UP"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryCancelled DeliveryStatus = "CANCELLED"
)

// Driver availability values.
const (
	AvailabilityAvailable  AvailabilityStatus = "DISPONIBLE"
	AvailabilityOffService AvailabilityStatus = "FUERA_DE_SERVICIO"
)

var allowedOrderStatuses = [...]OrderStatus{
	OrderPending, OrderConfirmed, OrderPreparing, OrderReady,
	OrderDriverAssigned, OrderInDelivery, OrderDelivered, OrderCancelled,
}

var allowedDeliveryStatuses = [...]DeliveryStatus{
	DeliveryPending, DeliveryAssigned, DeliveryPickedUp, DeliveryDelivered, DeliveryCancelled,
}

var allowedAvailability = [...]AvailabilityStatus{
	AvailabilityAvailable, AvailabilityOffService,
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// Valid checks if the DeliveryStatus is valid
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedDeliveryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the AvailabilityStatus is valid
func (a AvailabilityStatus) Valid() bool {
	for _, v := range allowedAvailability {
		if a == v {
			return true
		}
	}
	return false
}

// rePhone is a regex to validate phone numbers
var rePhone = regexp.MustCompile(`^\+[0-9]{8,15}$`)

// ValidatePhone validates the phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
