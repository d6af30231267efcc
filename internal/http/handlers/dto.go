package handlers

import (
	"time"

	"service-rider-dispatch/internal/domain"
)

type orderRequest struct {
	OrderID string `json:"order_id" validate:"required,max=64"`
}

type claimRequest struct {
	OrderID  string `json:"order_id" validate:"required,max=64"`
	DriverID *int64 `json:"driver_id,omitempty" validate:"omitempty,gt=0"`
}

type assignResponse struct {
	Success    bool       `json:"success"`
	DriverID   *int64     `json:"driver_id,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	DistanceKm *float64   `json:"distance_km,omitempty"`
}

type rejectResponse struct {
	Success       bool       `json:"success"`
	NextDriverID  *int64     `json:"next_driver_id,omitempty"`
	NextExpiresAt *time.Time `json:"next_expires_at,omitempty"`
	ReassignError string     `json:"reassign_error,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type sweepResponse struct {
	Success   bool `json:"success"`
	Processed int  `json:"processed"`
	Reoffered int  `json:"reoffered"`
}

type pendingOfferDTO struct {
	OrderID    string    `json:"order_id"`
	MerchantID string    `json:"merchant_id"`
	PickupLat  float64   `json:"pickup_lat"`
	PickupLng  float64   `json:"pickup_lng"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type offersResponse struct {
	Success bool              `json:"success"`
	Offers  []pendingOfferDTO `json:"offers"`
}

type orderDTO struct {
	ID                  string                `json:"id"`
	MerchantID          string                `json:"merchant_id"`
	PickupLat           float64               `json:"pickup_lat"`
	PickupLng           float64               `json:"pickup_lng"`
	DropoffLat          *float64              `json:"dropoff_lat,omitempty"`
	DropoffLng          *float64              `json:"dropoff_lng,omitempty"`
	Status              domain.OrderStatus    `json:"status"`
	DeliveryStatus      domain.DeliveryStatus `json:"delivery_status"`
	DriverID            *int64                `json:"driver_id"`
	PendingDriverID     *int64                `json:"pending_driver_id"`
	AssignmentExpiresAt *time.Time            `json:"assignment_expires_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

type driverDTO struct {
	ID                int64                     `json:"id"`
	UserID            string                    `json:"user_id"`
	Name              string                    `json:"name"`
	Phone             string                    `json:"phone"`
	IsActive          bool                      `json:"is_active"`
	IsOnline          bool                      `json:"is_online"`
	Availability      domain.AvailabilityStatus `json:"availability_status"`
	Latitude          *float64                  `json:"latitude"`
	Longitude         *float64                  `json:"longitude"`
	LocationUpdatedAt *time.Time                `json:"location_updated_at"`
}

type createDriverRequest struct {
	UserID       string                    `json:"user_id" validate:"required,max=64"`
	Name         string                    `json:"name" validate:"required,max=128"`
	Phone        string                    `json:"phone" validate:"required,e164"`
	IsActive     *bool                     `json:"is_active,omitempty"`
	Availability domain.AvailabilityStatus `json:"availability_status,omitempty" validate:"omitempty,oneof=DISPONIBLE FUERA_DE_SERVICIO"`
}

type updateDriverRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=128"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,e164"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type availabilityRequest struct {
	IsOnline     *bool                      `json:"is_online,omitempty"`
	Availability *domain.AvailabilityStatus `json:"availability_status,omitempty" validate:"omitempty,oneof=DISPONIBLE FUERA_DE_SERVICIO"`
}

type locationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}
