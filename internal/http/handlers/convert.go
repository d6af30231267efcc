package handlers

import "service-rider-dispatch/internal/domain"

func (r createDriverRequest) toModel() *domain.Driver {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.Driver{
		UserID:       r.UserID,
		Name:         r.Name,
		Phone:        r.Phone,
		IsActive:     active,
		Availability: r.Availability,
	}
}

func (r updateDriverRequest) toModel(id int64) domain.PartialDriverUpdate {
	return domain.PartialDriverUpdate{
		ID:       id,
		Name:     r.Name,
		Phone:    r.Phone,
		IsActive: r.IsActive,
	}
}

func (r availabilityRequest) toModel() domain.AvailabilityUpdate {
	return domain.AvailabilityUpdate{
		IsOnline:     r.IsOnline,
		Availability: r.Availability,
	}
}

func (r locationRequest) toModel() domain.Location {
	return domain.Location{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

func driverToResponse(d domain.Driver) driverDTO {
	return driverDTO{
		ID:                d.ID,
		UserID:            d.UserID,
		Name:              d.Name,
		Phone:             d.Phone,
		IsActive:          d.IsActive,
		IsOnline:          d.IsOnline,
		Availability:      d.Availability,
		Latitude:          d.Latitude,
		Longitude:         d.Longitude,
		LocationUpdatedAt: d.LocationUpdatedAt,
	}
}

func driversToResponse(list []domain.Driver) []driverDTO {
	out := make([]driverDTO, 0, len(list))
	for _, d := range list {
		out = append(out, driverToResponse(d))
	}
	return out
}

func orderToResponse(o domain.Order) orderDTO {
	return orderDTO{
		ID:                  o.ID,
		MerchantID:          o.MerchantID,
		PickupLat:           o.PickupLat,
		PickupLng:           o.PickupLng,
		DropoffLat:          o.DropoffLat,
		DropoffLng:          o.DropoffLng,
		Status:              o.Status,
		DeliveryStatus:      o.DeliveryStatus,
		DriverID:            o.DriverID,
		PendingDriverID:     o.PendingDriverID,
		AssignmentExpiresAt: o.AssignmentExpiresAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

func assignToResponse(res domain.AssignResult) assignResponse {
	return assignResponse{
		Success:    true,
		DriverID:   &res.DriverID,
		ExpiresAt:  &res.ExpiresAt,
		DistanceKm: &res.DistanceKm,
	}
}

func offersToResponse(list []domain.PendingOffer) offersResponse {
	out := make([]pendingOfferDTO, 0, len(list))
	for _, o := range list {
		out = append(out, pendingOfferDTO{
			OrderID:    o.OrderID,
			MerchantID: o.MerchantID,
			PickupLat:  o.PickupLat,
			PickupLng:  o.PickupLng,
			ExpiresAt:  o.ExpiresAt,
		})
	}
	return offersResponse{Success: true, Offers: out}
}
