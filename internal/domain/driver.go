package domain

import "time"

// AvailabilityStatus is the self-declared availability of a driver.
type AvailabilityStatus string

// Driver is a delivery driver profile linked 1:1 to a user account.
type Driver struct {
	ID                int64
	UserID            string
	Name              string
	Phone             string
	IsActive          bool
	IsOnline          bool
	Availability      AvailabilityStatus
	Latitude          *float64
	Longitude         *float64
	LocationUpdatedAt *time.Time
}

// Eligible reports whether the driver may receive offers.
func (d Driver) Eligible() bool {
	return d.IsActive &&
		d.IsOnline &&
		d.Availability == AvailabilityAvailable &&
		d.Latitude != nil &&
		d.Longitude != nil
}

// PartialDriverUpdate carries optional fields to update a driver.
// A nil field means "do not change" that attribute.
type PartialDriverUpdate struct {
	ID       int64
	Name     *string
	Phone    *string
	IsActive *bool
}

// AvailabilityUpdate is the driver-portal toggle of online and availability state.
type AvailabilityUpdate struct {
	IsOnline     *bool
	Availability *AvailabilityStatus
}

// Location is a WGS84 coordinate pair in degrees.
type Location struct {
	Latitude  float64
	Longitude float64
}
