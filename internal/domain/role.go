package domain

// Role is the account role carried in access tokens.
type Role string

// Known roles.
const (
	RoleAdmin    Role = "ADMIN"
	RoleMerchant Role = "MERCHANT"
	RoleDriver   Role = "DRIVER"
	RoleUser     Role = "USER"
)

// Valid checks if the Role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMerchant, RoleDriver, RoleUser:
		return true
	default:
		return false
	}
}

// Principal is the authenticated caller.
type Principal struct {
	UserID string
	Role   Role
}
