package models

// Role is the caller's verified role. Authentication happens upstream at the
// gateway; this service only authorizes.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	default:
		return false
	}
}

// Identity is the verified caller passed down from the gateway.
type Identity struct {
	UserID string
	Role   Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
