package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access
	RoleManager  Role = "manager"  // Can approve leave and publish announcements
	RoleEmployee Role = "employee" // Regular employee
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// IsAdmin checks if user is admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user is manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// HasRole checks if the user's role is one of roles
func (u *User) HasRole(roles ...Role) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// CanAccess is the ownership-or-role rule shared by every resource:
// admins can act on anything, everyone else only on what they own.
func (u *User) CanAccess(ownerID string) bool {
	return u.IsAdmin() || (ownerID != "" && u.ID == ownerID)
}
