package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleAdmin
}

// User models an account in the catalog. The password hash is excluded from
// JSON output; clients only ever see the public projection.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// CanManage reports whether the user may mutate a record owned by ownerID:
// the owner themselves, or any admin.
func (u *User) CanManage(ownerID string) bool {
	if u == nil {
		return false
	}
	return u.Role == RoleAdmin || u.ID == ownerID
}

// AuthPayload pairs a signed token with the public user projection.
// It is returned by register/login and never persisted.
type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
