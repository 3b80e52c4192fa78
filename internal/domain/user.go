package domain

import "time"

// AuthProvider identifies how an account authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User is the domain model for an account. PasswordHash is set only for
// local-provider accounts and is never serialized to responses or logs.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	AuthProvider AuthProvider
	GoogleID     string
	AvatarURL    string
	Roles        []Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasAnyRole reports whether the user holds at least one of the given roles.
func (u *User) HasAnyRole(allowed ...Role) bool {
	for _, want := range allowed {
		for _, have := range u.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
