package domain

// Identity is the claim payload carried inside an access token: the
// account id, its email and its role set. Roles is always non-empty.
type Identity struct {
	ID    string
	Email string
	Roles []Role
}

// IdentityOf builds the token identity for a user record.
func IdentityOf(u *User) Identity {
	return Identity{ID: u.ID, Email: u.Email, Roles: u.Roles}
}
