package domain

// Role enumerates access levels granted to a user.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleReader Role = "READER"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleReader:
		return true
	}
	return false
}

// DefaultRoles is the role set assigned when none is specified.
func DefaultRoles() []Role {
	return []Role{RoleReader}
}

// NormalizeRoles validates the given role names and applies the default
// when the list is empty. Returns false if any name is unknown.
func NormalizeRoles(names []string) ([]Role, bool) {
	if len(names) == 0 {
		return DefaultRoles(), true
	}
	roles := make([]Role, 0, len(names))
	seen := make(map[Role]struct{}, len(names))
	for _, name := range names {
		role := Role(name)
		if !ValidRole(role) {
			return nil, false
		}
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, role)
	}
	return roles, true
}

// RolesToStrings converts a role slice for storage and serialization.
func RolesToStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// RolesFromStrings converts stored role names back to roles.
func RolesFromStrings(names []string) []Role {
	out := make([]Role, len(names))
	for i, n := range names {
		out[i] = Role(n)
	}
	return out
}
