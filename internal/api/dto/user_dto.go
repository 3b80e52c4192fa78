package dto

import (
	"time"

	"github.com/spec-kit/commerce-admin/internal/domain"
)

// UserResponse is the serialized account. The password hash is never
// part of it.
type UserResponse struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstname,omitempty"`
	LastName     string    `json:"lastname,omitempty"`
	Email        string    `json:"email"`
	AuthProvider string    `json:"authProvider"`
	Avatar       string    `json:"avatar,omitempty"`
	Roles        []string  `json:"roles"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FromUser maps a domain user to its response shape.
func FromUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		AuthProvider: string(user.AuthProvider),
		Avatar:       user.AvatarURL,
		Roles:        domain.RolesToStrings(user.Roles),
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// FromUsers maps a user slice.
func FromUsers(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = FromUser(&users[i])
	}
	return out
}

// AdminCreateUserRequest payload for admin account creation.
type AdminCreateUserRequest struct {
	FirstName string   `json:"firstname"`
	LastName  string   `json:"lastname"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Roles     []string `json:"roles"`
}

// UpdateProfileRequest payload for self-service profile updates.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	Avatar    *string `json:"avatar"`
}

// AdminUpdateUserRequest payload for administrative account updates.
type AdminUpdateUserRequest struct {
	FirstName *string  `json:"firstname"`
	LastName  *string  `json:"lastname"`
	Avatar    *string  `json:"avatar"`
	Roles     []string `json:"roles"`
	IsActive  *bool    `json:"isActive"`
}
