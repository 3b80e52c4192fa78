package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-admin/internal/api/dto"
	"github.com/spec-kit/commerce-admin/internal/auth"
	"github.com/spec-kit/commerce-admin/internal/service"
	apperrors "github.com/spec-kit/commerce-admin/pkg/util"
)

// UsersHandler exposes self-service and administrative account routes.
type UsersHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(userService *service.UserService, authService *service.AuthService) *UsersHandler {
	return &UsersHandler{users: userService, auth: authService}
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	claims, ok2 := auth.ClaimsFromContext(c)
	if !ok2 {
		return apperrors.NewUnauthenticated("Access denied. No token provided")
	}
	user, err := h.users.GetByID(c.UserContext(), claims.Subject)
	if err != nil {
		return err
	}
	return ok(c, dto.FromUser(user))
}

// UpdateMe handles PATCH /users/me.
func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	claims, ok2 := auth.ClaimsFromContext(c)
	if !ok2 {
		return apperrors.NewUnauthenticated("Access denied. No token provided")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	user, err := h.users.UpdateProfile(c.UserContext(), claims.Subject, service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		AvatarURL: req.Avatar,
	})
	if err != nil {
		return err
	}
	return ok(c, dto.FromUser(user))
}

// DeleteMe handles DELETE /users/me: a soft delete of the caller.
func (h *UsersHandler) DeleteMe(c *fiber.Ctx) error {
	claims, ok2 := auth.ClaimsFromContext(c)
	if !ok2 {
		return apperrors.NewUnauthenticated("Access denied. No token provided")
	}
	if err := h.users.SoftDelete(c.UserContext(), claims.Subject); err != nil {
		return err
	}
	return ok(c, nil)
}

// ChangePassword handles PATCH /users/me/change-password.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	claims, ok2 := auth.ClaimsFromContext(c)
	if !ok2 {
		return apperrors.NewUnauthenticated("Access denied. No token provided")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	if err := h.auth.ChangePassword(c.UserContext(), claims.Subject,
		req.CurrentPassword, req.NewPassword, req.NewPasswordConfirm); err != nil {
		return err
	}
	return ok(c, nil)
}

// List handles GET /users (ADMIN).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, dto.FromUsers(users))
}

// GetByID handles GET /users/:id (ADMIN).
func (h *UsersHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, dto.FromUser(user))
}

// Create handles POST /users (ADMIN).
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.AdminCreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	user, err := h.users.Create(c.UserContext(), service.AdminCreateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Roles:     req.Roles,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, dto.FromUser(user))
}

// Update handles PATCH /users/:id (ADMIN).
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	user, err := h.users.Update(c.UserContext(), c.Params("id"), service.AdminUpdate{
		Profile: service.ProfileUpdate{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			AvatarURL: req.Avatar,
		},
		Roles:    req.Roles,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return ok(c, dto.FromUser(user))
}

// Delete handles DELETE /users/:id (ADMIN): a soft delete.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.SoftDelete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return ok(c, nil)
}
