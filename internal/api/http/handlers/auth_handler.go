package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-admin/internal/api/dto"
	"github.com/spec-kit/commerce-admin/internal/service"
	apperrors "github.com/spec-kit/commerce-admin/pkg/util"
)

// AuthHandler exposes login, registration and the Google callback.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Please provide login credentials")
	}

	token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return ok(c, token)
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid input: malformed payload")
	}

	user, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, dto.FromUser(user))
}

// GoogleCallback handles GET /auth/google/callback.
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return apperrors.NewValidationError("Authorization code is missing")
	}

	token, err := h.auth.GoogleSignIn(c.UserContext(), code)
	if err != nil {
		return err
	}
	return ok(c, token)
}
