package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/commerce-admin/pkg/util"
)

const claimsKey = "auth_claims"

// Middleware is the authenticate stage of the access gate. It never
// consults the user store: claims carry everything the gate needs, and a
// token stays valid for its full lifetime regardless of account changes.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the gate around a token manager.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate extracts the bearer token, verifies it and attaches the
// resolved claims to the request. A missing token fails with 401 before
// any verification; verification failures pass the token manager's
// message through untouched with 403.
func (m *Middleware) Authenticate(c *fiber.Ctx) error {
	token := bearerToken(c.Get("Authorization"))
	if token == "" {
		return apperrors.NewUnauthenticated("Access denied. No token provided")
	}

	claims, verr := m.tokens.Verify(token)
	if verr != nil {
		return apperrors.NewForbidden(verr.Message)
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// ClaimsFromContext retrieves the claims attached by Authenticate.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
