package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-admin/internal/domain"
	apperrors "github.com/spec-kit/commerce-admin/pkg/util"
)

// RequireRoles is the authorize stage of the access gate: the caller's
// claim roles must intersect the allow-list. Missing claims (gate stage
// one not run) fail the same way as an empty intersection. Mountable at
// group level and narrowed again on sub-paths.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok || len(claims.Roles) == 0 {
			return apperrors.NewForbidden("Forbidden: insufficient permissions")
		}
		for _, name := range claims.Roles {
			if _, exists := allowedSet[domain.Role(name)]; exists {
				return c.Next()
			}
		}
		return apperrors.NewForbidden("Forbidden: insufficient permissions")
	}
}
