package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-admin/internal/api/http/handlers"
	"github.com/spec-kit/commerce-admin/internal/auth"
	"github.com/spec-kit/commerce-admin/internal/domain"
	apperrors "github.com/spec-kit/commerce-admin/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Users     *handlers.UsersHandler
	Products  *handlers.ProductsHandler
	Purchases *handlers.PurchasesHandler
	Gate      *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Protected subtrees mount the access
// gate once at group level and narrow the role allow-list per sub-path.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Get("/google/callback", cfg.Auth.GoogleCallback)

	users := api.Group("/users", cfg.Gate.Authenticate)
	users.Get("/me", cfg.Users.Me)
	users.Patch("/me", cfg.Users.UpdateMe)
	users.Delete("/me", cfg.Users.DeleteMe)
	users.Patch("/me/change-password", cfg.Users.ChangePassword)

	admin := users.Group("", auth.RequireRoles(domain.RoleAdmin))
	admin.Get("/", cfg.Users.List)
	admin.Post("/", cfg.Users.Create)
	admin.Get("/:id", cfg.Users.GetByID)
	admin.Patch("/:id", cfg.Users.Update)
	admin.Delete("/:id", cfg.Users.Delete)

	products := api.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/:id", cfg.Products.GetByID)

	editors := products.Group("", cfg.Gate.Authenticate,
		auth.RequireRoles(domain.RoleAdmin, domain.RoleEditor))
	editors.Post("/", cfg.Products.Create)
	editors.Patch("/:id", cfg.Products.Update)
	editors.Delete("/:id", cfg.Products.Delete)

	purchases := api.Group("/purchases", cfg.Gate.Authenticate)
	purchases.Get("/me", cfg.Purchases.ListMine)
	purchases.Post("/me", cfg.Purchases.AddMine)
	purchases.Patch("/me", cfg.Purchases.UpdateMine)
	purchases.Delete("/me/:productId", cfg.Purchases.RemoveMine)

	staff := purchases.Group("", auth.RequireRoles(domain.RoleAdmin, domain.RoleEditor))
	staff.Get("/", cfg.Purchases.ListAll)
	staff.Get("/stats", cfg.Purchases.Stats)

	perUser := purchases.Group("/users/:userId", auth.RequireRoles(domain.RoleAdmin))
	perUser.Get("/", cfg.Purchases.ListByUser)
	perUser.Post("/", cfg.Purchases.AddToUser)
	perUser.Patch("/:productId", cfg.Purchases.UpdateForUser)
	perUser.Delete("/:productId", cfg.Purchases.RemoveForUser)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound(fmt.Sprintf("Can't find the %s on the server", c.OriginalURL()))
	})
}
