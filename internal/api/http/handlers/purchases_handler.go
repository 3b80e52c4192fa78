package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-admin/internal/api/dto"
	"github.com/spec-kit/commerce-admin/internal/auth"
	"github.com/spec-kit/commerce-admin/internal/service"
	apperrors "github.com/spec-kit/commerce-admin/pkg/util"
)

// PurchasesHandler exposes per-user purchase lists and the purchasing
// statistics aggregate.
type PurchasesHandler struct {
	purchases *service.PurchaseService
}

// NewPurchasesHandler constructs the handler.
func NewPurchasesHandler(purchaseService *service.PurchaseService) *PurchasesHandler {
	return &PurchasesHandler{purchases: purchaseService}
}

// ListAll handles GET /purchases (ADMIN, EDITOR).
func (h *PurchasesHandler) ListAll(c *fiber.Ctx) error {
	lists, err := h.purchases.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, dto.FromUserPurchases(lists))
}

// Stats handles GET /purchases/stats (ADMIN, EDITOR).
func (h *PurchasesHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.purchases.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, dto.FromPurchaseStats(stats))
}

// ListMine handles GET /purchases/me.
func (h *PurchasesHandler) ListMine(c *fiber.Ctx) error {
	claims, ok2 := auth.ClaimsFromContext(c)
	if !ok2 {
		return apperrors.NewUnauthenticated("Access denied. No token provided")
	}
	entries, err := h.purchases.ListByUser(c.UserContext(), claims.Subject)
	if err != nil {
		return err
	}
	return ok(c, dto.FromPurchaseEntries(entries))
}

// AddMine handles POST /purchases/me.
func (h *PurchasesHandler) AddMine(c *fiber.Ctx) error {
	claims, ok2 := auth.ClaimsFromContext(c)
	if !ok2 {
		return apperrors.NewUnauthenticated("Access denied. No token provided")
	}
	return h.add(c, claims.Subject)
}

// UpdateMine handles PATCH /purchases/me: the entry id travels in the body.
func (h *PurchasesHandler) UpdateMine(c *fiber.Ctx) error {
	claims, ok2 := auth.ClaimsFromContext(c)
	if !ok2 {
		return apperrors.NewUnauthenticated("Access denied. No token provided")
	}

	var req dto.UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return apperrors.NewValidationError("productId and quantity are required")
	}
	if err := h.purchases.UpdateQuantity(c.UserContext(), claims.Subject, req.ProductID, req.Quantity); err != nil {
		return err
	}
	return ok(c, nil)
}

// RemoveMine handles DELETE /purchases/me/:productId.
func (h *PurchasesHandler) RemoveMine(c *fiber.Ctx) error {
	claims, ok2 := auth.ClaimsFromContext(c)
	if !ok2 {
		return apperrors.NewUnauthenticated("Access denied. No token provided")
	}
	if err := h.purchases.Remove(c.UserContext(), claims.Subject, c.Params("productId")); err != nil {
		return err
	}
	return ok(c, nil)
}

// ListByUser handles GET /purchases/users/:userId (ADMIN).
func (h *PurchasesHandler) ListByUser(c *fiber.Ctx) error {
	entries, err := h.purchases.ListByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return ok(c, dto.FromPurchaseEntries(entries))
}

// AddToUser handles POST /purchases/users/:userId (ADMIN).
func (h *PurchasesHandler) AddToUser(c *fiber.Ctx) error {
	return h.add(c, c.Params("userId"))
}

// UpdateForUser handles PATCH /purchases/users/:userId/:productId (ADMIN).
func (h *PurchasesHandler) UpdateForUser(c *fiber.Ctx) error {
	var req dto.UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("quantity is required")
	}
	if err := h.purchases.UpdateQuantity(c.UserContext(),
		c.Params("userId"), c.Params("productId"), req.Quantity); err != nil {
		return err
	}
	return ok(c, nil)
}

// RemoveForUser handles DELETE /purchases/users/:userId/:productId (ADMIN).
func (h *PurchasesHandler) RemoveForUser(c *fiber.Ctx) error {
	if err := h.purchases.Remove(c.UserContext(), c.Params("userId"), c.Params("productId")); err != nil {
		return err
	}
	return ok(c, nil)
}

func (h *PurchasesHandler) add(c *fiber.Ctx, userID string) error {
	var req dto.AddPurchasesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	inputs := make([]service.EntryInput, len(req.Products))
	for i, p := range req.Products {
		inputs[i] = service.EntryInput{
			Name:     p.Product,
			UnitCost: p.Cost,
			Quantity: p.Quantity,
		}
	}

	entries, err := h.purchases.Add(c.UserContext(), userID, inputs)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, dto.FromPurchaseEntries(entries))
}
