package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-admin/internal/api/dto"
	"github.com/spec-kit/commerce-admin/internal/service"
	apperrors "github.com/spec-kit/commerce-admin/pkg/util"
)

// ProductsHandler exposes catalog routes.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs the handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: productService}
}

// List handles GET /products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, dto.FromProducts(products))
}

// GetByID handles GET /products/:id.
func (h *ProductsHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.products.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, dto.FromProduct(product))
}

// Create handles POST /products (ADMIN, EDITOR).
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	product, err := h.products.Create(c.UserContext(), service.ProductInput{
		Name:        req.Product,
		Description: req.Description,
		UnitCost:    req.Cost,
		Quantity:    req.Quantity,
		Categories:  req.Category,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, dto.FromProduct(product))
}

// Update handles PATCH /products/:id (ADMIN, EDITOR).
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	product, err := h.products.Update(c.UserContext(), c.Params("id"), service.ProductInput{
		Name:        req.Product,
		Description: req.Description,
		UnitCost:    req.Cost,
		Quantity:    req.Quantity,
		Categories:  req.Category,
	})
	if err != nil {
		return err
	}
	return ok(c, dto.FromProduct(product))
}

// Delete handles DELETE /products/:id (ADMIN, EDITOR).
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.products.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return ok(c, nil)
}
