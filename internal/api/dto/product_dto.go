package dto

import (
	"time"

	"github.com/spec-kit/commerce-admin/internal/domain"
)

// ProductRequest payload for catalog create/update. "product" is the
// catalog entry name.
type ProductRequest struct {
	Product     string   `json:"product"`
	Description string   `json:"description"`
	Cost        float64  `json:"cost"`
	Quantity    int      `json:"quantity"`
	Category    []string `json:"category"`
}

// ProductResponse is the serialized catalog entry.
type ProductResponse struct {
	ID          string    `json:"id"`
	Product     string    `json:"product"`
	Description string    `json:"description,omitempty"`
	Cost        float64   `json:"cost"`
	Quantity    int       `json:"quantity"`
	Category    []string  `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromProduct maps a domain product to its response shape.
func FromProduct(product *domain.Product) ProductResponse {
	categories := make([]string, len(product.Categories))
	for i, c := range product.Categories {
		categories[i] = string(c)
	}
	return ProductResponse{
		ID:          product.ID,
		Product:     product.Name,
		Description: product.Description,
		Cost:        product.UnitCost,
		Quantity:    product.Quantity,
		Category:    categories,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// FromProducts maps a product slice.
func FromProducts(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = FromProduct(&products[i])
	}
	return out
}
