package dto

import (
	"time"

	"github.com/spec-kit/commerce-admin/internal/domain"
)

// PurchaseEntryRequest is one purchase list item to add.
type PurchaseEntryRequest struct {
	Product  string  `json:"product"`
	Cost     float64 `json:"cost"`
	Quantity int     `json:"quantity"`
}

// AddPurchasesRequest payload to append entries to a purchase list.
type AddPurchasesRequest struct {
	Products []PurchaseEntryRequest `json:"products"`
}

// UpdateQuantityRequest payload for a point quantity update. ProductID is
// used on the /me route, where the entry id travels in the body.
type UpdateQuantityRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PurchaseEntryResponse is one serialized purchase list entry.
type PurchaseEntryResponse struct {
	ID       string    `json:"id"`
	Product  string    `json:"product"`
	Cost     float64   `json:"cost"`
	Quantity int       `json:"quantity"`
	Date     time.Time `json:"date"`
}

// UserPurchasesResponse pairs a user with their serialized list.
type UserPurchasesResponse struct {
	UserID   string                  `json:"userId"`
	Email    string                  `json:"email"`
	Products []PurchaseEntryResponse `json:"products"`
}

// PurchaseStatResponse is one row of the purchasing aggregate.
type PurchaseStatResponse struct {
	Email       string  `json:"email"`
	Product     string  `json:"product"`
	TotalAmount float64 `json:"totalAmount"`
	Count       int     `json:"count"`
}

// FromPurchaseEntry maps one entry.
func FromPurchaseEntry(entry *domain.PurchaseEntry) PurchaseEntryResponse {
	return PurchaseEntryResponse{
		ID:       entry.ID,
		Product:  entry.Name,
		Cost:     entry.UnitCost,
		Quantity: entry.Quantity,
		Date:     entry.AddedAt,
	}
}

// FromPurchaseEntries maps an entry slice.
func FromPurchaseEntries(entries []domain.PurchaseEntry) []PurchaseEntryResponse {
	out := make([]PurchaseEntryResponse, len(entries))
	for i := range entries {
		out[i] = FromPurchaseEntry(&entries[i])
	}
	return out
}

// FromUserPurchases maps every user's list.
func FromUserPurchases(lists []domain.UserPurchases) []UserPurchasesResponse {
	out := make([]UserPurchasesResponse, len(lists))
	for i, list := range lists {
		out[i] = UserPurchasesResponse{
			UserID:   list.UserID,
			Email:    list.Email,
			Products: FromPurchaseEntries(list.Entries),
		}
	}
	return out
}

// FromPurchaseStats maps the aggregate rows.
func FromPurchaseStats(stats []domain.PurchaseStat) []PurchaseStatResponse {
	out := make([]PurchaseStatResponse, len(stats))
	for i, stat := range stats {
		out[i] = PurchaseStatResponse{
			Email:       stat.Email,
			Product:     stat.ProductName,
			TotalAmount: stat.TotalAmount,
			Count:       stat.Count,
		}
	}
	return out
}
