package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserLoggedIn    EventType = "user_logged_in"
	EventGoogleLogin     EventType = "google_login"
	EventUserDeactivated EventType = "user_deactivated"
	EventPasswordChanged EventType = "password_changed"
	EventProductCreated  EventType = "product_created"
	EventProductUpdated  EventType = "product_updated"
	EventProductDeleted  EventType = "product_deleted"
	EventPurchaseAdded   EventType = "purchase_added"
)

// Event represents a domain event emitted by services after the
// operation it describes has been persisted.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// UserEventPayload accompanies account lifecycle events. It never
// carries password material.
type UserEventPayload struct {
	Email    string `json:"email"`
	Provider string `json:"provider,omitempty"`
}

// ProductEventPayload accompanies catalog events.
type ProductEventPayload struct {
	Name string `json:"name"`
}

// PurchaseEventPayload accompanies purchase-list events.
type PurchaseEventPayload struct {
	UserID   string  `json:"user_id"`
	Name     string  `json:"name"`
	UnitCost float64 `json:"unit_cost"`
	Quantity int     `json:"quantity"`
}
