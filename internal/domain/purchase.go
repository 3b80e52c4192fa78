package domain

import "time"

// PurchaseEntry is one item in a user's purchase list. Entries carry
// their own identity so a single entry can be updated or removed.
type PurchaseEntry struct {
	ID       string
	UserID   string
	Name     string
	UnitCost float64
	Quantity int
	AddedAt  time.Time
}

// UserPurchases pairs a user with their purchase list.
type UserPurchases struct {
	UserID  string
	Email   string
	Entries []PurchaseEntry
}

// PurchaseStat is one row of the purchasing aggregate: per user email and
// product name, the total spend and the number of list entries.
type PurchaseStat struct {
	Email       string
	ProductName string
	TotalAmount float64
	Count       int
}
