package domain

import "time"

// ProductCategory enumerates the allowed catalog categories.
type ProductCategory string

const (
	CategoryElectronics ProductCategory = "electronics"
	CategoryClothing    ProductCategory = "clothing"
	CategoryHome        ProductCategory = "home"
	CategoryBeauty      ProductCategory = "beauty"
	CategoryToys        ProductCategory = "toys"
	CategorySports      ProductCategory = "sports"
	CategoryBooks       ProductCategory = "books"
	CategoryFood        ProductCategory = "food"
)

// ValidCategory reports whether c is a known category.
func ValidCategory(c ProductCategory) bool {
	switch c {
	case CategoryElectronics, CategoryClothing, CategoryHome, CategoryBeauty,
		CategoryToys, CategorySports, CategoryBooks, CategoryFood:
		return true
	}
	return false
}

// Product is a catalog entry. Name is unique across the catalog.
type Product struct {
	ID          string
	Name        string
	Description string
	UnitCost    float64
	Quantity    int
	Categories  []ProductCategory
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
