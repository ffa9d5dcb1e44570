package model

import "github.com/shopspring/decimal"

// Product represents a product in the catalogue.
type Product struct {
	ID    int64           `json:"id" db:"id"`
	Name  string          `json:"name" db:"name"`
	Price decimal.Decimal `json:"price" db:"price"`
}

// Equal reports whether two products hold the same values.
// Prices are compared numerically, so 10 and 10.00 are equal.
func (p Product) Equal(other Product) bool {
	return p.ID == other.ID && p.Name == other.Name && p.Price.Equal(other.Price)
}
