package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is the catalog record stored at product:<id>. Stock is
// advisory only; order creation never decrements it.
type Product struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Category         string           `json:"category"`
	Price            decimal.Decimal  `json:"price"`
	DiscountPrice    *decimal.Decimal `json:"discountPrice,omitempty"`
	ShortDescription string           `json:"shortDescription,omitempty"`
	Description      string           `json:"description,omitempty"`
	Weight           string           `json:"weight,omitempty"`
	Material         string           `json:"material,omitempty"`
	Stock            int              `json:"stock"`
	Images           []string         `json:"images"`
	Active           bool             `json:"active"`
	CreatedAt        string           `json:"createdAt"`
	UpdatedAt        string           `json:"updatedAt"`
}

// Category entries live together under the single categories key; the
// whole list is replaced on any admin update.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
