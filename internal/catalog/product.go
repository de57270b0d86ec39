package catalog

import "github.com/shopspring/decimal"

// Product is one piece of conference merchandise offered for sale.
type Product struct {
	ID    int             `json:"productId"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}
