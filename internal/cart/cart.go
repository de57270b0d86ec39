package cart

import "github.com/shopspring/decimal"

// Item is one selected piece of merchandise. Items are immutable once
// added; removal targets a position in the cart, so two entries with the
// same title remain distinct.
type Item struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// Cart is an ordered snapshot of selected items. Insertion order matters
// for display only, never for totals.
type Cart []Item

// Total sums the item prices and returns zero for an empty cart. Prices
// are decimals, so repeated cent amounts never drift the way float64
// accumulation does.
func Total(c Cart) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c {
		sum = sum.Add(item.Price)
	}
	return sum
}
