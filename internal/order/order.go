package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/confmerch/checkout-backend/internal/buyer"
	"github.com/confmerch/checkout-backend/internal/cart"
	"github.com/confmerch/checkout-backend/internal/payment"
)

// Order is the immutable record of one completed purchase: the buyer, the
// cart snapshot taken when payment was initiated, and the gateway receipt.
// No order exists without a completed receipt.
type Order struct {
	ID        string          `json:"orderId"`
	Buyer     buyer.Buyer     `json:"buyer"`
	Items     cart.Cart       `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Receipt   payment.Receipt `json:"payment"`
	CreatedAt time.Time       `json:"createdAt"`
}
