package payment

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Gateway statuses. StatusCompleted is the only value that ever produces an
// order; anything unrecognized is treated as a decline.
const (
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
	StatusDeclined  = "DECLINED"
)

// Receipt is the processor's outcome for one payment attempt. Only Status
// is interpreted by the checkout flow; Raw is stored on the order untouched.
type Receipt struct {
	Status string          `json:"status"`
	Raw    json.RawMessage `json:"raw,omitempty"`
}

// Options tune how the processor renders its payment widget. They are
// opaque to the checkout core and passed straight through.
type Options struct {
	Intent string `json:"intent,omitempty"`
	Layout string `json:"layout,omitempty"`
	Shape  string `json:"shape,omitempty"`
}

// Gateway is the boundary to the external payment processor. Initiate
// blocks until the attempt resolves, so the caller decides what suspends
// on it; cancellation comes through ctx.
type Gateway interface {
	Initiate(ctx context.Context, amount decimal.Decimal, currency string, opts Options) (Receipt, error)
}
