package checkout

import "errors"

// Every rejected transition reports a specific kind so the presentation
// layer can message the shopper precisely. All of these are recoverable;
// the session stays in a well-defined state.
var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrPaymentInFlight  = errors.New("a payment attempt is already in flight")
	ErrPaymentDeclined  = errors.New("payment declined")
	ErrPaymentCancelled = errors.New("payment cancelled")
	ErrWrongState       = errors.New("operation not allowed in current state")
)
