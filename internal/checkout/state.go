package checkout

// State is the position of a session in the checkout sequence.
type State string

const (
	StateBrowsing            State = "BROWSING"
	StateAwaitingInformation State = "AWAITING_INFORMATION"
	StateAwaitingPayment     State = "AWAITING_PAYMENT"
	StatePaymentFailed       State = "PAYMENT_FAILED"
	StatePaymentCancelled    State = "PAYMENT_CANCELLED"
	StateCompleted           State = "COMPLETED"
)

// Terminal reports whether the current checkout pass has finished.
// PAYMENT_FAILED and PAYMENT_CANCELLED are recovery states, not terminal:
// re-invoking payment from them returns to AWAITING_PAYMENT.
func (s State) Terminal() bool {
	return s == StateCompleted
}

func (s State) String() string {
	return string(s)
}
