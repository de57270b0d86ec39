package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/confmerch/checkout-backend/internal/buyer"
	"github.com/confmerch/checkout-backend/internal/cart"
	"github.com/confmerch/checkout-backend/internal/order"
	"github.com/confmerch/checkout-backend/internal/payment"
)

// Notifier is told about each completed order. Delivery problems are the
// notifier's concern; they never affect the flow.
type Notifier interface {
	OrderCompleted(ctx context.Context, ord order.Order)
}

// Flow drives one session through cart review, buyer information and
// payment. All transitions run under the session lock, so a rejected one
// leaves the state exactly where it was.
type Flow struct {
	session  *Session
	gateway  payment.Gateway
	currency string
	notify   Notifier
}

// NewFlow wires a flow to its session. notify may be nil.
func NewFlow(s *Session, gw payment.Gateway, currency string, notify Notifier) *Flow {
	return &Flow{session: s, gateway: gw, currency: currency, notify: notify}
}

// ProceedToInformation moves BROWSING -> AWAITING_INFORMATION. The cart
// must hold at least one item; on ErrEmptyCart the session stays browsing.
func (f *Flow) ProceedToInformation() error {
	s := f.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateBrowsing {
		return fmt.Errorf("%w: %s", ErrWrongState, s.state)
	}
	if s.cart.Len() == 0 {
		return ErrEmptyCart
	}
	s.state = StateAwaitingInformation
	return nil
}

// BackToCart returns from the information step to browsing without
// touching the cart or any previously committed buyer.
func (f *Flow) BackToCart() error {
	s := f.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingInformation {
		return fmt.Errorf("%w: %s", ErrWrongState, s.state)
	}
	s.state = StateBrowsing
	return nil
}

// SubmitBuyer commits the information form and moves the session to
// AWAITING_PAYMENT. On buyer.ErrIncompleteInfo nothing moves and the
// previously committed buyer, if any, is untouched.
func (f *Flow) SubmitBuyer(b buyer.Buyer) error {
	s := f.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingInformation {
		return fmt.Errorf("%w: %s", ErrWrongState, s.state)
	}
	if err := s.buyer.Set(b); err != nil {
		return err
	}
	s.state = StateAwaitingPayment
	return nil
}

// Pay runs one payment attempt against the gateway and suspends the caller
// until it resolves. The cart snapshot and amount are fixed at initiation;
// the shopper may keep editing the cart while the processor works and the
// order is still built from that snapshot. At most one attempt may be
// outstanding per session; a second concurrent call gets
// ErrPaymentInFlight. Re-invoking from PAYMENT_FAILED or PAYMENT_CANCELLED
// first returns the session to AWAITING_PAYMENT.
func (f *Flow) Pay(ctx context.Context, opts payment.Options) (order.Order, error) {
	s := f.session

	s.mu.Lock()
	switch s.state {
	case StateAwaitingPayment:
	case StatePaymentFailed, StatePaymentCancelled:
		s.state = StateAwaitingPayment
	default:
		st := s.state
		s.mu.Unlock()
		return order.Order{}, fmt.Errorf("%w: %s", ErrWrongState, st)
	}
	if s.paying {
		s.mu.Unlock()
		return order.Order{}, ErrPaymentInFlight
	}
	b, ok := s.buyer.Get()
	if !ok {
		s.mu.Unlock()
		return order.Order{}, buyer.ErrIncompleteInfo
	}
	snapshot := s.cart.Snapshot()
	amount := cart.Total(snapshot)
	s.paying = true
	s.mu.Unlock()

	// the gateway call runs without the session lock: only this payment
	// transition suspends, never cart browsing
	receipt, err := f.gateway.Initiate(ctx, amount, f.currency, opts)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.paying = false

	if err != nil {
		s.state = StatePaymentFailed
		return order.Order{}, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	}

	switch receipt.Status {
	case payment.StatusCompleted:
		ord := order.Order{
			ID:        uuid.NewString(),
			Buyer:     b,
			Items:     snapshot,
			Total:     amount,
			Receipt:   receipt,
			CreatedAt: time.Now().UTC(),
		}
		// order construction, append and cart reset happen as one locked
		// step; nothing can observe a paid-but-unrecorded session
		if err := s.log.Append(ord); err != nil {
			fmt.Printf("warning: %v\n", err)
		}
		s.cart.Clear()
		s.state = StateCompleted
		if f.notify != nil {
			go f.notify.OrderCompleted(context.WithoutCancel(ctx), ord)
		}
		return ord, nil
	case payment.StatusCancelled:
		s.state = StatePaymentCancelled
		return order.Order{}, ErrPaymentCancelled
	default:
		// only an exact match on the success sentinel completes the flow;
		// unknown statuses fail safe
		s.state = StatePaymentFailed
		return order.Order{}, fmt.Errorf("%w: gateway status %q", ErrPaymentDeclined, receipt.Status)
	}
}

// ContinueShopping starts a fresh browse cycle after a completed order.
// The order log carries over; the cart was already cleared on completion.
func (f *Flow) ContinueShopping() error {
	s := f.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCompleted {
		return fmt.Errorf("%w: %s", ErrWrongState, s.state)
	}
	s.state = StateBrowsing
	return nil
}
