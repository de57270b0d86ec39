package checkout

import (
	"sync"

	"github.com/confmerch/checkout-backend/internal/buyer"
	"github.com/confmerch/checkout-backend/internal/cart"
	"github.com/confmerch/checkout-backend/internal/order"
)

// Session owns all state for one shopper: the live cart, the committed
// buyer, the flow position, and the log of completed orders. It is passed
// by reference to the flow; nothing here is package-global.
type Session struct {
	mu     sync.Mutex
	state  State
	cart   *cart.Store
	buyer  *buyer.Record
	log    *order.Log
	paying bool // at most one outstanding payment attempt
}

func NewSession(log *order.Log) *Session {
	if log == nil {
		log = order.NewLog(nil)
	}
	return &Session{
		state: StateBrowsing,
		cart:  cart.NewStore(),
		buyer: buyer.NewRecord(),
		log:   log,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cart exposes the live cart store. The store has its own lock, so the UI
// can keep adding and removing items while a payment attempt is suspended.
func (s *Session) Cart() *cart.Store {
	return s.cart
}

// Buyer returns the committed buyer, if one has been submitted.
func (s *Session) Buyer() (buyer.Buyer, bool) {
	return s.buyer.Get()
}

// Orders returns the completed orders of this session in append order.
func (s *Session) Orders() []order.Order {
	return s.log.List()
}
