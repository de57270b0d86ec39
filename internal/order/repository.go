package order

import (
	"fmt"
	"sync"
)

// Repository defines persistence operations for completed orders.
type Repository interface {
	Create(ord Order) (Order, error)

	// ListByIDs returns the orders whose orderID is present in the
	// provided slice, ordered the same way as the ids argument. An empty
	// ids slice returns an empty result without touching storage.
	ListByIDs(ids []string) ([]Order, error)
}

// Log is the append-only in-memory record of completed orders for one
// session. An optional archive repository receives a copy of every append;
// an archive failure is reported but never undoes the in-memory append,
// since the payment behind the order has already succeeded.
type Log struct {
	mu      sync.RWMutex
	orders  []Order
	archive Repository
}

// NewLog returns an empty log. archive may be nil.
func NewLog(archive Repository) *Log {
	return &Log{archive: archive}
}

// Append records a completed order. Historical orders are never removed.
func (l *Log) Append(ord Order) error {
	l.mu.Lock()
	l.orders = append(l.orders, ord)
	l.mu.Unlock()

	if l.archive != nil {
		if _, err := l.archive.Create(ord); err != nil {
			return fmt.Errorf("archive order %s: %w", ord.ID, err)
		}
	}
	return nil
}

// List returns the orders in append order, by value.
func (l *Log) List() []Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Order, len(l.orders))
	copy(out, l.orders)
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders)
}
