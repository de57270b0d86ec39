package cart

import "sync"

// Store owns the live cart for one shopping session. Mutations are applied
// in the order they are issued and Snapshot never observes a half-applied
// one.
type Store struct {
	mu    sync.RWMutex
	items []Item
}

func NewStore() *Store {
	return &Store{}
}

// Add appends an item. Duplicates are allowed and kept as separate entries.
func (s *Store) Add(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
}

// Remove drops the entry at index if it still matches item by title and
// price. A stale or out-of-range index is a no-op, not an error, so rapid
// clicks against an outdated snapshot cannot crash the session.
func (s *Store) Remove(item Item, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return
	}
	if s.items[index].Title != item.Title || !s.items[index].Price.Equal(item.Price) {
		return
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
}

// Snapshot returns the cart by value; later mutations never show through.
func (s *Store) Snapshot() Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Cart, len(s.items))
	copy(out, s.items)
	return out
}

// Clear empties the cart for a fresh browse cycle.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
