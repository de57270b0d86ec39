package catalog

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("product not found")

// Repository provides access to the merchandise on offer.
type Repository interface {
	List() []Product
	GetByID(id int) (Product, error)
}

// InMemoryRepository serves a fixed catalog; used for tests and for running
// without a database.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{products: make([]Product, 0, len(seed))}
	r.products = append(r.products, seed...)
	return r
}

// DefaultCatalog is the conference merch lineup served when no seed is
// provided.
func DefaultCatalog() []Product {
	return []Product{
		{ID: 1, Title: "Conf T-Shirt", Price: decimal.RequireFromString("20.00"), Image: "/merch/tshirt.png"},
		{ID: 2, Title: "Conf Mug", Price: decimal.RequireFromString("10.00"), Image: "/merch/mug.png"},
		{ID: 3, Title: "Conf Hoodie", Price: decimal.RequireFromString("35.00"), Image: "/merch/hoodie.png"},
		{ID: 4, Title: "Sticker Pack", Price: decimal.RequireFromString("5.00"), Image: "/merch/stickers.png"},
		{ID: 5, Title: "Conf Cap", Price: decimal.RequireFromString("15.00"), Image: "/merch/cap.png"},
	}
}

func (r *InMemoryRepository) List() []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}
