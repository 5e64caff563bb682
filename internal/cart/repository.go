package cart

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/wichananm65/storefront-backend/internal/product"
)

var (
	ErrNotFound        = errors.New("cart item not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Repository stores one row per (user, product) with a positive quantity.
type Repository interface {
	List(ctx context.Context, userID int) ([]Item, error)
	// Add increments the quantity of productID, creating the row if needed.
	Add(ctx context.Context, userID, productID, qty int) error
	SetQuantity(ctx context.Context, userID, productID, qty int) error
	Remove(ctx context.Context, userID, productID int) error
	Clear(ctx context.Context, userID int) error
}

// InMemoryRepository is used for tests and local scenarios. Catalog details
// are read from products when listing.
type InMemoryRepository struct {
	mu       sync.RWMutex
	carts    map[int]map[int]int
	products product.Repository
}

func NewInMemoryRepository(products product.Repository) *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[int]map[int]int), products: products}
}

func (r *InMemoryRepository) List(ctx context.Context, userID int) ([]Item, error) {
	r.mu.RLock()
	lines := make(map[int]int, len(r.carts[userID]))
	for pid, q := range r.carts[userID] {
		lines[pid] = q
	}
	r.mu.RUnlock()

	items := make([]Item, 0, len(lines))
	for pid, q := range lines {
		it := Item{ProductID: pid, Quantity: q}
		if r.products != nil {
			if p, err := r.products.GetByID(ctx, pid); err == nil {
				it.Name, it.Price, it.ImageURL, it.Stock = p.Name, p.Price, p.ImageURL, p.Stock
			}
		}
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items, nil
}

func (r *InMemoryRepository) Add(_ context.Context, userID, productID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.carts[userID] == nil {
		r.carts[userID] = make(map[int]int)
	}
	r.carts[userID][productID] += qty
	return nil
}

func (r *InMemoryRepository) SetQuantity(_ context.Context, userID, productID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[userID][productID]; !ok {
		return ErrNotFound
	}
	r.carts[userID][productID] = qty
	return nil
}

func (r *InMemoryRepository) Remove(_ context.Context, userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[userID][productID]; !ok {
		return ErrNotFound
	}
	delete(r.carts[userID], productID)
	return nil
}

// Clear empties a user's cart. Clearing an empty cart is not an error.
func (r *InMemoryRepository) Clear(_ context.Context, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
