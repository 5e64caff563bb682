package product

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInUse is returned when deleting a product that order line items
	// still reference.
	ErrInUse = errors.New("product is referenced by orders")
)

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, categoryID int) ([]Product, error)
	GetByID(ctx context.Context, id int) (Product, error)
	ListByIDs(ctx context.Context, ids []int) ([]Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id int, p Product) (Product, error)
	Delete(ctx context.Context, id int) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	nextID  int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Product, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(_ context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) ListByCategory(_ context.Context, categoryID int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range r.storage {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// ListByIDs returns the products whose id is in ids, in the order of ids.
// Unknown ids are skipped.
func (r *InMemoryRepository) ListByIDs(_ context.Context, ids []int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		for _, p := range r.storage {
			if p.ID == id {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(_ context.Context, id int, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			p.ID = id
			p.CreatedAt = r.storage[i].CreatedAt
			p.UpdatedAt = time.Now().UTC()
			r.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ReserveStock decrements the stock of every product in qty (product id ->
// quantity) or of none of them: if any product is unknown or short, nothing
// changes.
func (r *InMemoryRepository) ReserveStock(qty map[int]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := make(map[int]int, len(qty))
	for id, n := range qty {
		found := false
		for i := range r.storage {
			if r.storage[i].ID == id {
				if r.storage[i].Stock < n {
					return fmt.Errorf("%w: product %d", ErrInsufficientStock, id)
				}
				idx[id] = i
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
	}
	for id, n := range qty {
		r.storage[idx[id]].Stock -= n
	}
	return nil
}

// ReleaseStock adds qty back, undoing a ReserveStock whose surrounding unit
// of work failed.
func (r *InMemoryRepository) ReleaseStock(qty map[int]int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, n := range qty {
		for i := range r.storage {
			if r.storage[i].ID == id {
				r.storage[i].Stock += n
				break
			}
		}
	}
}
