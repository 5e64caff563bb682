package category

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotFound    = errors.New("category not found")
	ErrNameExists  = errors.New("category name already exists")
	ErrInvalidName = errors.New("category name is required")
)

// Repository provides access to category rows.
type Repository interface {
	List(ctx context.Context, limit int) ([]Category, error)
	GetByID(ctx context.Context, id int) (Category, error)
	Create(ctx context.Context, c Category) (Category, error)
	Update(ctx context.Context, id int, c Category) (Category, error)
	// Delete removes a category. Products in it become uncategorised.
	Delete(ctx context.Context, id int) error
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	items  []Category
	nextID int
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	r := &InMemoryRepository{items: append([]Category(nil), seed...), nextID: 1}
	for _, c := range seed {
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
	}
	return r
}

// List returns up to limit categories ordered by name.
func (r *InMemoryRepository) List(_ context.Context, limit int) ([]Category, error) {
	r.mu.RLock()
	out := append([]Category(nil), r.items...)
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []Category{}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if strings.EqualFold(existing.Name, c.Name) {
			return Category{}, ErrNameExists
		}
	}
	c.ID = r.nextID
	r.nextID++
	c.CreatedAt = time.Now().UTC()
	r.items = append(r.items, c)
	return c, nil
}

func (r *InMemoryRepository) Update(_ context.Context, id int, c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i, existing := range r.items {
		if existing.ID == id {
			idx = i
			continue
		}
		if strings.EqualFold(existing.Name, c.Name) {
			return Category{}, ErrNameExists
		}
	}
	if idx < 0 {
		return Category{}, ErrNotFound
	}
	c.ID = id
	c.CreatedAt = r.items[idx].CreatedAt
	r.items[idx] = c
	return c, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
