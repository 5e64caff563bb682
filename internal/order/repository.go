package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wichananm65/storefront-backend/internal/product"
	"github.com/wichananm65/storefront-backend/internal/user"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrEmptyOrder       = errors.New("order must contain at least one item")
	ErrInvalidOrder     = errors.New("invalid order")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrForbidden        = errors.New("admin privileges required")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrStockUnavailable = errors.New("insufficient stock")
)

// ValidationError names the offending request field. It matches
// ErrInvalidOrder under errors.Is.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidOrder
}

// Repository persists orders. Create is a single unit of work: the header,
// every line item with its stock decrement, and the removal of the owner's
// cart either all happen or none do.
type Repository interface {
	Create(ctx context.Context, o Order) (Order, error)
	// GetByIDForUser returns ErrNotFound both for missing orders and for
	// orders owned by someone else.
	GetByIDForUser(ctx context.Context, id, userID int) (Order, error)
	ListByUser(ctx context.Context, userID int) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	// UpdateStatus changes only status and updated_at.
	UpdateStatus(ctx context.Context, id int, s Status) (Order, error)
}

// CartClearer empties a user's cart.
type CartClearer interface {
	Clear(ctx context.Context, userID int) error
}

// InMemoryRepository backs tests and local runs. Stock lives in the product
// in-memory store and carts in the cart in-memory store, so checkout touches
// the same state the other handlers read.
type InMemoryRepository struct {
	mu         sync.RWMutex
	orders     []Order
	nextID     int
	nextItemID int

	products *product.InMemoryRepository
	carts    CartClearer
	users    user.Repository
}

// NewInMemoryRepository wires the collaborating stores. users may be nil, in
// which case ListAll leaves owner emails empty.
func NewInMemoryRepository(products *product.InMemoryRepository, carts CartClearer, users user.Repository) *InMemoryRepository {
	return &InMemoryRepository{
		nextID:     1,
		nextItemID: 1,
		products:   products,
		carts:      carts,
		users:      users,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Order{}, err
	}

	qty := o.stockByProduct()
	if err := r.products.ReserveStock(qty); err != nil {
		switch {
		case errors.Is(err, product.ErrInsufficientStock):
			return Order{}, fmt.Errorf("%w: %v", ErrStockUnavailable, err)
		case errors.Is(err, product.ErrNotFound):
			return Order{}, &ValidationError{Field: "items", Msg: err.Error()}
		default:
			return Order{}, err
		}
	}
	if err := r.carts.Clear(ctx, o.UserID); err != nil {
		r.products.ReleaseStock(qty)
		return Order{}, fmt.Errorf("clear cart: %w", err)
	}

	now := time.Now().UTC()
	o.ID = r.nextID
	r.nextID++
	o.Status = StatusPending
	o.CreatedAt, o.UpdatedAt = now, now
	items := make([]LineItem, len(o.Items))
	for i, li := range o.Items {
		li.ID = r.nextItemID
		r.nextItemID++
		li.OrderID = o.ID
		items[i] = li
	}
	o.Items = items
	r.orders = append(r.orders, o)
	return o, nil
}

func (r *InMemoryRepository) GetByIDForUser(ctx context.Context, id, userID int) (Order, error) {
	r.mu.RLock()
	var found *Order
	for i := range r.orders {
		if r.orders[i].ID == id && r.orders[i].UserID == userID {
			o := r.orders[i]
			found = &o
			break
		}
	}
	r.mu.RUnlock()

	if found == nil {
		return Order{}, ErrNotFound
	}
	out := []Order{*found}
	r.enrich(ctx, out)
	return out[0], nil
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	return r.list(ctx, func(o Order) bool { return o.UserID == userID }), nil
}

func (r *InMemoryRepository) ListAll(ctx context.Context) ([]Order, error) {
	out := r.list(ctx, func(Order) bool { return true })
	if r.users == nil {
		return out, nil
	}
	for i := range out {
		if u, err := r.users.GetByID(ctx, out[i].UserID); err == nil {
			email := u.Email
			out[i].UserEmail = &email
		}
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id int, s Status) (Order, error) {
	r.mu.Lock()
	var found *Order
	for i := range r.orders {
		if r.orders[i].ID != id {
			continue
		}
		// updated_at moves forward on every write, same status included
		now := time.Now().UTC()
		if !now.After(r.orders[i].UpdatedAt) {
			now = r.orders[i].UpdatedAt.Add(time.Microsecond)
		}
		r.orders[i].Status = s
		r.orders[i].UpdatedAt = now
		o := r.orders[i]
		found = &o
		break
	}
	r.mu.Unlock()

	if found == nil {
		return Order{}, ErrNotFound
	}
	out := []Order{*found}
	r.enrich(ctx, out)
	return out[0], nil
}

// list returns copies of the matching orders, newest first.
func (r *InMemoryRepository) list(ctx context.Context, keep func(Order) bool) []Order {
	r.mu.RLock()
	out := make([]Order, 0)
	for _, o := range r.orders {
		if keep(o) {
			o.Items = append([]LineItem(nil), o.Items...)
			out = append(out, o)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	r.enrich(ctx, out)
	return out
}

// enrich fills product name and image from the live catalog.
func (r *InMemoryRepository) enrich(ctx context.Context, orders []Order) {
	ids := make([]int, 0)
	for _, o := range orders {
		ids = append(ids, o.productIDs()...)
	}
	if len(ids) == 0 {
		return
	}
	prods, err := r.products.ListByIDs(ctx, ids)
	if err != nil {
		return
	}
	byID := make(map[int]product.Product, len(prods))
	for _, p := range prods {
		byID[p.ID] = p
	}
	for i := range orders {
		items := make([]LineItem, len(orders[i].Items))
		for j, li := range orders[i].Items {
			if p, ok := byID[li.ProductID]; ok {
				name := p.Name
				li.ProductName = &name
				li.ProductImage = p.ImageURL
			}
			items[j] = li
		}
		orders[i].Items = items
	}
}
