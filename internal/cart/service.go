package cart

import (
	"context"

	"github.com/wichananm65/storefront-backend/internal/product"
)

// ProductLookup is the slice of the catalog the cart needs.
type ProductLookup interface {
	GetByID(ctx context.Context, id int) (product.Product, error)
}

// Service orchestrates cart operations.
type Service struct {
	repo     Repository
	products ProductLookup
}

func NewService(repo Repository, products ProductLookup) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) Get(ctx context.Context, userID int) (Cart, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	return newCart(items), nil
}

// Add puts qty more units of productID into the cart. Unknown products
// surface as product.ErrNotFound.
func (s *Service) Add(ctx context.Context, userID, productID, qty int) (Cart, error) {
	if qty <= 0 {
		return Cart{}, ErrInvalidQuantity
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return Cart{}, err
	}
	if err := s.repo.Add(ctx, userID, productID, qty); err != nil {
		return Cart{}, err
	}
	return s.Get(ctx, userID)
}

// SetQuantity overwrites the quantity of a line; zero or less removes it.
func (s *Service) SetQuantity(ctx context.Context, userID, productID, qty int) (Cart, error) {
	var err error
	if qty <= 0 {
		err = s.repo.Remove(ctx, userID, productID)
	} else {
		err = s.repo.SetQuantity(ctx, userID, productID, qty)
	}
	if err != nil {
		return Cart{}, err
	}
	return s.Get(ctx, userID)
}

func (s *Service) Remove(ctx context.Context, userID, productID int) (Cart, error) {
	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return Cart{}, err
	}
	return s.Get(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID int) error {
	return s.repo.Clear(ctx, userID)
}
