package category

import (
	"context"
	"strings"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// Service provides business logic for categories.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to limit categories; out-of-range limits fall back to the
// default.
func (s *Service) List(ctx context.Context, limit int) ([]Category, error) {
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	return s.repo.List(ctx, limit)
}

func (s *Service) GetByID(ctx context.Context, id int) (Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, name string, description *string) (Category, error) {
	c, err := newCategory(name, description)
	if err != nil {
		return Category{}, err
	}
	return s.repo.Create(ctx, c)
}

// Update replaces the name and description of category id.
func (s *Service) Update(ctx context.Context, id int, name string, description *string) (Category, error) {
	c, err := newCategory(name, description)
	if err != nil {
		return Category{}, err
	}
	return s.repo.Update(ctx, id, c)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func newCategory(name string, description *string) (Category, error) {
	c := Category{Name: strings.TrimSpace(name)}
	if c.Name == "" {
		return Category{}, ErrInvalidName
	}
	if description != nil {
		if d := strings.TrimSpace(*description); d != "" {
			c.Description = &d
		}
	}
	return c, nil
}
