package product

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the whole catalog, or one category of it when categoryID > 0.
func (s *Service) List(ctx context.Context, categoryID int) ([]Product, error) {
	if categoryID > 0 {
		return s.repo.ListByCategory(ctx, categoryID)
	}
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByIDs loads the products referenced by ids, skipping duplicates.
func (s *Service) ListByIDs(ctx context.Context, ids []int) ([]Product, error) {
	seen := make(map[int]struct{}, len(ids))
	uniq := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	return s.repo.ListByIDs(ctx, uniq)
}

func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id int, p Product) (Product, error) {
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
