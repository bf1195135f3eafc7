package brand

import (
	"context"
	"fmt"

	dombrand "github.com/kailas-cloud/cardex/internal/domain/brand"
)

// Service handles brand reads. Brands are created implicitly with their
// cars, so there is no write surface here.
type Service struct {
	repo Repository
}

// New creates a brand service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get retrieves a brand by slug.
func (s *Service) Get(ctx context.Context, brandSlug string) (dombrand.Brand, error) {
	b, err := s.repo.Get(ctx, brandSlug)
	if err != nil {
		return dombrand.Brand{}, fmt.Errorf("get brand: %w", err)
	}
	return b, nil
}

// List returns all brands ordered by name.
func (s *Service) List(ctx context.Context) ([]dombrand.Brand, error) {
	brands, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}

// Count returns the number of brands.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count brands: %w", err)
	}
	return n, nil
}
