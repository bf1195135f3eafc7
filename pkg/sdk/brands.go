package cardex

import (
	"context"
	"fmt"
	"time"

	dombrand "github.com/kailas-cloud/cardex/internal/domain/brand"
	statsuc "github.com/kailas-cloud/cardex/internal/usecase/stats"
)

// BrandService reads brands and computes brand statistics.
type BrandService struct {
	svc      brandUseCase
	statsSvc statsUseCase
	obs      *observer
}

// List returns every brand sorted by name.
func (s *BrandService) List(ctx context.Context) ([]Brand, error) {
	brands, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	out := make([]Brand, len(brands))
	for i, b := range brands {
		out[i] = fromInternalBrand(b)
	}
	return out, nil
}

// Get retrieves a brand by slug.
func (s *BrandService) Get(ctx context.Context, brandSlug string) (Brand, error) {
	b, err := s.svc.Get(ctx, brandSlug)
	if err != nil {
		return Brand{}, fmt.Errorf("get brand: %w", err)
	}
	return fromInternalBrand(b), nil
}

// Count returns the number of brands in the catalog.
func (s *BrandService) Count(ctx context.Context) (int, error) {
	n, err := s.svc.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count brands: %w", err)
	}
	return n, nil
}

// Statistics computes the aggregate catalog figures for one brand.
func (s *BrandService) Statistics(ctx context.Context, brandSlug string) (_ Statistics, err error) {
	start := time.Now()
	defer func() { s.obs.observe("brand.stats", start, err) }()

	st, err := s.statsSvc.Compute(ctx, brandSlug)
	if err != nil {
		return Statistics{}, fmt.Errorf("brand statistics: %w", err)
	}
	return fromInternalStatistics(st), nil
}

func fromInternalBrand(b dombrand.Brand) Brand {
	return Brand{Name: b.Name(), Slug: b.Slug(), CreatedAt: b.CreatedAt()}
}

func fromInternalStatistics(st statsuc.Statistics) Statistics {
	engines := make([]EngineCount, len(st.PopularEngines))
	for i, e := range st.PopularEngines {
		engines[i] = EngineCount{Description: e.Description, Count: e.Count}
	}
	tags := make([]TagCount, len(st.PopularTags))
	for i, t := range st.PopularTags {
		tags[i] = TagCount{Category: TagCategory(t.Category), Value: t.Value, Cars: t.Count}
	}
	return Statistics{
		CarCount:            st.CarCount,
		AveragePrice:        st.AveragePrice,
		AverageTopSpeed:     st.AverageTopSpeed,
		AverageAcceleration: st.AverageAcceleration,
		PopularEngines:      engines,
		PopularTags:         tags,
	}
}
