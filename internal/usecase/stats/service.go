package stats

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kailas-cloud/cardex/internal/domain"
	"github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/engine"
	"github.com/kailas-cloud/cardex/internal/domain/tag"
)

// popularEngineLimit caps the popular engine list.
const popularEngineLimit = 3

// EngineCount is one popular engine group with its occurrence count.
type EngineCount struct {
	Description string
	Count       int
}

// TagCount is the most used tag of a category with its distinct-car count.
type TagCount struct {
	Category tag.Category
	Value    string
	Count    int
}

// Statistics aggregates a brand's catalog figures. Averages are nil when no
// car carries the underlying data.
type Statistics struct {
	CarCount            int
	AveragePrice        *float64
	AverageTopSpeed     *float64
	AverageAcceleration *float64
	PopularEngines      []EngineCount
	PopularTags         []TagCount
}

// Service computes brand statistics on demand.
type Service struct {
	brands  BrandReader
	cars    CarReader
	engines EngineReader
	tags    TagReader
}

// New creates a statistics service.
func New(brands BrandReader, cars CarReader, engines EngineReader, tags TagReader) *Service {
	return &Service{brands: brands, cars: cars, engines: engines, tags: tags}
}

// Compute builds the statistics for one brand.
func (s *Service) Compute(ctx context.Context, brandSlug string) (Statistics, error) {
	if _, err := s.brands.Get(ctx, brandSlug); err != nil {
		return Statistics{}, fmt.Errorf("get brand: %w", err)
	}

	cars, err := s.cars.ListByBrand(ctx, brandSlug)
	if err != nil {
		return Statistics{}, fmt.Errorf("list brand cars: %w", err)
	}

	stats := Statistics{CarCount: len(cars)}
	stats.AveragePrice = averagePrice(cars)
	stats.AverageTopSpeed, stats.AverageAcceleration = averagePerformance(cars)

	var engines []engine.Engine
	for _, c := range cars {
		es, err := s.engines.List(ctx, c.Slug())
		if err != nil {
			return Statistics{}, fmt.Errorf("list engines for %s: %w", c.Slug(), err)
		}
		engines = append(engines, es...)
	}
	stats.PopularEngines = popularEngines(engines, popularEngineLimit)

	stats.PopularTags, err = s.popularTags(ctx, cars)
	if err != nil {
		return Statistics{}, err
	}
	return stats, nil
}

// popularTags finds the most used tag per category among the given cars,
// counting distinct cars. Brand tags are excluded: every car of the brand
// carries one, so it says nothing.
func (s *Service) popularTags(ctx context.Context, cars []car.Car) ([]TagCount, error) {
	counts := make(map[string]int)
	for _, c := range cars {
		ids, err := s.tags.CarTags(ctx, c.Slug())
		if err != nil {
			return nil, fmt.Errorf("load tags for %s: %w", c.Slug(), err)
		}
		for _, id := range ids {
			counts[id]++
		}
	}

	best := make(map[tag.Category]TagCount)
	for id, n := range counts {
		t, err := s.tags.Get(ctx, id)
		if errors.Is(err, domain.ErrTagNotFound) {
			// membership outlived its record; skip it
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get tag %s: %w", id, err)
		}
		if t.Category() == tag.CategoryBrand {
			continue
		}
		cur, ok := best[t.Category()]
		if !ok || n > cur.Count || (n == cur.Count && t.Value() < cur.Value) {
			best[t.Category()] = TagCount{Category: t.Category(), Value: t.Value(), Count: n}
		}
	}

	// Category declaration order first, then a stable sort by count keeps
	// equal counts in that order.
	out := make([]TagCount, 0, len(best))
	for _, cat := range tag.Categories() {
		if tc, ok := best[cat]; ok {
			out = append(out, tc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}
