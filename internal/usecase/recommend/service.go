// Package recommend ranks the catalog by similarity to a reference car.
//
// Four weighted factors feed the score: price proximity, performance
// proximity, brand match and tag overlap. Scoring runs in memory over the
// whole catalog; the dataset is a few thousand cars at most.
package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/cardex/internal/domain/car"
)

// defaultLimit is how many recommendations a plain request returns.
const defaultLimit = 5

// Scored is one recommendation with its similarity score.
type Scored struct {
	Car   car.Car
	Score float64
}

// Query tunes one recommendation request. Nil fields fall back to the
// service defaults.
type Query struct {
	Limit   *int
	Weights *Weights
}

// Service scores and ranks recommendation candidates.
type Service struct {
	cars    CarReader
	tags    TagReader
	limit   int
	weights Weights
}

// Option configures the service.
type Option func(*Service)

// WithLimit overrides the default recommendation count.
func WithLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithWeights overrides the default factor weights.
func WithWeights(w Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// New creates a recommendation service.
func New(cars CarReader, tags TagReader, opts ...Option) *Service {
	s := &Service{cars: cars, tags: tags, limit: defaultLimit, weights: DefaultWeights()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend returns the cars most similar to the given one, best first.
// Equal scores keep catalog order. A limit at or below zero returns nothing.
func (s *Service) Recommend(ctx context.Context, carSlug string, q Query) ([]Scored, error) {
	ref, err := s.cars.Get(ctx, carSlug)
	if err != nil {
		return nil, fmt.Errorf("get car: %w", err)
	}

	limit := s.limit
	if q.Limit != nil {
		limit = *q.Limit
	}
	if limit <= 0 {
		return nil, nil
	}

	refTags, err := s.tags.CarTags(ctx, carSlug)
	if err != nil {
		return nil, fmt.Errorf("load tags for %s: %w", carSlug, err)
	}
	weights := s.weights
	if q.Weights != nil {
		weights = *q.Weights
	}
	score := newScorer(ref, refTags, weights)

	candidates, err := s.cars.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}

	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		if c.Slug() == ref.Slug() {
			continue
		}
		tags, err := s.tags.CarTags(ctx, c.Slug())
		if err != nil {
			return nil, fmt.Errorf("load tags for %s: %w", c.Slug(), err)
		}
		scored = append(scored, Scored{Car: c, Score: score.score(c, tags)})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}
