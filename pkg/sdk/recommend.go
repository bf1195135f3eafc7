package cardex

import (
	"context"
	"fmt"
	"time"

	recommenduc "github.com/kailas-cloud/cardex/internal/usecase/recommend"
)

// RecommendationService suggests similar cars.
type RecommendationService struct {
	svc recommendUseCase
	obs *observer
}

// RecommendQuery tunes one recommendation request. Nil fields fall back
// to the client defaults.
type RecommendQuery struct {
	Limit   *int
	Weights *Weights
}

// ForCar returns cars similar to the given one, best match first.
func (s *RecommendationService) ForCar(
	ctx context.Context, carSlug string, q RecommendQuery,
) (_ []Recommendation, err error) {
	start := time.Now()
	defer func() { s.obs.observe("recommend.for_car", start, err) }()

	scored, err := s.svc.Recommend(ctx, carSlug, toRecommendQuery(q))
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	out := make([]Recommendation, len(scored))
	for i, sc := range scored {
		out[i] = Recommendation{Car: fromInternalCar(sc.Car, nil), Score: sc.Score}
	}
	return out, nil
}

func toRecommendQuery(q RecommendQuery) recommenduc.Query {
	out := recommenduc.Query{Limit: q.Limit}
	if q.Weights != nil {
		w := toInternalWeights(*q.Weights)
		out.Weights = &w
	}
	return out
}

func toInternalWeights(w Weights) recommenduc.Weights {
	return recommenduc.Weights{
		Price:       w.Price,
		Performance: w.Performance,
		Brand:       w.Brand,
		Tags:        w.Tags,
	}
}
