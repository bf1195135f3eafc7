package cardex

import (
	"context"
	"fmt"
	"time"

	domcar "github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/fuel"
	domtag "github.com/kailas-cloud/cardex/internal/domain/tag"
	caruc "github.com/kailas-cloud/cardex/internal/usecase/car"
)

// CarService manages catalog cars.
type CarService struct {
	carSvc carUseCase
	tagSvc tagUseCase
	obs    *observer
}

// Create stores a new car and attaches its derived tags. The brand record
// is ensured on the fly; the returned car carries the tags.
func (s *CarService) Create(ctx context.Context, in CarInput) (_ Car, err error) {
	start := time.Now()
	defer func() { s.obs.observe("car.create", start, err) }()

	input, err := toCreateInput(in)
	if err != nil {
		return Car{}, fmt.Errorf("create car: %w", err)
	}
	c, err := s.carSvc.Create(ctx, input)
	if err != nil {
		return Car{}, fmt.Errorf("create car: %w", err)
	}
	tags, err := s.tagSvc.Tags(ctx, c.Slug())
	if err != nil {
		return Car{}, fmt.Errorf("create car: %w", err)
	}
	return fromInternalCar(c, tags), nil
}

// Get retrieves a car by slug. The returned car carries its derived tags.
func (s *CarService) Get(ctx context.Context, carSlug string) (_ Car, err error) {
	start := time.Now()
	defer func() { s.obs.observe("car.get", start, err) }()

	c, err := s.carSvc.Get(ctx, carSlug)
	if err != nil {
		return Car{}, fmt.Errorf("get car: %w", err)
	}
	tags, err := s.tagSvc.Tags(ctx, carSlug)
	if err != nil {
		return Car{}, fmt.Errorf("get car: %w", err)
	}
	return fromInternalCar(c, tags), nil
}

// List returns one catalog page matching the query. Listed cars do not
// carry tags; Get loads them.
func (s *CarService) List(ctx context.Context, q CarQuery) (_ CarPage, err error) {
	start := time.Now()
	defer func() { s.obs.observe("car.list", start, err) }()

	res, err := s.carSvc.List(ctx, toListQuery(q))
	if err != nil {
		return CarPage{}, fmt.Errorf("list cars: %w", err)
	}
	return fromListResult(res), nil
}

// Update replaces a car's mutable fields and re-syncs its derived tags.
func (s *CarService) Update(ctx context.Context, carSlug string, in CarUpdate) (_ Car, err error) {
	start := time.Now()
	defer func() { s.obs.observe("car.update", start, err) }()

	input, err := toUpdateInput(in)
	if err != nil {
		return Car{}, fmt.Errorf("update car: %w", err)
	}
	c, err := s.carSvc.Update(ctx, carSlug, input)
	if err != nil {
		return Car{}, fmt.Errorf("update car: %w", err)
	}
	tags, err := s.tagSvc.Tags(ctx, carSlug)
	if err != nil {
		return Car{}, fmt.Errorf("update car: %w", err)
	}
	return fromInternalCar(c, tags), nil
}

// Delete removes a car together with its engines and tag links.
func (s *CarService) Delete(ctx context.Context, carSlug string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("car.delete", start, err) }()

	if err = s.carSvc.Delete(ctx, carSlug); err != nil {
		return fmt.Errorf("delete car: %w", err)
	}
	return nil
}

// Query starts a fluent catalog query.
func (s *CarService) Query() *CarQueryBuilder {
	return &CarQueryBuilder{svc: s}
}

func toCreateInput(in CarInput) (caruc.CreateInput, error) {
	fuels, err := toInternalFuels(in.FuelTypes)
	if err != nil {
		return caruc.CreateInput{}, err
	}
	perf, err := toInternalPerformance(in.Performance)
	if err != nil {
		return caruc.CreateInput{}, err
	}
	return caruc.CreateInput{
		BrandName:   in.Brand,
		Name:        in.Name,
		Year:        in.Year,
		Seats:       in.Seats,
		PriceMin:    in.PriceMin,
		PriceMax:    in.PriceMax,
		FuelTypes:   fuels,
		Performance: perf,
	}, nil
}

func toUpdateInput(in CarUpdate) (caruc.UpdateInput, error) {
	fuels, err := toInternalFuels(in.FuelTypes)
	if err != nil {
		return caruc.UpdateInput{}, err
	}
	perf, err := toInternalPerformance(in.Performance)
	if err != nil {
		return caruc.UpdateInput{}, err
	}
	return caruc.UpdateInput{
		Name:        in.Name,
		Year:        in.Year,
		Seats:       in.Seats,
		PriceMin:    in.PriceMin,
		PriceMax:    in.PriceMax,
		FuelTypes:   fuels,
		Performance: perf,
	}, nil
}

func toListQuery(q CarQuery) caruc.ListQuery {
	return caruc.ListQuery{
		Search:    q.Search,
		FuelCode:  string(q.Fuel),
		BrandSlug: q.Brand,
		Year:      q.Year,
		PriceMin:  q.PriceMin,
		PriceMax:  q.PriceMax,
		Cursor:    q.Cursor,
		Limit:     q.Limit,
	}
}

func fromListResult(res caruc.ListResult) CarPage {
	cars := make([]Car, len(res.Cars))
	for i, c := range res.Cars {
		cars[i] = fromInternalCar(c, nil)
	}
	return CarPage{
		Cars:       cars,
		NextCursor: res.NextCursor,
		Total:      res.Total,
		HasMore:    res.NextCursor != "",
	}
}

func toInternalFuels(fuels []FuelType) ([]fuel.Type, error) {
	out := make([]fuel.Type, 0, len(fuels))
	for _, f := range fuels {
		t, err := fuel.FromCode(string(f))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func toInternalPerformance(p *Performance) (*domcar.Performance, error) {
	if p == nil {
		return nil, nil
	}
	perf, err := domcar.NewPerformance(p.TopSpeedKMH, p.AccelMinSeconds, p.AccelMaxSeconds)
	if err != nil {
		return nil, fmt.Errorf("performance: %w", err)
	}
	return &perf, nil
}

func fromInternalCar(c domcar.Car, tags []domtag.Tag) Car {
	fuels := make([]FuelType, len(c.FuelTypes()))
	for i, f := range c.FuelTypes() {
		fuels[i] = FuelType(f)
	}
	out := Car{
		Name:      c.Name(),
		Slug:      c.Slug(),
		Brand:     c.BrandName(),
		BrandSlug: c.BrandSlug(),
		Year:      c.Year(),
		Seats:     c.Seats(),
		PriceMin:  c.PriceMin(),
		PriceMax:  c.PriceMax(),
		FuelTypes: fuels,
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
	if p := c.Performance(); p != nil {
		out.Performance = &Performance{
			TopSpeedKMH:     p.TopSpeedKMH(),
			AccelMinSeconds: p.AccelMinSeconds(),
			AccelMaxSeconds: p.AccelMaxSeconds(),
		}
	}
	if len(tags) > 0 {
		out.Tags = fromInternalTags(tags)
	}
	return out
}
