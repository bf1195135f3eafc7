package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/cardex/internal/domain"
	"github.com/kailas-cloud/cardex/internal/domain/brand"
	"github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/engine"
	"github.com/kailas-cloud/cardex/internal/domain/tag"
)

type mockBrandReader struct {
	brand brand.Brand
	err   error
}

func (m *mockBrandReader) Get(_ context.Context, _ string) (brand.Brand, error) {
	return m.brand, m.err
}

type mockCarReader struct {
	cars []car.Car
	err  error
}

func (m *mockCarReader) ListByBrand(_ context.Context, _ string) ([]car.Car, error) {
	return m.cars, m.err
}

type mockEngineReader struct {
	byCar map[string][]engine.Engine
	err   error
}

func (m *mockEngineReader) List(_ context.Context, carSlug string) ([]engine.Engine, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byCar[carSlug], nil
}

type mockTagReader struct {
	carTags map[string][]string
	tags    map[string]tag.Tag
	err     error
}

func (m *mockTagReader) CarTags(_ context.Context, carSlug string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.carTags[carSlug], nil
}

func (m *mockTagReader) Get(_ context.Context, id string) (tag.Tag, error) {
	t, ok := m.tags[id]
	if !ok {
		return tag.Tag{}, domain.ErrTagNotFound
	}
	return t, nil
}

func statsService(cars *mockCarReader, engines *mockEngineReader, tags *mockTagReader) *Service {
	brands := &mockBrandReader{brand: brand.Reconstruct("Porsche", "porsche", 0)}
	if engines == nil {
		engines = &mockEngineReader{}
	}
	if tags == nil {
		tags = &mockTagReader{}
	}
	return New(brands, cars, engines, tags)
}

func statsCar(name, carSlug string, priceMin, priceMax *int, perf *car.Performance) car.Car {
	return car.Reconstruct(name, carSlug, "Porsche", "porsche", 2024, "4", priceMin, priceMax, nil, perf, 0, 0)
}

func twinTurboV8() engine.Engine {
	layout, cylinders, aspiration := engine.LayoutV, 8, engine.AspirationTwinTurbo
	return engine.Reconstruct(1, "", &layout, &cylinders, &aspiration, nil, nil, nil, nil, 0, 0)
}

func TestCompute_BrandNotFound(t *testing.T) {
	svc := New(
		&mockBrandReader{err: domain.ErrBrandNotFound},
		&mockCarReader{}, &mockEngineReader{}, &mockTagReader{},
	)

	_, err := svc.Compute(context.Background(), "nope")
	if !errors.Is(err, domain.ErrBrandNotFound) {
		t.Errorf("expected ErrBrandNotFound, got %v", err)
	}
}

func TestCompute_EmptyBrand(t *testing.T) {
	svc := statsService(&mockCarReader{}, nil, nil)

	stats, err := svc.Compute(context.Background(), "porsche")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.CarCount != 0 {
		t.Errorf("expected zero cars, got %d", stats.CarCount)
	}
	if stats.AveragePrice != nil || stats.AverageTopSpeed != nil || stats.AverageAcceleration != nil {
		t.Error("expected nil averages for an empty brand")
	}
	if len(stats.PopularEngines) != 0 || len(stats.PopularTags) != 0 {
		t.Errorf("expected empty popularity lists, got %v / %v", stats.PopularEngines, stats.PopularTags)
	}
}

func TestCompute_Full(t *testing.T) {
	lo1, hi1 := 100000, 140000
	lo2, hi2 := 80000, 100000
	top1, top2 := 300, 250
	min1, max1 := 3.0, 4.0
	min2 := 5.0
	perf1 := car.ReconstructPerformance(&top1, &min1, &max1)
	perf2 := car.ReconstructPerformance(&top2, &min2, nil)

	cars := &mockCarReader{cars: []car.Car{
		statsCar("911", "porsche-911", &lo1, &hi1, &perf1),
		statsCar("Cayenne", "porsche-cayenne", &lo2, &hi2, &perf2),
	}}
	engines := &mockEngineReader{byCar: map[string][]engine.Engine{
		"porsche-911":     {twinTurboV8()},
		"porsche-cayenne": {twinTurboV8()},
	}}
	tags := &mockTagReader{
		carTags: map[string][]string{
			"porsche-911":     {"brand:porsche", "fuel_type:petrol", "performance_metrics:top-speed"},
			"porsche-cayenne": {"brand:porsche", "fuel_type:petrol"},
		},
		tags: map[string]tag.Tag{
			"brand:porsche":                 tag.Reconstruct(tag.CategoryBrand, "porsche", 0),
			"fuel_type:petrol":              tag.Reconstruct(tag.CategoryFuelType, "petrol", 0),
			"performance_metrics:top-speed": tag.Reconstruct(tag.CategoryPerformance, "top-speed", 0),
		},
	}
	svc := statsService(cars, engines, tags)

	stats, err := svc.Compute(context.Background(), "porsche")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.CarCount != 2 {
		t.Errorf("expected 2 cars, got %d", stats.CarCount)
	}
	// (120000 + 90000) / 2
	if stats.AveragePrice == nil || *stats.AveragePrice != 105000 {
		t.Errorf("expected average price 105000, got %v", stats.AveragePrice)
	}
	if stats.AverageTopSpeed == nil || *stats.AverageTopSpeed != 275 {
		t.Errorf("expected average top speed 275, got %v", stats.AverageTopSpeed)
	}
	// accel min mean 4, accel max mean 4
	if stats.AverageAcceleration == nil || *stats.AverageAcceleration != 4 {
		t.Errorf("expected average acceleration 4, got %v", stats.AverageAcceleration)
	}
	if len(stats.PopularEngines) != 1 || stats.PopularEngines[0] != (EngineCount{Description: "V8 Twin Turbo", Count: 2}) {
		t.Errorf("unexpected popular engines: %v", stats.PopularEngines)
	}
	wantTags := []TagCount{
		{Category: tag.CategoryFuelType, Value: "petrol", Count: 2},
		{Category: tag.CategoryPerformance, Value: "top-speed", Count: 1},
	}
	if len(stats.PopularTags) != len(wantTags) {
		t.Fatalf("expected %d popular tags, got %v", len(wantTags), stats.PopularTags)
	}
	for i, want := range wantTags {
		if stats.PopularTags[i] != want {
			t.Errorf("popular tag %d: expected %+v, got %+v", i, want, stats.PopularTags[i])
		}
	}
}

func TestCompute_PopularTagValueTiebreak(t *testing.T) {
	cars := &mockCarReader{cars: []car.Car{
		statsCar("911", "porsche-911", nil, nil, nil),
		statsCar("Cayenne", "porsche-cayenne", nil, nil, nil),
	}}
	tags := &mockTagReader{
		carTags: map[string][]string{
			"porsche-911":     {"fuel_type:petrol"},
			"porsche-cayenne": {"fuel_type:diesel"},
		},
		tags: map[string]tag.Tag{
			"fuel_type:petrol": tag.Reconstruct(tag.CategoryFuelType, "petrol", 0),
			"fuel_type:diesel": tag.Reconstruct(tag.CategoryFuelType, "diesel", 0),
		},
	}
	svc := statsService(cars, nil, tags)

	stats, err := svc.Compute(context.Background(), "porsche")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats.PopularTags) != 1 {
		t.Fatalf("expected one popular tag, got %v", stats.PopularTags)
	}
	if stats.PopularTags[0].Value != "diesel" {
		t.Errorf("expected equal counts to break toward the smaller value, got %q", stats.PopularTags[0].Value)
	}
}

func TestCompute_SkipsDanglingTagMembership(t *testing.T) {
	cars := &mockCarReader{cars: []car.Car{statsCar("911", "porsche-911", nil, nil, nil)}}
	tags := &mockTagReader{
		carTags: map[string][]string{"porsche-911": {"fuel_type:petrol", "engine:v8"}},
		tags: map[string]tag.Tag{
			"fuel_type:petrol": tag.Reconstruct(tag.CategoryFuelType, "petrol", 0),
		},
	}
	svc := statsService(cars, nil, tags)

	stats, err := svc.Compute(context.Background(), "porsche")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats.PopularTags) != 1 || stats.PopularTags[0].Value != "petrol" {
		t.Errorf("expected the dangling membership skipped, got %v", stats.PopularTags)
	}
}

func TestCompute_EngineListError(t *testing.T) {
	boom := errors.New("boom")
	cars := &mockCarReader{cars: []car.Car{statsCar("911", "porsche-911", nil, nil, nil)}}
	svc := statsService(cars, &mockEngineReader{err: boom}, nil)

	_, err := svc.Compute(context.Background(), "porsche")
	if !errors.Is(err, boom) {
		t.Errorf("expected the engine error surfaced, got %v", err)
	}
}
