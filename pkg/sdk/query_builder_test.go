package cardex

import (
	"context"
	"errors"
	"testing"

	domcar "github.com/kailas-cloud/cardex/internal/domain/car"
	caruc "github.com/kailas-cloud/cardex/internal/usecase/car"
)

func TestCarQueryBuilder_BuildsQuery(t *testing.T) {
	var got caruc.ListQuery
	carMock := &mockCarUC{
		listFn: func(_ context.Context, q caruc.ListQuery) (caruc.ListResult, error) {
			got = q
			return caruc.ListResult{}, nil
		},
	}

	svc := &CarService{carSvc: carMock}
	_, err := svc.Query().
		Search("turbo").
		Brand("porsche").
		Fuel(FuelPetrol).
		Year(2022).
		PriceMin(50000).
		PriceMax(250000).
		Cursor("porsche-911").
		Limit(20).
		Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Search != "turbo" || got.BrandSlug != "porsche" || got.FuelCode != "P" {
		t.Errorf("query = %+v, want turbo/porsche/P", got)
	}
	if got.Year == nil || *got.Year != 2022 {
		t.Errorf("Year = %v, want 2022", got.Year)
	}
	if got.PriceMin == nil || *got.PriceMin != 50000 {
		t.Errorf("PriceMin = %v, want 50000", got.PriceMin)
	}
	if got.PriceMax == nil || *got.PriceMax != 250000 {
		t.Errorf("PriceMax = %v, want 250000", got.PriceMax)
	}
	if got.Cursor != "porsche-911" || got.Limit != 20 {
		t.Errorf("paging = %q/%d, want porsche-911/20", got.Cursor, got.Limit)
	}
}

func TestCarQueryBuilder_Defaults(t *testing.T) {
	carMock := &mockCarUC{
		listFn: func(_ context.Context, q caruc.ListQuery) (caruc.ListResult, error) {
			if q.Year != nil || q.PriceMin != nil || q.PriceMax != nil {
				t.Errorf("unset filters must stay nil, got %+v", q)
			}
			if q.Limit != 0 {
				t.Errorf("Limit = %d, want 0 (client default)", q.Limit)
			}
			return caruc.ListResult{
				Cars:  []domcar.Car{testDomainCar("911", "porsche-911", "Porsche", "porsche")},
				Total: 1,
			}, nil
		},
	}

	svc := &CarService{carSvc: carMock}
	page, err := svc.Query().Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Cars) != 1 {
		t.Errorf("len = %d, want 1", len(page.Cars))
	}
}

func TestCarQueryBuilder_Do_Error(t *testing.T) {
	carMock := &mockCarUC{
		listFn: func(_ context.Context, _ caruc.ListQuery) (caruc.ListResult, error) {
			return caruc.ListResult{}, errors.New("index missing")
		},
	}

	svc := &CarService{carSvc: carMock}
	_, err := svc.Query().Search("x").Do(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
}
