package car

import (
	"context"
	"testing"

	"github.com/kailas-cloud/cardex/internal/db"
	domcar "github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/fuel"
	"github.com/kailas-cloud/cardex/internal/domain/search/filter"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn        func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn     func(ctx context.Context, key string) (map[string]string, error)
	hdelFn        func(ctx context.Context, key string, fields ...string) error
	delMultiFn    func(ctx context.Context, keys []string) error
	existsFn      func(ctx context.Context, key string) (bool, error)
	smembersFn    func(ctx context.Context, key string) ([]string, error)
	searchListFn  func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	searchCountFn func(ctx context.Context, index string, filters filter.Expression) (int, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	dropIndexFn   func(ctx context.Context, name string) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) HDel(ctx context.Context, key string, fields ...string) error {
	if m.hdelFn != nil {
		return m.hdelFn(ctx, key, fields...)
	}
	return nil
}

func (m *mockStore) DelMulti(ctx context.Context, keys []string) error {
	if m.delMultiFn != nil {
		return m.delMultiFn(ctx, keys)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		return m.smembersFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index string, filters filter.Expression) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, filters)
	}
	return 0, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) DropIndex(ctx context.Context, name string) error {
	if m.dropIndexFn != nil {
		return m.dropIndexFn(ctx, name)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms)
	return repo, ms
}

func testCar(t *testing.T) domcar.Car {
	t.Helper()
	priceMin, priceMax := 120000, 150000
	topSpeed := 293
	accelMin := 3.1
	perf := domcar.ReconstructPerformance(&topSpeed, &accelMin, nil)
	return domcar.Reconstruct(
		"911 Turbo", "porsche-911-turbo", "Porsche", "porsche", 2024, "4",
		&priceMin, &priceMax, []fuel.Type{fuel.TypePetrol}, &perf,
		1700000000000, 1700000000000,
	)
}

// minimalCar has no seats, prices, fuels or performance data.
func minimalCar(t *testing.T) domcar.Car {
	t.Helper()
	return domcar.Reconstruct(
		"2CV", "citroen-2cv", "Citroen", "citroen", 1948, "",
		nil, nil, nil, nil,
		1700000000000, 1700000000000,
	)
}
