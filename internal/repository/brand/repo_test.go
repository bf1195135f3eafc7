package brand

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/cardex/internal/db"
	"github.com/kailas-cloud/cardex/internal/domain"
	"github.com/kailas-cloud/cardex/internal/domain/search/filter"
)

// --- Ensure ---

func TestEnsure_CreatesWhenMissing(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		if key != "cardex:brand:porsche" {
			t.Errorf("unexpected key: %s", key)
		}
		return map[string]string{}, nil
	}
	var hsetCalled bool
	ms.hsetFn = func(_ context.Context, key string, fields map[string]string) error {
		hsetCalled = true
		if key != "cardex:brand:porsche" {
			t.Errorf("unexpected key: %s", key)
		}
		if fields["name"] != "Porsche" || fields["slug"] != "porsche" {
			t.Errorf("unexpected fields: %v", fields)
		}
		return nil
	}

	b, err := repo.Ensure(ctx, testBrand(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hsetCalled {
		t.Error("expected HSET to be called")
	}
	if b.Name() != "Porsche" || b.CreatedAt() != 1700000000000 {
		t.Fatalf("unexpected brand: %s / %d", b.Name(), b.CreatedAt())
	}
}

func TestEnsure_ReturnsStoredWhenPresent(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.hgetAllFn = func(_ context.Context, _ string) (map[string]string, error) {
		return map[string]string{
			"name":       "Porsche",
			"slug":       "porsche",
			"created_at": "1600000000000",
		}, nil
	}
	ms.hsetFn = func(_ context.Context, _ string, _ map[string]string) error {
		t.Error("HSET must not be called when the brand exists")
		return nil
	}

	b, err := repo.Ensure(ctx, testBrand(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.CreatedAt() != 1600000000000 {
		t.Fatalf("expected stored creation time to win, got %d", b.CreatedAt())
	}
}

func TestEnsure_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.hgetAllFn = func(_ context.Context, _ string) (map[string]string, error) {
		return nil, errors.New("connection lost")
	}

	if _, err := repo.Ensure(ctx, testBrand(t)); err == nil {
		t.Fatal("expected error on HGETALL failure")
	}
}

// --- Get ---

func TestGet_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		if key != "cardex:brand:porsche" {
			t.Errorf("unexpected key: %s", key)
		}
		return brandToHash(testBrand(t)), nil
	}

	b, err := repo.Get(ctx, "porsche")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Name() != "Porsche" || b.Slug() != "porsche" {
		t.Fatalf("unexpected brand: %s / %s", b.Name(), b.Slug())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.hgetAllFn = func(_ context.Context, _ string) (map[string]string, error) {
		return map[string]string{}, nil
	}

	_, err := repo.Get(ctx, "nonexistent")
	if !errors.Is(err, domain.ErrBrandNotFound) {
		t.Fatalf("expected ErrBrandNotFound, got %v", err)
	}
}

// --- List ---

func TestList_SortedByName(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		if q.IndexName != "cardex:brands:idx" {
			t.Errorf("unexpected index: %s", q.IndexName)
		}
		if q.SortBy != "name" || q.SortDesc {
			t.Errorf("unexpected sort: %s desc=%v", q.SortBy, q.SortDesc)
		}
		if !q.Filters.IsEmpty() {
			t.Error("expected empty filters")
		}
		return &db.SearchResult{Total: 2, Entries: []db.SearchEntry{
			{Key: "cardex:brand:bmw", Fields: map[string]string{
				"name": "BMW", "slug": "bmw", "created_at": "1700000000001",
			}},
			{Key: "cardex:brand:porsche", Fields: map[string]string{
				"name": "Porsche", "slug": "porsche", "created_at": "1700000000002",
			}},
		}}, nil
	}

	brands, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(brands) != 2 {
		t.Fatalf("expected 2 brands, got %d", len(brands))
	}
	if brands[0].Name() != "BMW" || brands[1].Name() != "Porsche" {
		t.Fatalf("unexpected order: %s, %s", brands[0].Name(), brands[1].Name())
	}
}

func TestList_Empty(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchListFn = func(_ context.Context, _ *db.ListQuery) (*db.SearchResult, error) {
		return &db.SearchResult{}, nil
	}

	brands, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(brands) != 0 {
		t.Fatalf("expected no brands, got %d", len(brands))
	}
}

// --- Count ---

func TestCount_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchCountFn = func(_ context.Context, index string, filters filter.Expression) (int, error) {
		if index != "cardex:brands:idx" {
			t.Errorf("unexpected index: %s", index)
		}
		if !filters.IsEmpty() {
			t.Error("expected empty filters")
		}
		return 17, nil
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 17 {
		t.Fatalf("expected 17, got %d", count)
	}
}

// --- Index lifecycle ---

func TestEnsureIndex_CreatesWhenMissing(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.indexExistsFn = func(_ context.Context, name string) (bool, error) {
		if name != "cardex:brands:idx" {
			t.Errorf("unexpected index name: %s", name)
		}
		return false, nil
	}
	var created *db.IndexDefinition
	ms.createIndexFn = func(_ context.Context, def *db.IndexDefinition) error {
		created = def
		return nil
	}

	if err := repo.EnsureIndex(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected FT.CREATE to be called")
	}
	if len(created.Prefixes) != 1 || created.Prefixes[0] != "cardex:brand:" {
		t.Errorf("unexpected prefixes: %v", created.Prefixes)
	}
	if len(created.Fields) != 1 || created.Fields[0].Name != "name" {
		t.Fatalf("unexpected fields: %+v", created.Fields)
	}
	if created.Fields[0].Type != db.IndexFieldText || !created.Fields[0].Sortable {
		t.Errorf("expected sortable TEXT name field, got %+v", created.Fields[0])
	}
}

func TestEnsureIndex_SkipsWhenPresent(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.indexExistsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
	ms.createIndexFn = func(_ context.Context, _ *db.IndexDefinition) error {
		t.Error("FT.CREATE must not be called when the index exists")
		return nil
	}

	if err := repo.EnsureIndex(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
