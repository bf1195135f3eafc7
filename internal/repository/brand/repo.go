package brand

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/cardex/internal/db"
	"github.com/kailas-cloud/cardex/internal/domain"
	dombrand "github.com/kailas-cloud/cardex/internal/domain/brand"
	"github.com/kailas-cloud/cardex/internal/domain/search/filter"
)

// scanPageSize is the FT.SEARCH page size for full brand walks.
const scanPageSize = 500

// store is the consumer interface for brands (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, filters filter.Expression) (int, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/brand.Repository.
type Repo struct {
	store store
}

// New creates a brand repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Ensure stores the brand if its slug is unused and returns the stored state.
// An existing record wins, so the original creation time survives re-ingestion.
func (r *Repo) Ensure(ctx context.Context, b dombrand.Brand) (dombrand.Brand, error) {
	key := brandKey(b.Slug())
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return dombrand.Brand{}, fmt.Errorf("hgetall brand %s: %w", b.Slug(), err)
	}
	if len(m) > 0 {
		return brandFromHash(m)
	}

	if err := r.store.HSet(ctx, key, brandToHash(b)); err != nil {
		return dombrand.Brand{}, fmt.Errorf("hset brand %s: %w", b.Slug(), err)
	}
	return b, nil
}

// Get retrieves a brand by slug.
func (r *Repo) Get(ctx context.Context, slug string) (dombrand.Brand, error) {
	m, err := r.store.HGetAll(ctx, brandKey(slug))
	if err != nil {
		return dombrand.Brand{}, fmt.Errorf("hgetall brand %s: %w", slug, err)
	}
	if len(m) == 0 {
		return dombrand.Brand{}, domain.ErrBrandNotFound
	}
	return brandFromHash(m)
}

// List returns every brand ordered by name.
func (r *Repo) List(ctx context.Context) ([]dombrand.Brand, error) {
	var brands []dombrand.Brand
	for offset := 0; ; offset += scanPageSize {
		result, err := r.store.SearchList(ctx, &db.ListQuery{
			IndexName: indexName(),
			SortBy:    "name",
			Offset:    offset,
			Limit:     scanPageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("search brands: %w", err)
		}
		if result == nil || len(result.Entries) == 0 {
			break
		}
		for _, entry := range result.Entries {
			b, err := brandFromHash(entry.Fields)
			if err != nil {
				return nil, fmt.Errorf("parse brand %s: %w", entry.Key, err)
			}
			brands = append(brands, b)
		}
		if len(result.Entries) < scanPageSize {
			break
		}
	}
	return brands, nil
}

// Count returns the number of brands in the catalog.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, indexName(), filter.Expression{})
	if err != nil {
		return 0, fmt.Errorf("search count brands: %w", err)
	}
	return n, nil
}

// Storage key patterns: cardex:brand:{slug}

func brandKey(slug string) string {
	return fmt.Sprintf("%sbrand:%s", domain.KeyPrefix, slug)
}

func brandPrefix() string {
	return domain.KeyPrefix + "brand:"
}

func indexName() string {
	return fmt.Sprintf("%sbrands:idx", domain.KeyPrefix)
}
