package car

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/cardex/internal/db"
	"github.com/kailas-cloud/cardex/internal/domain"
	domcar "github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/search/filter"
)

// scanPageSize is the FT.SEARCH page size for full catalog walks.
const scanPageSize = 500

// store is the consumer interface for cars (ISP).
//
//nolint:interfacebloat // car repo needs hash + set + search + index management operations
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
	DelMulti(ctx context.Context, keys []string) error
	Exists(ctx context.Context, key string) (bool, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, filters filter.Expression) (int, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/car.Repository.
type Repo struct {
	store store
}

// New creates a car repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores a new car hash. The slug must be unused.
func (r *Repo) Create(ctx context.Context, c domcar.Car) error {
	key := carKey(c.Slug())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}

	if err := r.store.HSet(ctx, key, carToHash(c)); err != nil {
		return fmt.Errorf("hset car %s: %w", c.Slug(), err)
	}
	return nil
}

// Get retrieves a car by slug.
func (r *Repo) Get(ctx context.Context, slug string) (domcar.Car, error) {
	m, err := r.store.HGetAll(ctx, carKey(slug))
	if err != nil {
		return domcar.Car{}, fmt.Errorf("hgetall car %s: %w", slug, err)
	}
	if len(m) == 0 {
		return domcar.Car{}, domain.ErrCarNotFound
	}
	return carFromHash(m)
}

// Update replaces the stored car hash. Optional fields absent from the new
// state are removed so stale values never survive a full replace.
func (r *Repo) Update(ctx context.Context, c domcar.Car) error {
	key := carKey(c.Slug())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrCarNotFound
	}

	fields := carToHash(c)
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset car %s: %w", c.Slug(), err)
	}
	if stale := absentOptional(fields); len(stale) > 0 {
		if err := r.store.HDel(ctx, key, stale...); err != nil {
			return fmt.Errorf("hdel car %s: %w", c.Slug(), err)
		}
	}
	return nil
}

// Delete removes a car and everything keyed under it: the car hash, its
// engine hashes, the engine ID set, the ID counter and the local tag set.
// Reverse tag memberships are detached by the tagging service beforehand.
func (r *Repo) Delete(ctx context.Context, slug string) error {
	key := carKey(slug)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrCarNotFound
	}

	ids, err := r.store.SMembers(ctx, enginesKey(slug))
	if err != nil {
		return fmt.Errorf("smembers engines %s: %w", slug, err)
	}

	keys := make([]string, 0, len(ids)+4)
	keys = append(keys, key, enginesKey(slug), engineSeqKey(slug), tagsKey(slug))
	for _, id := range ids {
		keys = append(keys, engineKey(slug, id))
	}

	if err := r.store.DelMulti(ctx, keys); err != nil {
		return fmt.Errorf("del car %s: %w", slug, err)
	}
	return nil
}

// List returns cars matching the filter with cursor-based pagination,
// ordered by brand then name. The cursor is an offset into the result set.
func (r *Repo) List(ctx context.Context, f domcar.Filter, cursor string, limit int) ([]domcar.Car, string, error) {
	if limit <= 0 {
		limit = 20
	}

	offset := 0
	if cursor != "" {
		parsed, err := strconv.Atoi(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor %q: %w: %w", cursor, domain.ErrInvalidInput, err)
		}
		offset = parsed
	}

	filters, err := buildFilter(f)
	if err != nil {
		return nil, "", fmt.Errorf("build filter: %w", err)
	}

	result, err := r.store.SearchList(ctx, &db.ListQuery{
		IndexName: indexName(),
		Filters:   filters,
		SortBy:    "sort_key",
		Offset:    offset,
		Limit:     limit + 1,
	})
	if err != nil {
		return nil, "", fmt.Errorf("search cars: %w", err)
	}
	if result == nil || len(result.Entries) == 0 {
		return nil, "", nil
	}

	cars := make([]domcar.Car, 0, limit)
	for i, entry := range result.Entries {
		if i >= limit {
			break
		}
		c, err := carFromHash(entry.Fields)
		if err != nil {
			return nil, "", fmt.Errorf("parse car %s: %w", entry.Key, err)
		}
		cars = append(cars, c)
	}

	var nextCursor string
	if len(result.Entries) > limit {
		nextCursor = strconv.Itoa(offset + limit)
	}

	return cars, nextCursor, nil
}

// Count returns the number of cars matching the filter.
func (r *Repo) Count(ctx context.Context, f domcar.Filter) (int, error) {
	filters, err := buildFilter(f)
	if err != nil {
		return 0, fmt.Errorf("build filter: %w", err)
	}
	n, err := r.store.SearchCount(ctx, indexName(), filters)
	if err != nil {
		return 0, fmt.Errorf("search count cars: %w", err)
	}
	return n, nil
}

// ListByBrand returns every car of a brand, ordered by brand then name.
func (r *Repo) ListByBrand(ctx context.Context, brandSlug string) ([]domcar.Car, error) {
	filters, err := buildFilter(domcar.Filter{BrandSlug: brandSlug})
	if err != nil {
		return nil, fmt.Errorf("build filter: %w", err)
	}
	return r.pageAll(ctx, filters)
}

// ListAll returns the whole catalog, ordered by brand then name.
func (r *Repo) ListAll(ctx context.Context) ([]domcar.Car, error) {
	return r.pageAll(ctx, filter.Expression{})
}

// pageAll walks the cars index until exhausted.
func (r *Repo) pageAll(ctx context.Context, filters filter.Expression) ([]domcar.Car, error) {
	var cars []domcar.Car
	for offset := 0; ; offset += scanPageSize {
		result, err := r.store.SearchList(ctx, &db.ListQuery{
			IndexName: indexName(),
			Filters:   filters,
			SortBy:    "sort_key",
			Offset:    offset,
			Limit:     scanPageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("search cars: %w", err)
		}
		if result == nil || len(result.Entries) == 0 {
			break
		}
		for _, entry := range result.Entries {
			c, err := carFromHash(entry.Fields)
			if err != nil {
				return nil, fmt.Errorf("parse car %s: %w", entry.Key, err)
			}
			cars = append(cars, c)
		}
		if len(result.Entries) < scanPageSize {
			break
		}
	}
	return cars, nil
}

// buildFilter translates a domain filter into index conditions.
func buildFilter(f domcar.Filter) (filter.Expression, error) {
	var must []filter.Condition

	if f.Search != "" {
		cond, err := filter.NewText("name|brand_name", f.Search)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, cond)
	}
	if f.FuelCode != "" {
		cond, err := filter.NewMatch("fuel_types", f.FuelCode)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, cond)
	}
	if f.BrandSlug != "" {
		cond, err := filter.NewMatch("brand", f.BrandSlug)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, cond)
	}
	if f.Year != nil {
		cond, err := rangeCondition("year", f.Year, f.Year)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, cond)
	}
	if f.PriceMin != nil {
		cond, err := rangeCondition("price_min", f.PriceMin, nil)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, cond)
	}
	if f.PriceMax != nil {
		cond, err := rangeCondition("price_max", nil, f.PriceMax)
		if err != nil {
			return filter.Expression{}, err
		}
		must = append(must, cond)
	}

	if len(must) == 0 {
		return filter.Expression{}, nil
	}
	return filter.NewExpression(must, nil, nil)
}

// rangeCondition builds an inclusive numeric range condition.
func rangeCondition(key string, gte, lte *int) (filter.Condition, error) {
	var gteF, lteF *float64
	if gte != nil {
		v := float64(*gte)
		gteF = &v
	}
	if lte != nil {
		v := float64(*lte)
		lteF = &v
	}
	rng, err := filter.NewRangeFilter(nil, gteF, nil, lteF)
	if err != nil {
		return filter.Condition{}, err
	}
	return filter.NewRange(key, rng)
}

// Storage key patterns: cardex:car:{slug}, cardex:car:{slug}:engines,
// cardex:car:{slug}:engineseq, cardex:car:{slug}:tags, cardex:engine:{slug}:{id}

func carKey(slug string) string {
	return fmt.Sprintf("%scar:%s", domain.KeyPrefix, slug)
}

func carPrefix() string {
	return domain.KeyPrefix + "car:"
}

func indexName() string {
	return fmt.Sprintf("%scars:idx", domain.KeyPrefix)
}

func enginesKey(slug string) string {
	return fmt.Sprintf("%scar:%s:engines", domain.KeyPrefix, slug)
}

func engineSeqKey(slug string) string {
	return fmt.Sprintf("%scar:%s:engineseq", domain.KeyPrefix, slug)
}

func engineKey(slug, id string) string {
	return fmt.Sprintf("%sengine:%s:%s", domain.KeyPrefix, slug, id)
}

func tagsKey(slug string) string {
	return fmt.Sprintf("%scar:%s:tags", domain.KeyPrefix, slug)
}
