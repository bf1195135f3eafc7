package tag

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/cardex/internal/db"
	"github.com/kailas-cloud/cardex/internal/domain"
	"github.com/kailas-cloud/cardex/internal/domain/search/filter"
	domtag "github.com/kailas-cloud/cardex/internal/domain/tag"
)

// scanPageSize is the FT.SEARCH page size for full tag walks.
const scanPageSize = 500

// store is the consumer interface for tags (ISP).
//
//nolint:interfacebloat // tag repo needs hash + set + search + index management operations
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SCard(ctx context.Context, key string) (int64, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/tagging.Repository.
type Repo struct {
	store store
}

// New creates a tag repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Ensure stores the tag hash if its ID is unused. An existing record wins,
// so the original creation time survives re-derivation.
func (r *Repo) Ensure(ctx context.Context, tg domtag.Tag) error {
	key := tagKey(tg.ID())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return nil
	}

	if err := r.store.HSet(ctx, key, tagToHash(tg)); err != nil {
		return fmt.Errorf("hset tag %s: %w", tg.ID(), err)
	}
	return nil
}

// AttachCar links a tag and a car in both directions. On failure of the
// second SADD the first is rolled back via SREM.
func (r *Repo) AttachCar(ctx context.Context, tagID, carSlug string) error {
	if err := r.store.SAdd(ctx, tagCarsKey(tagID), carSlug); err != nil {
		return fmt.Errorf("sadd tag cars %s: %w", tagID, err)
	}
	if err := r.store.SAdd(ctx, carTagsKey(carSlug), tagID); err != nil {
		cleanupErr := r.store.SRem(ctx, tagCarsKey(tagID), carSlug)
		return errors.Join(err, cleanupErr)
	}
	return nil
}

// DetachCar unlinks a tag and a car in both directions. On failure of the
// second SREM the first is rolled back via SADD.
func (r *Repo) DetachCar(ctx context.Context, tagID, carSlug string) error {
	if err := r.store.SRem(ctx, tagCarsKey(tagID), carSlug); err != nil {
		return fmt.Errorf("srem tag cars %s: %w", tagID, err)
	}
	if err := r.store.SRem(ctx, carTagsKey(carSlug), tagID); err != nil {
		cleanupErr := r.store.SAdd(ctx, tagCarsKey(tagID), carSlug)
		return errors.Join(err, cleanupErr)
	}
	return nil
}

// CarTags returns the tag IDs attached to a car.
func (r *Repo) CarTags(ctx context.Context, carSlug string) ([]string, error) {
	ids, err := r.store.SMembers(ctx, carTagsKey(carSlug))
	if err != nil {
		return nil, fmt.Errorf("smembers car tags %s: %w", carSlug, err)
	}
	return ids, nil
}

// Cars returns the slugs of every car carrying a tag.
func (r *Repo) Cars(ctx context.Context, tagID string) ([]string, error) {
	slugs, err := r.store.SMembers(ctx, tagCarsKey(tagID))
	if err != nil {
		return nil, fmt.Errorf("smembers tag cars %s: %w", tagID, err)
	}
	return slugs, nil
}

// CarCount returns the number of cars carrying a tag.
func (r *Repo) CarCount(ctx context.Context, tagID string) (int, error) {
	n, err := r.store.SCard(ctx, tagCarsKey(tagID))
	if err != nil {
		return 0, fmt.Errorf("scard tag cars %s: %w", tagID, err)
	}
	return int(n), nil
}

// Get retrieves a tag by ID.
func (r *Repo) Get(ctx context.Context, id string) (domtag.Tag, error) {
	m, err := r.store.HGetAll(ctx, tagKey(id))
	if err != nil {
		return domtag.Tag{}, fmt.Errorf("hgetall tag %s: %w", id, err)
	}
	if len(m) == 0 {
		return domtag.Tag{}, domain.ErrTagNotFound
	}
	return tagFromHash(m)
}

// List returns tags, optionally narrowed to one category, ordered by
// category declaration order then value. The tag space is small, so the
// ordering is applied in memory.
func (r *Repo) List(ctx context.Context, category string) ([]domtag.Tag, error) {
	var filters filter.Expression
	if category != "" {
		cond, err := filter.NewMatch("category", category)
		if err != nil {
			return nil, fmt.Errorf("build filter: %w", err)
		}
		filters, err = filter.NewExpression([]filter.Condition{cond}, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("build filter: %w", err)
		}
	}

	var tags []domtag.Tag
	for offset := 0; ; offset += scanPageSize {
		result, err := r.store.SearchList(ctx, &db.ListQuery{
			IndexName: indexName(),
			Filters:   filters,
			Offset:    offset,
			Limit:     scanPageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("search tags: %w", err)
		}
		if result == nil || len(result.Entries) == 0 {
			break
		}
		for _, entry := range result.Entries {
			tg, err := tagFromHash(entry.Fields)
			if err != nil {
				return nil, fmt.Errorf("parse tag %s: %w", entry.Key, err)
			}
			tags = append(tags, tg)
		}
		if len(result.Entries) < scanPageSize {
			break
		}
	}

	domtag.Sort(tags)
	return tags, nil
}

// Storage key patterns: cardex:tag:{id}, cardex:tag:{id}:cars,
// cardex:car:{slug}:tags

func tagKey(id string) string {
	return fmt.Sprintf("%stag:%s", domain.KeyPrefix, id)
}

func tagPrefix() string {
	return domain.KeyPrefix + "tag:"
}

func indexName() string {
	return fmt.Sprintf("%stags:idx", domain.KeyPrefix)
}

func tagCarsKey(id string) string {
	return fmt.Sprintf("%stag:%s:cars", domain.KeyPrefix, id)
}

func carTagsKey(carSlug string) string {
	return fmt.Sprintf("%scar:%s:tags", domain.KeyPrefix, carSlug)
}
