// Package maintenance provides catalog-wide storage operations: wiping every
// key before a full re-ingest and verifying that the search indexes exist.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/cardex/internal/db"
	"github.com/kailas-cloud/cardex/internal/domain"
)

// deleteBatchSize bounds a single DEL round trip during a catalog wipe.
const deleteBatchSize = 500

// store is the consumer interface for catalog maintenance (ISP).
type store interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
	DelMulti(ctx context.Context, keys []string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Index is the search index surface of a catalog repository.
type Index interface {
	IndexName() string
	EnsureIndex(ctx context.Context) error
	DropIndex(ctx context.Context) error
}

// Repo implements usecase/ingest.Resetter and usecase/health.IndexChecker.
type Repo struct {
	store   store
	indexes []Index
}

// New creates a maintenance repository over the given indexes.
func New(s store, indexes ...Index) *Repo {
	return &Repo{store: s, indexes: indexes}
}

// Reset empties the catalog and rebuilds its search indexes. Indexes are
// dropped before the keys so no search runs against half-deleted data.
func (r *Repo) Reset(ctx context.Context) error {
	for _, idx := range r.indexes {
		if err := idx.DropIndex(ctx); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
			return fmt.Errorf("drop indexes: %w", err)
		}
	}

	keys, err := r.store.Scan(ctx, domain.KeyPrefix+"*")
	if err != nil {
		return fmt.Errorf("scan catalog keys: %w", err)
	}
	for start := 0; start < len(keys); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(keys) {
			end = len(keys)
		}
		if err := r.store.DelMulti(ctx, keys[start:end]); err != nil {
			return fmt.Errorf("delete catalog keys: %w", err)
		}
	}

	for _, idx := range r.indexes {
		if err := idx.EnsureIndex(ctx); err != nil {
			return fmt.Errorf("recreate indexes: %w", err)
		}
	}
	return nil
}

// CheckIndexes verifies that every catalog search index exists.
func (r *Repo) CheckIndexes(ctx context.Context) error {
	var missing []string
	for _, idx := range r.indexes {
		name := idx.IndexName()
		ok, err := r.store.IndexExists(ctx, name)
		if err != nil {
			return fmt.Errorf("check index %s: %w", name, err)
		}
		if !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing search indexes: %s", strings.Join(missing, ", "))
	}
	return nil
}
