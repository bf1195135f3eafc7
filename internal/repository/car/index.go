package car

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/cardex/internal/db"
)

// IndexName reports the name of the cars search index.
func (r *Repo) IndexName() string {
	return indexName()
}

// EnsureIndex creates the cars search index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, indexName())
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(indexName()).
		Prefix(carPrefix()).
		Text("name").
		Text("brand_name").
		Tag("brand").
		TagSortable("sort_key").
		TagWithOpts("fuel_types", ",", false).
		Numeric("year").
		Numeric("price_min").
		Numeric("price_max").
		Build()
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create index %s: %w", indexName(), err)
	}
	return nil
}

// DropIndex removes the cars search index. Car hashes are kept.
func (r *Repo) DropIndex(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, indexName()); err != nil {
		return fmt.Errorf("drop index %s: %w", indexName(), err)
	}
	return nil
}
