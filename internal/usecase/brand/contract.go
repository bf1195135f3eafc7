package brand

import (
	"context"

	dombrand "github.com/kailas-cloud/cardex/internal/domain/brand"
)

// Repository defines the storage contract for brands.
type Repository interface {
	Get(ctx context.Context, brandSlug string) (dombrand.Brand, error)
	List(ctx context.Context) ([]dombrand.Brand, error)
	Count(ctx context.Context) (int, error)
}
