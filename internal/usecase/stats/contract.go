package stats

import (
	"context"

	"github.com/kailas-cloud/cardex/internal/domain/brand"
	"github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/engine"
	"github.com/kailas-cloud/cardex/internal/domain/tag"
)

// BrandReader checks brand existence.
type BrandReader interface {
	Get(ctx context.Context, brandSlug string) (brand.Brand, error)
}

// CarReader lists a brand's cars.
type CarReader interface {
	ListByBrand(ctx context.Context, brandSlug string) ([]car.Car, error)
}

// EngineReader lists a car's engines.
type EngineReader interface {
	List(ctx context.Context, carSlug string) ([]engine.Engine, error)
}

// TagReader reads car tag memberships and tag records.
type TagReader interface {
	CarTags(ctx context.Context, carSlug string) ([]string, error)
	Get(ctx context.Context, id string) (tag.Tag, error)
}
