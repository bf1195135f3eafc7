package ingest

import (
	"context"

	"github.com/kailas-cloud/cardex/internal/domain/brand"
	"github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/engine"
)

// BrandEnsurer get-or-creates brand records.
type BrandEnsurer interface {
	Ensure(ctx context.Context, b brand.Brand) (brand.Brand, error)
}

// CarWriter stores built cars.
type CarWriter interface {
	Create(ctx context.Context, c car.Car) error
}

// EngineWriter stores built engines.
type EngineWriter interface {
	Create(ctx context.Context, e engine.Engine) (engine.Engine, error)
}

// Tagger syncs a stored car's derived tags.
type Tagger interface {
	Sync(ctx context.Context, c car.Car, engines []engine.Engine) error
}

// Resetter empties the catalog and rebuilds its search indexes.
type Resetter interface {
	Reset(ctx context.Context) error
}
