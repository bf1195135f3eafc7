package car

import (
	"context"

	"github.com/kailas-cloud/cardex/internal/domain/brand"
	domcar "github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/engine"
)

// Repository defines the storage contract for cars.
type Repository interface {
	Create(ctx context.Context, c domcar.Car) error
	Get(ctx context.Context, carSlug string) (domcar.Car, error)
	Update(ctx context.Context, c domcar.Car) error
	Delete(ctx context.Context, carSlug string) error
	List(ctx context.Context, f domcar.Filter, cursor string, limit int) (
		cars []domcar.Car, nextCursor string, err error,
	)
	Count(ctx context.Context, f domcar.Filter) (int, error)
}

// BrandEnsurer get-or-creates brand records.
type BrandEnsurer interface {
	Ensure(ctx context.Context, b brand.Brand) (brand.Brand, error)
}

// EngineReader lists a car's engines for tag resync.
type EngineReader interface {
	List(ctx context.Context, carSlug string) ([]engine.Engine, error)
}

// Tagger keeps a car's derived tags current.
type Tagger interface {
	Sync(ctx context.Context, c domcar.Car, engines []engine.Engine) error
	Detach(ctx context.Context, carSlug string) error
}
