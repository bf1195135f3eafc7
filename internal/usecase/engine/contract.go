package engine

import (
	"context"

	"github.com/kailas-cloud/cardex/internal/domain/car"
	domeng "github.com/kailas-cloud/cardex/internal/domain/engine"
)

// Repository defines the storage contract for engines.
type Repository interface {
	Create(ctx context.Context, e domeng.Engine) (domeng.Engine, error)
	Get(ctx context.Context, carSlug string, id int) (domeng.Engine, error)
	Update(ctx context.Context, e domeng.Engine) error
	Delete(ctx context.Context, carSlug string, id int) error
	List(ctx context.Context, carSlug string) ([]domeng.Engine, error)
	Count(ctx context.Context, carSlug string) (int, error)
}

// CarReader loads the owning car for existence checks and tag resync.
type CarReader interface {
	Get(ctx context.Context, carSlug string) (car.Car, error)
}

// Tagger keeps a car's derived tags current.
type Tagger interface {
	Sync(ctx context.Context, c car.Car, engines []domeng.Engine) error
}
