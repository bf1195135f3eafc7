package recommend

import (
	"context"

	"github.com/kailas-cloud/cardex/internal/domain/car"
)

// CarReader loads the reference car and the candidate pool.
type CarReader interface {
	Get(ctx context.Context, carSlug string) (car.Car, error)
	ListAll(ctx context.Context) ([]car.Car, error)
}

// TagReader loads a car's tag memberships.
type TagReader interface {
	CarTags(ctx context.Context, carSlug string) ([]string, error)
}
