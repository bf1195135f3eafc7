package tagging

import (
	"context"

	"github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/engine"
	"github.com/kailas-cloud/cardex/internal/domain/tag"
)

// Repository defines the storage contract for tag records and car memberships.
type Repository interface {
	Ensure(ctx context.Context, t tag.Tag) error
	AttachCar(ctx context.Context, tagID, carSlug string) error
	DetachCar(ctx context.Context, tagID, carSlug string) error
	CarTags(ctx context.Context, carSlug string) ([]string, error)
	Get(ctx context.Context, id string) (tag.Tag, error)
	List(ctx context.Context, category string) ([]tag.Tag, error)
	CarCount(ctx context.Context, tagID string) (int, error)
}

// Deriver computes the tag set a car should carry given its engines.
// Production wiring passes tag.Derive.
type Deriver func(c car.Car, engines []engine.Engine) []tag.Tag
