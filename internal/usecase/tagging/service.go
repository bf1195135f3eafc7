package tagging

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/cardex/internal/domain"
	"github.com/kailas-cloud/cardex/internal/domain/car"
	"github.com/kailas-cloud/cardex/internal/domain/engine"
	"github.com/kailas-cloud/cardex/internal/domain/tag"
)

// Service keeps the derived tag catalog in line with the cars it describes.
type Service struct {
	repo   Repository
	derive Deriver
}

// New creates a tagging service.
func New(repo Repository, derive Deriver) *Service {
	return &Service{repo: repo, derive: derive}
}

// Sync reconciles a car's stored tags with the set derived from its current
// data: missing tags are ensured and attached, stale memberships detached.
// Tag records themselves are never deleted; an orphaned tag keeps its history.
func (s *Service) Sync(ctx context.Context, c car.Car, engines []engine.Engine) error {
	desired := s.derive(c, engines)

	for _, t := range desired {
		rec, err := tag.New(t.Category(), t.Value())
		if err != nil {
			return fmt.Errorf("build tag %s: %w", t.ID(), err)
		}
		if err := s.repo.Ensure(ctx, rec); err != nil {
			return fmt.Errorf("ensure tag %s: %w", rec.ID(), err)
		}
	}

	stored, err := s.repo.CarTags(ctx, c.Slug())
	if err != nil {
		return fmt.Errorf("load car tags: %w", err)
	}

	storedSet := make(map[string]bool, len(stored))
	for _, id := range stored {
		storedSet[id] = true
	}
	desiredSet := make(map[string]bool, len(desired))
	for _, t := range desired {
		desiredSet[t.ID()] = true
	}

	for _, t := range desired {
		if storedSet[t.ID()] {
			continue
		}
		if err := s.repo.AttachCar(ctx, t.ID(), c.Slug()); err != nil {
			return fmt.Errorf("attach tag %s: %w", t.ID(), err)
		}
	}
	for _, id := range stored {
		if desiredSet[id] {
			continue
		}
		if err := s.repo.DetachCar(ctx, id, c.Slug()); err != nil {
			return fmt.Errorf("detach tag %s: %w", id, err)
		}
	}

	return nil
}

// Detach removes every tag membership of a car. Car deletion runs it before
// the car rows go away so reverse indexes never keep dangling slugs.
func (s *Service) Detach(ctx context.Context, carSlug string) error {
	stored, err := s.repo.CarTags(ctx, carSlug)
	if err != nil {
		return fmt.Errorf("load car tags: %w", err)
	}
	for _, id := range stored {
		if err := s.repo.DetachCar(ctx, id, carSlug); err != nil {
			return fmt.Errorf("detach tag %s: %w", id, err)
		}
	}
	return nil
}

// Tags returns a car's tags resolved to full records, in catalog order.
func (s *Service) Tags(ctx context.Context, carSlug string) ([]tag.Tag, error) {
	ids, err := s.repo.CarTags(ctx, carSlug)
	if err != nil {
		return nil, fmt.Errorf("load car tags: %w", err)
	}

	tags := make([]tag.Tag, 0, len(ids))
	for _, id := range ids {
		t, err := s.repo.Get(ctx, id)
		if errors.Is(err, domain.ErrTagNotFound) {
			// membership outlived its record; skip it
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get tag %s: %w", id, err)
		}
		tags = append(tags, t)
	}

	tag.Sort(tags)
	return tags, nil
}

// TagCount pairs a tag with the number of cars carrying it.
type TagCount struct {
	Tag  tag.Tag
	Cars int
}

// List returns tags with car counts, optionally restricted to one category.
func (s *Service) List(ctx context.Context, category string) ([]TagCount, error) {
	if category != "" && !tag.Category(category).IsValid() {
		return nil, fmt.Errorf("list tags: unknown category %q: %w", category, domain.ErrInvalidInput)
	}

	tags, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	out := make([]TagCount, 0, len(tags))
	for _, t := range tags {
		n, err := s.repo.CarCount(ctx, t.ID())
		if err != nil {
			return nil, fmt.Errorf("count cars for tag %s: %w", t.ID(), err)
		}
		out = append(out, TagCount{Tag: t, Cars: n})
	}
	return out, nil
}
