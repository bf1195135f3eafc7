package cardex

import (
	"context"
	"fmt"

	domtag "github.com/kailas-cloud/cardex/internal/domain/tag"
)

// TagService browses the derived tag vocabulary.
type TagService struct {
	svc tagUseCase
}

// List returns tags with car counts, optionally restricted to one
// category. An empty category returns every tag.
func (s *TagService) List(ctx context.Context, category TagCategory) ([]TagCount, error) {
	counts, err := s.svc.List(ctx, string(category))
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	out := make([]TagCount, len(counts))
	for i, c := range counts {
		out[i] = TagCount{
			Category: TagCategory(c.Tag.Category()),
			Value:    c.Tag.Value(),
			Cars:     c.Cars,
		}
	}
	return out, nil
}

// CarTags returns the derived tags of one car.
func (s *TagService) CarTags(ctx context.Context, carSlug string) ([]Tag, error) {
	tags, err := s.svc.Tags(ctx, carSlug)
	if err != nil {
		return nil, fmt.Errorf("car tags: %w", err)
	}
	return fromInternalTags(tags), nil
}

func fromInternalTags(tags []domtag.Tag) []Tag {
	out := make([]Tag, len(tags))
	for i, t := range tags {
		out[i] = Tag{
			Category:  TagCategory(t.Category()),
			Value:     t.Value(),
			CreatedAt: t.CreatedAt(),
		}
	}
	return out
}
