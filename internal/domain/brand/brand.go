package brand

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// Brand is a car manufacturer (immutable value object).
type Brand struct {
	name      string
	slug      string
	createdAt int64
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("brand name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("brand name too long (max 100)")
	}
	return nil
}

// New validates and creates a Brand. The slug is derived from the name.
func New(name string) (Brand, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return Brand{}, err
	}
	s := slug.Make(name)
	if s == "" {
		return Brand{}, fmt.Errorf("brand name %q has no sluggable characters", name)
	}
	return Brand{
		name:      name,
		slug:      s,
		createdAt: time.Now().UnixMilli(),
	}, nil
}

// Reconstruct creates a Brand without validation (storage hydration).
func Reconstruct(name, brandSlug string, createdAt int64) Brand {
	return Brand{name: name, slug: brandSlug, createdAt: createdAt}
}

// Name returns the brand name.
func (b Brand) Name() string { return b.name }

// Slug returns the URL-safe identity key.
func (b Brand) Slug() string { return b.slug }

// CreatedAt returns the creation timestamp (unix millis).
func (b Brand) CreatedAt() int64 { return b.createdAt }
