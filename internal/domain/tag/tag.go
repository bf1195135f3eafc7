package tag

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// Category classifies tags into the seven fixed groups the catalog derives.
type Category string

const (
	// CategoryBrand tags a car with its manufacturer name.
	CategoryBrand Category = "brand"
	// CategoryFuelType tags a car with each fuel it runs on.
	CategoryFuelType Category = "fuel_type"
	// CategoryEngine tags a car with each engine configuration label.
	CategoryEngine Category = "engine"
	// CategorySeats tags a car with its seating description.
	CategorySeats Category = "seats"
	// CategoryPriceRange tags a car with its price bracket.
	CategoryPriceRange Category = "price_range"
	// CategoryDisplacement tags a car with its displacement bracket per engine.
	CategoryDisplacement Category = "displacement"
	// CategoryPerformance tags a car with notable performance traits.
	CategoryPerformance Category = "performance_metrics"
)

// Categories returns every category in declaration order. The order is part
// of the contract: statistics and listings iterate it for deterministic output.
func Categories() []Category {
	return []Category{
		CategoryBrand, CategoryFuelType, CategoryEngine, CategorySeats,
		CategoryPriceRange, CategoryDisplacement, CategoryPerformance,
	}
}

// IsValid checks if the category is one of the seven fixed groups.
func (c Category) IsValid() bool {
	switch c {
	case CategoryBrand, CategoryFuelType, CategoryEngine, CategorySeats,
		CategoryPriceRange, CategoryDisplacement, CategoryPerformance:
		return true
	}
	return false
}

// Name returns the display name for the category.
func (c Category) Name() string {
	switch c {
	case CategoryBrand:
		return "Brand"
	case CategoryFuelType:
		return "Fuel Type"
	case CategoryEngine:
		return "Engine"
	case CategorySeats:
		return "Seats"
	case CategoryPriceRange:
		return "Price Range"
	case CategoryDisplacement:
		return "Displacement"
	case CategoryPerformance:
		return "Performance Metrics"
	}
	return ""
}

// Tag is a categorized descriptive label attached to cars
// (immutable value object).
type Tag struct {
	category  Category
	value     string
	createdAt int64
}

// New validates and creates a Tag.
func New(category Category, value string) (Tag, error) {
	value = strings.TrimSpace(value)
	if !category.IsValid() {
		return Tag{}, fmt.Errorf("unknown tag category: %q", category)
	}
	if value == "" {
		return Tag{}, fmt.Errorf("tag value is required")
	}
	if len(value) > 100 {
		return Tag{}, fmt.Errorf("tag value too long (max 100)")
	}
	return Tag{category: category, value: value, createdAt: time.Now().UnixMilli()}, nil
}

// Reconstruct creates a Tag without validation (storage hydration).
func Reconstruct(category Category, value string, createdAt int64) Tag {
	return Tag{category: category, value: value, createdAt: createdAt}
}

// Category returns the tag's category.
func (t Tag) Category() Category { return t.category }

// Value returns the tag's display value.
func (t Tag) Value() string { return t.value }

// CreatedAt returns the creation timestamp (unix millis).
func (t Tag) CreatedAt() int64 { return t.createdAt }

// ID returns the deterministic identity for this tag.
func (t Tag) ID() string { return ID(t.category, t.value) }

// ID builds the deterministic identity "{category}:{slugged value}" for a
// (category, value) pair. Storage keys and scoring intersections rely on it.
func ID(category Category, value string) string {
	return string(category) + ":" + slug.Make(value)
}

// Sort orders tags by category declaration order, then case-insensitive value.
// Every tag listing the catalog serves uses this order.
func Sort(tags []Tag) {
	rank := make(map[Category]int, len(Categories()))
	for i, c := range Categories() {
		rank[c] = i
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].category != tags[j].category {
			return rank[tags[i].category] < rank[tags[j].category]
		}
		return strings.ToLower(tags[i].value) < strings.ToLower(tags[j].value)
	})
}
