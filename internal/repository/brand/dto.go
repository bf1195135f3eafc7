package brand

import (
	"fmt"
	"strconv"

	dombrand "github.com/kailas-cloud/cardex/internal/domain/brand"
)

// brandToHash converts a domain Brand to a map for HSET.
func brandToHash(b dombrand.Brand) map[string]string {
	return map[string]string{
		"name":       b.Name(),
		"slug":       b.Slug(),
		"created_at": strconv.FormatInt(b.CreatedAt(), 10),
	}
}

// brandFromHash hydrates a domain Brand from an HGETALL result map.
func brandFromHash(m map[string]string) (dombrand.Brand, error) {
	brandSlug := m["slug"]
	if brandSlug == "" {
		return dombrand.Brand{}, fmt.Errorf("brand hash missing slug")
	}
	createdAt, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return dombrand.Brand{}, fmt.Errorf("invalid created_at: %w", err)
	}
	return dombrand.Reconstruct(m["name"], brandSlug, createdAt), nil
}
