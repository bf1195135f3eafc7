package tag

import (
	"fmt"
	"strconv"

	domtag "github.com/kailas-cloud/cardex/internal/domain/tag"
)

// tagToHash converts a domain Tag to a map for HSET.
func tagToHash(tg domtag.Tag) map[string]string {
	return map[string]string{
		"id":         tg.ID(),
		"category":   string(tg.Category()),
		"value":      tg.Value(),
		"created_at": strconv.FormatInt(tg.CreatedAt(), 10),
	}
}

// tagFromHash hydrates a domain Tag from an HGETALL result map.
func tagFromHash(m map[string]string) (domtag.Tag, error) {
	category := domtag.Category(m["category"])
	if !category.IsValid() {
		return domtag.Tag{}, fmt.Errorf("unknown tag category: %q", m["category"])
	}
	if m["value"] == "" {
		return domtag.Tag{}, fmt.Errorf("tag hash missing value")
	}
	createdAt, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return domtag.Tag{}, fmt.Errorf("invalid created_at: %w", err)
	}
	return domtag.Reconstruct(category, m["value"], createdAt), nil
}
