package db

import "github.com/kailas-cloud/cardex/internal/domain/search/filter"

// ListQuery is the input for a paginated FT.SEARCH listing.
type ListQuery struct {
	IndexName    string
	Filters      filter.Expression // empty matches all documents
	SortBy       string            // SORTABLE field name; empty skips SORTBY
	SortDesc     bool
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
