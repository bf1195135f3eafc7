package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker verifies that the catalog search indexes exist.
type IndexChecker interface {
	CheckIndexes(ctx context.Context) error
}
