// Package version carries build metadata stamped in via ldflags.
package version

//nolint:revive // Overwritten by -X flags at release build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
