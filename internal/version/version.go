// Package version holds build metadata stamped via ldflags, e.g.:
//
//	go build -ldflags "-X .../internal/version.Version=v1.2.0"
package version

//nolint:revive // Set at build time.
var (
	Version = "dev"
	Commit  = "unknown"
)
