// Package version holds build metadata stamped in by magetasks.BuildAll.
package version

import "fmt"

// Set through -ldflags "-X" at build time.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String is the one-line form used by `printer --version`.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
