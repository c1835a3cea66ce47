// Package version holds build metadata injected via ldflags:
//
//	-X github.com/kailas-cloud/ipadhilfe/internal/version.Version=v1.2.0
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build metadata for the version command.
func String() string {
	return fmt.Sprintf("ipadhilfe %s (commit %s, built %s)", Version, Commit, Date)
}
