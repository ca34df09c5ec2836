// Package version holds build metadata injected at link time.
package version

import "fmt"

var (
	// Version is the current toolkit version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String returns a single-line description of the build.
func String() string {
	return fmt.Sprintf("koi.report %s (%s, built %s)", Version, GitSHA, BuildTime)
}
