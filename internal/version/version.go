// Package version carries build metadata stamped in with -ldflags and
// recorded on every footprint report.
package version

var (
	// Version is the engine version.
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String formats the build metadata as "version (sha, built time)".
func String() string {
	return Version + " (" + GitSHA + ", built " + BuildTime + ")"
}
