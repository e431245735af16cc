// Package version provides the semantic version of the kioku server.
package version

// Version is the current version of the server. It follows semantic
// versioning and is bumped together with schema changes.
const Version = "0.1.0"

// GetCurrentVersion returns the version string for the given mode.
func GetCurrentVersion(mode string) string {
	if mode == "dev" {
		return Version + "-dev"
	}
	return Version
}
