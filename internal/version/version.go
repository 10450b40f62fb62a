// Package version exposes build-time version information.
package version

// Set at build time via -ldflags, e.g.
// -X github.com/nomgrid/nomgrid/internal/version.Version=1.2.0
var (
	// Version is the semantic version of this build
	Version = "dev"

	// GitCommit is the short git commit hash
	GitCommit = "unknown"

	// BuildTime is the build timestamp in RFC3339 format
	BuildTime = "unknown"
)

// Info holds version metadata for diagnostic endpoints
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
}

// Get returns the version metadata for this build
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}
}
