// Package version provides build version information for tag.
// Variables are set at build time via ldflags:
//
//	go build -ldflags="-X github.com/jpl-au/tag/internal/version.Version=1.0.0 \
//	  -X github.com/jpl-au/tag/internal/version.GitCommit=abc123 \
//	  -X github.com/jpl-au/tag/internal/version.BuildTime=2026-01-15T10:30:00Z"
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build information. Set via ldflags at build time.
var (
	Version   = "0.0.0-dev" // Release version without a leading "v"
	GitCommit = "unknown"   // Short git commit hash
	BuildTime = "unknown"   // RFC3339 build timestamp
)

// Info holds structured version information.
type Info struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"` // OS and architecture (e.g., "darwin arm64")
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Short(),
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a formatted version string suitable for display.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Version:      %s\n", i.Version)
	fmt.Fprintf(&b, "Build Time:   %s\n", i.BuildTime)
	fmt.Fprintf(&b, "Go Version:   %s\n", i.GoVersion)
	fmt.Fprintf(&b, "Platform:     %s\n", i.Platform)
	fmt.Fprintf(&b, "Git Commit:   %s\n", i.GitCommit)
	return b.String()
}

// Short returns the bare version number. A "v" given in ldflags is dropped
// so the CLI can print "tag v1.0.0" either way.
func Short() string {
	return strings.TrimPrefix(Version, "v")
}
