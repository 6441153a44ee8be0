// Package version exposes build metadata injected with -ldflags.
package version

import (
	"github.com/Masterminds/semver/v3"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/rshade/coopview/pkg/version.version=v1.2.3 \
//	  -X github.com/rshade/coopview/pkg/version.gitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/rshade/coopview/pkg/version.buildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
//nolint:gochecknoglobals // Overridden by the linker.
var (
	version   = "0.0.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the version string.
func GetVersion() string {
	return version
}

// GetCommit returns the git commit the binary was built from.
func GetCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// IsRelease reports whether v is a valid semantic version without a prerelease suffix.
func IsRelease(v string) bool {
	sv, err := semver.NewVersion(v)
	if err != nil {
		return false
	}
	return sv.Prerelease() == ""
}
