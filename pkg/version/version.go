// Package version exposes build metadata injected via -ldflags.
package version

import (
	"runtime"
	"time"
)

var (
	// Version is the semantic version, set at build time via -ldflags
	Version = "dev"
	// GitCommit is the git commit hash, set at build time
	GitCommit = "unknown"
	// BuildDate is the build timestamp, set at build time
	BuildDate = "unknown"
	// GoVersion is the Go compiler version
	GoVersion = runtime.Version()
	// Platform is the OS/Arch pair
	Platform = runtime.GOOS + "/" + runtime.GOARCH
)

// BuildInfo describes the running gauth binary.
type BuildInfo struct {
	Version   string    `json:"version" yaml:"version"`
	GitCommit string    `json:"gitCommit" yaml:"gitCommit"`
	BuildDate string    `json:"buildDate" yaml:"buildDate"`
	GoVersion string    `json:"goVersion" yaml:"goVersion"`
	Platform  string    `json:"platform" yaml:"platform"`
	BuildTime time.Time `json:"buildTime,omitempty" yaml:"buildTime,omitempty"`
}

// GetBuildInfo collects the injected variables into a BuildInfo. BuildTime
// is only populated when BuildDate parses as RFC3339.
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  Platform,
	}
	if t, err := time.Parse(time.RFC3339, BuildDate); err == nil {
		info.BuildTime = t
	}
	return info
}
