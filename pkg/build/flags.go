// SPDX-License-Identifier: MIT
// Package build carries build metadata injected at compile time via -ldflags,
// e.g.:
//
//	go build -ldflags "-X voicefront/pkg/build.buildName=voicefront \
//	    -X voicefront/pkg/build.buildVersion=0.1.0"
//
// Development builds without flags fall back to "dev" values instead of
// failing, so `go run .` keeps working.
package build

// Info holds the resolved build metadata.
type Info struct {
	Name    string // application name
	Time    string // build timestamp, RFC3339
	Commit  string // git commit hash
	Version string // semantic version
}

// Populated by -ldflags during compilation.
var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string

	info = Info{
		Name:    "voicefront",
		Time:    "dev",
		Commit:  "dev",
		Version: "dev",
	}
)

// Initialize copies any injected build flags over the development defaults.
func Initialize() {
	if buildName != "" {
		info.Name = buildName
	}
	if buildTime != "" {
		info.Time = buildTime
	}
	if buildCommit != "" {
		info.Commit = buildCommit
	}
	if buildVersion != "" {
		info.Version = buildVersion
	}
}

// GetInfo returns the current build metadata. Initialize should be called
// first during startup.
func GetInfo() Info {
	return info
}
