// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

// Build-time values injected via ldflags.
var (
	Version   = "dev" // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit = ""    // Short git commit hash (e.g., "abc1234")
	BuildTime = ""    // Build timestamp in RFC3339 format
)

// Info contains build-time version information.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
}

// Get returns the version information for this build.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}
}
