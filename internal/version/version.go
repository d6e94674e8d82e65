// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import "fmt"

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit string // Short git commit hash (e.g., "abc1234")
	BuildTime string // Build timestamp in RFC3339 format
}

// WithDefaults fills fields left empty by a plain "go build".
func (i Info) WithDefaults() Info {
	if i.Version == "" {
		i.Version = "dev"
	}
	if i.GitCommit == "" {
		i.GitCommit = "unknown"
	}
	if i.BuildTime == "" {
		i.BuildTime = "unknown"
	}
	return i
}

// String formats the info for the -version flag.
func (i Info) String() string {
	i = i.WithDefaults()
	return fmt.Sprintf("blogicum %s (commit %s, built %s)", i.Version, i.GitCommit, i.BuildTime)
}
