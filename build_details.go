package oas2mcp

import (
	"fmt"
	"runtime"
)

var (
	// version, commit, and buildTime are set via ldflags during release
	// builds. For development builds these show "dev"/"unknown".
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the compiled version or "dev" if run from source.
func Version() string {
	return version
}

// Commit returns the git commit short hash the binary was built from, or
// "unknown" for a development build.
func Commit() string {
	return commit
}

// BuildTime returns the RFC3339 build timestamp, or "unknown" for a
// development build.
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go toolchain version the binary was compiled with.
func GoVersion() string {
	return runtime.Version()
}

// UserAgent returns the User-Agent string outbound HTTP requests identify
// themselves with.
func UserAgent() string {
	return fmt.Sprintf("oas2mcp/%s", version)
}

// BuildInfo returns a multi-line human-readable summary of every build
// detail, the form the CLI's "version" command prints.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s",
		Version(), Commit(), BuildTime(), GoVersion())
}
