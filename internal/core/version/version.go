// Package version reports build metadata
package version

import "runtime/debug"

// BuildInfo holds version information about the service build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// set with -ldflags "-X hranalytics/internal/core/version.version=v0.1.0"
var (
	version = "dev"
	commit  = ""
	date    = "unknown"
)

// Service is the name reported by the API
const Service = "hranalytics-api"

// Info returns the build information
// commit falls back to the vcs revision stamped by the go toolchain
func Info() BuildInfo {
	return BuildInfo{
		Service: Service,
		Version: version,
		Commit:  resolveCommit(),
		Date:    date,
	}
}

// String returns the version alone
func String() string { return version }

func resolveCommit() string {
	if commit != "" {
		return commit
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "none"
}
