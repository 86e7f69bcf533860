package reqkit

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the library semantic version. It can be overridden with -ldflags.
	Version = "v0.3.0"
	// GitCommit is the git SHA. When not injected it is read from the VCS
	// stamp of the running binary.
	GitCommit = "unknown"
	// BuildDate is the commit or build timestamp, filled the same way.
	BuildDate = "unknown"
	// GoVersion records the Go toolchain version used.
	GoVersion = runtime.Version()
)

// GetVersion returns a human-readable version string.
func GetVersion() string {
	info := GetVersionInfo()
	return fmt.Sprintf("reqkit %s (commit: %s, built: %s, go: %s)",
		info["version"], info["commit"], info["build_date"], info["go_version"])
}

// GetVersionInfo returns version metadata keyed the way the CLI prints it and
// the build info metric labels it.
func GetVersionInfo() map[string]string {
	commit, date := GitCommit, BuildDate
	if bi, ok := debug.ReadBuildInfo(); ok {
		commit, date = stampFromBuildSettings(bi.Settings, commit, date)
	}
	return map[string]string{
		"version":    Version,
		"commit":     commit,
		"build_date": date,
		"go_version": GoVersion,
	}
}

// stampFromBuildSettings fills commit and date from vcs settings when they
// were not injected at link time.
func stampFromBuildSettings(settings []debug.BuildSetting, commit, date string) (string, string) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "unknown" && s.Value != "" {
				commit = s.Value
			}
		case "vcs.time":
			if date == "unknown" && s.Value != "" {
				date = s.Value
			}
		}
	}
	return commit, date
}
