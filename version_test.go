package reqkit

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	v := GetVersion()
	if !strings.HasPrefix(v, "reqkit "+Version) {
		t.Errorf("Expected version string to start with reqkit %s, got %s", Version, v)
	}
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	for _, key := range []string{"version", "commit", "build_date", "go_version"} {
		if info[key] == "" {
			t.Errorf("Expected non-empty %s in version info", key)
		}
	}
	if info["version"] != Version {
		t.Errorf("Expected version %s, got %s", Version, info["version"])
	}
}

func TestStampFromBuildSettings(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "abc123"},
		{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
	}

	commit, date := stampFromBuildSettings(settings, "unknown", "unknown")
	if commit != "abc123" || date != "2026-01-02T03:04:05Z" {
		t.Errorf("Expected vcs stamp, got %s %s", commit, date)
	}

	commit, date = stampFromBuildSettings(settings, "injected", "today")
	if commit != "injected" || date != "today" {
		t.Errorf("Expected injected values to win, got %s %s", commit, date)
	}
}
