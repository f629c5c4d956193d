package config

import (
	"os"
	"runtime/debug"
	"strings"
)

const fallbackVersion = "0.1.0"

// GetVersion returns the version from APP_VERSION (set by CI/CD) or, for
// local builds, the module version and VCS revision embedded by the Go
// toolchain.
func GetVersion() string {
	if envVersion := strings.TrimSpace(os.Getenv("APP_VERSION")); envVersion != "" {
		return envVersion
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fallbackVersion
	}
	return versionFromBuildInfo(info)
}

func versionFromBuildInfo(info *debug.BuildInfo) string {
	version := info.Main.Version
	if version == "" || version == "(devel)" {
		version = fallbackVersion
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
			return version + "+" + setting.Value[:7]
		}
	}
	return version
}
