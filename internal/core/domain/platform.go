package domain

import (
	"runtime"
	"strings"

	"go.trai.ch/zerr"
)

// Platform is the abstract operating system a tool is installed for.
type Platform string

const (
	// PlatformWindows is Microsoft Windows.
	PlatformWindows Platform = "windows"
	// PlatformMacOS is Apple macOS.
	PlatformMacOS Platform = "macos"
	// PlatformLinux is Linux.
	PlatformLinux Platform = "linux"
)

// String returns the platform identifier.
func (p Platform) String() string {
	return string(p)
}

// ExeSuffix returns the executable file suffix for the platform.
func (p Platform) ExeSuffix() string {
	if p == PlatformWindows {
		return ".exe"
	}
	return ""
}

// ParsePlatform maps a runtime OS identifier to a Platform.
// Both Go (GOOS) and Node style identifiers are accepted.
func ParsePlatform(id string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "windows", "win32":
		return PlatformWindows, nil
	case "macos", "darwin":
		return PlatformMacOS, nil
	case "linux":
		return PlatformLinux, nil
	default:
		return "", zerr.With(ErrUnsupportedPlatform, "os", id)
	}
}

// CurrentOS returns the runtime OS identifier.
func CurrentOS() string {
	return runtime.GOOS
}

// NormalizeArch maps a GOARCH value to the architecture names used by the tool cache.
func NormalizeArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "386":
		return "ia32"
	default:
		return goarch
	}
}

// CurrentArch returns the tool cache architecture of the running process.
func CurrentArch() string {
	return NormalizeArch(runtime.GOARCH)
}
