package installer

import (
	"context"

	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/zerr"
)

// Cmake installs CMake from the Kitware GitHub releases.
type Cmake struct {
	workflow *Workflow
}

// NewCmake creates a new Cmake installer.
func NewCmake(workflow *Workflow) *Cmake {
	return &Cmake{workflow: workflow}
}

// Name returns the tool name.
func (c *Cmake) Name() string {
	return domain.ToolCmake
}

// Install installs cmake for spec.
func (c *Cmake) Install(ctx context.Context, spec domain.ToolSpec) (*domain.CacheEntry, error) {
	plan, err := c.Plan(spec)
	if err != nil {
		return nil, err
	}
	return c.workflow.Install(ctx, spec, plan)
}

// Plan resolves the cmake release archive for spec.
func (c *Cmake) Plan(spec domain.ToolSpec) (ArchivePlan, error) {
	platform, ext, err := cmakePlatform(spec.Platform, spec.Arch)
	if err != nil {
		return ArchivePlan{}, err
	}

	root := "cmake-" + spec.Version + "-" + platform
	binDir := "bin"
	if spec.Platform == domain.PlatformMacOS {
		binDir = "CMake.app/Contents/bin"
	}

	url, format, err := releaseAsset(c.workflow.Settings(), "Kitware/CMake", "v"+spec.Version, root+ext)
	if err != nil {
		return ArchivePlan{}, err
	}

	return ArchivePlan{
		URL:       url,
		Format:    format,
		Root:      root,
		BinDir:    binDir,
		Binary:    spec.Executable("cmake"),
		CacheTree: true,
	}, nil
}

// cmakePlatform returns the asset platform token and file extension.
func cmakePlatform(p domain.Platform, arch string) (string, string, error) {
	switch p {
	case domain.PlatformWindows:
		return "windows-x86_64", ".zip", nil
	case domain.PlatformMacOS:
		return "macos-universal", ".tar.gz", nil
	case domain.PlatformLinux:
		if arch == "arm64" {
			return "linux-aarch64", ".tar.gz", nil
		}
		return "linux-x86_64", ".tar.gz", nil
	default:
		return "", "", zerr.With(domain.ErrUnsupportedPlatform, "platform", string(p))
	}
}
