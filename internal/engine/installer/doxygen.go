package installer

import (
	"context"
	"strings"

	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/zerr"
)

// Doxygen installs doxygen from its GitHub releases.
type Doxygen struct {
	workflow *Workflow
}

// NewDoxygen creates a new Doxygen installer.
func NewDoxygen(workflow *Workflow) *Doxygen {
	return &Doxygen{workflow: workflow}
}

// Name returns the tool name.
func (d *Doxygen) Name() string {
	return domain.ToolDoxygen
}

// Install installs doxygen for spec.
func (d *Doxygen) Install(ctx context.Context, spec domain.ToolSpec) (*domain.CacheEntry, error) {
	plan, err := d.Plan(spec)
	if err != nil {
		return nil, err
	}
	return d.workflow.Install(ctx, spec, plan)
}

// Plan resolves the doxygen release archive for spec.
// Only Linux and Windows archives are published.
func (d *Doxygen) Plan(spec domain.ToolSpec) (ArchivePlan, error) {
	tag := "Release_" + strings.ReplaceAll(spec.Version, ".", "_")
	settings := d.workflow.Settings()

	var plan ArchivePlan
	var asset string
	switch spec.Platform {
	case domain.PlatformLinux:
		asset = "doxygen-" + spec.Version + ".linux.bin.tar.gz"
		plan = ArchivePlan{Root: "doxygen-" + spec.Version, BinDir: "bin", Binary: "doxygen"}
	case domain.PlatformWindows:
		asset = "doxygen-" + spec.Version + ".windows.x64.bin.zip"
		plan = ArchivePlan{Root: ".", BinDir: ".", Binary: spec.Executable("doxygen")}
	default:
		return ArchivePlan{}, zerr.With(zerr.With(domain.ErrUnsupportedPlatform, "tool", domain.ToolDoxygen),
			"platform", string(spec.Platform))
	}

	url, format, err := releaseAsset(settings, "doxygen/doxygen", tag, asset)
	if err != nil {
		return ArchivePlan{}, err
	}
	plan.URL = url
	plan.Format = format
	return plan, nil
}
