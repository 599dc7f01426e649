package installer

import (
	"context"

	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/zerr"
)

// Ninja installs ninja-build from its GitHub releases.
type Ninja struct {
	workflow *Workflow
}

// NewNinja creates a new Ninja installer.
func NewNinja(workflow *Workflow) *Ninja {
	return &Ninja{workflow: workflow}
}

// Name returns the tool name.
func (n *Ninja) Name() string {
	return domain.ToolNinja
}

// Install installs ninja for spec.
func (n *Ninja) Install(ctx context.Context, spec domain.ToolSpec) (*domain.CacheEntry, error) {
	plan, err := n.Plan(spec)
	if err != nil {
		return nil, err
	}
	return n.workflow.Install(ctx, spec, plan)
}

// Plan resolves the ninja release archive for spec.
func (n *Ninja) Plan(spec domain.ToolSpec) (ArchivePlan, error) {
	platform, err := ninjaPlatform(spec.Platform)
	if err != nil {
		return ArchivePlan{}, err
	}
	url, format, err := releaseAsset(n.workflow.Settings(), "ninja-build/ninja", "v"+spec.Version, "ninja-"+platform+".zip")
	if err != nil {
		return ArchivePlan{}, err
	}
	return ArchivePlan{
		URL:    url,
		Format: format,
		Root:   ".",
		BinDir: ".",
		Binary: spec.Executable("ninja"),
	}, nil
}

// ninjaPlatform returns the platform name ninja uses in its download links.
func ninjaPlatform(p domain.Platform) (string, error) {
	switch p {
	case domain.PlatformWindows:
		return "win", nil
	case domain.PlatformMacOS:
		return "mac", nil
	case domain.PlatformLinux:
		return "linux", nil
	default:
		return "", zerr.With(domain.ErrUnsupportedPlatform, "platform", string(p))
	}
}
