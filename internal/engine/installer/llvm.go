package installer

import (
	"context"

	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/zerr"
)

// LLVM installs the prebuilt clang+llvm toolchain from the llvm-project releases.
type LLVM struct {
	workflow *Workflow
}

// NewLLVM creates a new LLVM installer.
func NewLLVM(workflow *Workflow) *LLVM {
	return &LLVM{workflow: workflow}
}

// Name returns the tool name.
func (l *LLVM) Name() string {
	return domain.ToolLLVM
}

// Install installs llvm for spec.
func (l *LLVM) Install(ctx context.Context, spec domain.ToolSpec) (*domain.CacheEntry, error) {
	plan, err := l.Plan(spec)
	if err != nil {
		return nil, err
	}
	return l.workflow.Install(ctx, spec, plan)
}

// Plan resolves the llvm release archive for spec.
func (l *LLVM) Plan(spec domain.ToolSpec) (ArchivePlan, error) {
	triple, err := llvmTriple(spec.Platform, spec.Arch)
	if err != nil {
		return ArchivePlan{}, err
	}

	root := "clang+llvm-" + spec.Version + "-" + triple
	url, format, err := releaseAsset(l.workflow.Settings(), "llvm/llvm-project", "llvmorg-"+spec.Version, root+".tar.xz")
	if err != nil {
		return ArchivePlan{}, err
	}
	return ArchivePlan{
		URL:       url,
		Format:    format,
		Root:      root,
		BinDir:    "bin",
		Binary:    spec.Executable("clang"),
		CacheTree: true,
	}, nil
}

func llvmTriple(p domain.Platform, arch string) (string, error) {
	switch p {
	case domain.PlatformWindows:
		return "x86_64-pc-windows-msvc", nil
	case domain.PlatformMacOS:
		if arch == "arm64" {
			return "arm64-apple-darwin22.0", nil
		}
		return "x86_64-apple-darwin", nil
	case domain.PlatformLinux:
		if arch == "arm64" {
			return "aarch64-linux-gnu", nil
		}
		return "x86_64-linux-gnu-ubuntu-22.04", nil
	default:
		return "", zerr.With(domain.ErrUnsupportedPlatform, "platform", string(p))
	}
}
