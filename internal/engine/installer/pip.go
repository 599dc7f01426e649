package installer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/setup-cpp/internal/core/ports"
	"go.trai.ch/zerr"
)

// scriptsDirQuery prints the user scheme scripts directory of the interpreter.
const scriptsDirQuery = "import os, sysconfig; print(sysconfig.get_path('scripts', os.name + '_user'))"

// Pip installs a Python tool with "pip install --user" into a private user base
// under the setup directory. Pip tools bypass the tool cache.
type Pip struct {
	name     string
	runner   ports.CommandRunner
	paths    ports.PathRegistrar
	tracer   ports.Tracer
	settings domain.Settings
}

// NewConan creates the conan installer.
func NewConan(runner ports.CommandRunner, paths ports.PathRegistrar, tracer ports.Tracer, settings domain.Settings) *Pip {
	return newPip(domain.ToolConan, runner, paths, tracer, settings)
}

// NewMeson creates the meson installer.
func NewMeson(runner ports.CommandRunner, paths ports.PathRegistrar, tracer ports.Tracer, settings domain.Settings) *Pip {
	return newPip(domain.ToolMeson, runner, paths, tracer, settings)
}

func newPip(
	name string,
	runner ports.CommandRunner,
	paths ports.PathRegistrar,
	tracer ports.Tracer,
	settings domain.Settings,
) *Pip {
	return &Pip{
		name:     name,
		runner:   runner,
		paths:    paths,
		tracer:   tracer,
		settings: settings,
	}
}

// Name returns the tool name.
func (p *Pip) Name() string {
	return p.name
}

// UserBase returns the PYTHONUSERBASE the tool is installed into.
func (p *Pip) UserBase() string {
	return filepath.Join(p.settings.SetupDir, "python")
}

// Install runs pip for spec and registers the scripts directory.
func (p *Pip) Install(ctx context.Context, spec domain.ToolSpec) (*domain.CacheEntry, error) {
	ctx, span := p.tracer.Start(ctx, spec.Name+" "+spec.Version, ports.WithGroup())
	defer span.End()
	span.SetAttribute(domain.SpanAttrTool, spec.Name)
	span.SetAttribute(domain.SpanAttrVersion, spec.Version)

	entry, err := p.install(ctx, spec)
	if err != nil {
		err = zerr.With(zerr.With(err, "tool", spec.Name), "version", spec.Version)
		span.RecordError(err)
		return nil, err
	}
	_, _ = fmt.Fprintf(span, "added %s to PATH\n", entry.Directory)
	return entry, nil
}

func (p *Pip) install(ctx context.Context, spec domain.ToolSpec) (*domain.CacheEntry, error) {
	python := "python3"
	if spec.Platform == domain.PlatformWindows {
		python = "python"
	}
	env := map[string]string{"PYTHONUSERBASE": p.UserBase()}

	installCtx, installSpan := p.tracer.Start(ctx, "pip_install")
	_, err := p.runner.Run(installCtx, domain.Command{
		Name: python,
		Args: []string{"-m", "pip", "install", "--user", "--upgrade", spec.Name + "==" + spec.Version},
		Env:  env,
	})
	if err != nil {
		installSpan.RecordError(err)
		installSpan.End()
		return nil, err
	}
	installSpan.End()

	out, err := p.runner.Run(ctx, domain.Command{
		Name: python,
		Args: []string{"-c", scriptsDirQuery},
		Env:  env,
	})
	if err != nil {
		return nil, err
	}
	binDir := lastLine(string(out))
	if binDir == "" {
		return nil, zerr.With(domain.ErrBinaryNotFound, "reason", "empty scripts directory")
	}

	if err := checkBinary(filepath.Join(binDir, spec.Executable(spec.Name))); err != nil {
		return nil, err
	}

	_, pathSpan := p.tracer.Start(ctx, string(domain.StatePathRegistered))
	defer pathSpan.End()
	if err := p.paths.AddPath(binDir); err != nil {
		pathSpan.RecordError(err)
		return nil, err
	}

	return &domain.CacheEntry{
		Tool:      spec.Name,
		Version:   spec.Version,
		Arch:      spec.Arch,
		Directory: binDir,
	}, nil
}

// lastLine returns the last non-empty line of out. The runner merges stderr
// into out, so interpreter warnings may precede the printed path.
func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
