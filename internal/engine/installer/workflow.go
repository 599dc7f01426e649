// Package installer implements the tool acquisition workflow and the
// per-tool installers built on it.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/setup-cpp/internal/core/ports"
	"go.trai.ch/zerr"
)

// ArchivePlan describes where a tool archive lives and how its contents are laid out.
type ArchivePlan struct {
	// URL is the resolved download URL.
	URL string
	// Format is the archive container format.
	Format domain.ArchiveFormat
	// Root is the tool directory inside the extracted archive, "." when flat.
	Root string
	// BinDir is the binary directory relative to Root.
	BinDir string
	// Binary is the executable file name, platform suffix included.
	Binary string
	// CacheTree stores the whole Root tree instead of the single binary.
	CacheTree bool
}

// Workflow runs the cache check, download, extract, path and cache write
// steps shared by every archive based installer.
type Workflow struct {
	cache    ports.ToolCache
	fetcher  ports.Fetcher
	paths    ports.PathRegistrar
	tracer   ports.Tracer
	settings domain.Settings
}

// NewWorkflow creates a new Workflow.
func NewWorkflow(
	cache ports.ToolCache,
	fetcher ports.Fetcher,
	paths ports.PathRegistrar,
	tracer ports.Tracer,
	settings domain.Settings,
) *Workflow {
	return &Workflow{
		cache:    cache,
		fetcher:  fetcher,
		paths:    paths,
		tracer:   tracer,
		settings: settings,
	}
}

// Settings returns the settings the workflow was built with.
func (w *Workflow) Settings() domain.Settings {
	return w.settings
}

// Install makes the tool described by spec available on the search path,
// downloading plan.URL only when the tool cache has no entry.
func (w *Workflow) Install(ctx context.Context, spec domain.ToolSpec, plan ArchivePlan) (*domain.CacheEntry, error) {
	ctx, span := w.tracer.Start(ctx, spec.Name+" "+spec.Version, ports.WithGroup())
	defer span.End()
	span.SetAttribute(domain.SpanAttrTool, spec.Name)
	span.SetAttribute(domain.SpanAttrVersion, spec.Version)

	r := &run{tracer: w.tracer, state: domain.StateStart}
	entry, err := w.install(ctx, r, span, spec, plan)
	if err != nil {
		r.fail()
		err = zerr.With(zerr.With(err, "tool", spec.Name), "version", spec.Version)
		span.RecordError(err)
		return nil, err
	}
	if entry.Cached {
		span.SetAttribute(domain.SpanAttrCached, true)
	}
	return entry, nil
}

func (w *Workflow) install(
	ctx context.Context,
	r *run,
	out ports.Span,
	spec domain.ToolSpec,
	plan ArchivePlan,
) (*domain.CacheEntry, error) {
	var cachedDir string
	err := r.step(ctx, domain.StateCacheCheck, func(context.Context) error {
		dir, err := w.cache.Find(spec.Name, spec.Version, spec.Arch)
		cachedDir = dir
		return err
	})
	if err != nil {
		return nil, err
	}

	if cachedDir != "" {
		return w.restore(ctx, r, out, spec, plan, cachedDir)
	}

	_, _ = fmt.Fprintf(out, "%s %s not found in tool cache\n", spec.Name, spec.Version)
	if err := r.step(ctx, domain.StateMiss, nil); err != nil {
		return nil, err
	}

	extractDir := filepath.Join(w.settings.DownloadDir(), domain.DownloadKey(plan.URL))
	err = r.step(ctx, domain.StateDownloading, func(ctx context.Context) error {
		fetched, err := w.fetcher.Fetch(ctx, plan.URL, extractDir, plan.Format)
		if err != nil {
			return err
		}
		if !fetched {
			_, _ = fmt.Fprintf(out, "reusing %s\n", extractDir)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	toolRoot := filepath.Join(extractDir, plan.Root)
	binDir := filepath.Join(toolRoot, plan.BinDir)
	binaryPath := filepath.Join(binDir, plan.Binary)
	err = r.step(ctx, domain.StateExtracting, func(context.Context) error {
		return checkBinary(binaryPath)
	})
	if err != nil {
		return nil, err
	}

	if err := r.step(ctx, domain.StatePathRegistered, func(context.Context) error {
		return w.paths.AddPath(binDir)
	}); err != nil {
		return nil, err
	}
	_, _ = fmt.Fprintf(out, "added %s to PATH\n", binDir)

	err = r.step(ctx, domain.StateCacheWrite, func(context.Context) error {
		if plan.CacheTree {
			_, err := w.cache.CacheDir(toolRoot, spec.Name, spec.Version, spec.Arch)
			return err
		}
		_, err := w.cache.CacheFile(binaryPath, plan.Binary, spec.Name, spec.Version, spec.Arch)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := r.step(ctx, domain.StateDone, nil); err != nil {
		return nil, err
	}
	return &domain.CacheEntry{
		Tool:      spec.Name,
		Version:   spec.Version,
		Arch:      spec.Arch,
		Directory: binDir,
	}, nil
}

// restore registers a cached installation.
func (w *Workflow) restore(
	ctx context.Context,
	r *run,
	out ports.Span,
	spec domain.ToolSpec,
	plan ArchivePlan,
	cachedDir string,
) (*domain.CacheEntry, error) {
	_, _ = fmt.Fprintf(out, "found %s %s in tool cache\n", spec.Name, spec.Version)
	if err := r.step(ctx, domain.StateCached, nil); err != nil {
		return nil, err
	}

	binDir := cachedDir
	if plan.CacheTree {
		binDir = filepath.Join(cachedDir, plan.BinDir)
	}
	if err := r.step(ctx, domain.StatePathRegistered, func(context.Context) error {
		return w.paths.AddPath(binDir)
	}); err != nil {
		return nil, err
	}
	_, _ = fmt.Fprintf(out, "added %s to PATH\n", binDir)

	if err := r.step(ctx, domain.StateDone, nil); err != nil {
		return nil, err
	}
	return &domain.CacheEntry{
		Tool:      spec.Name,
		Version:   spec.Version,
		Arch:      spec.Arch,
		Directory: binDir,
		Cached:    true,
	}, nil
}

// checkBinary fails with ErrBinaryNotFound unless path is a regular file.
func checkBinary(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(domain.ErrBinaryNotFound, "path", path)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrBinaryNotFound.Error()), "path", path)
	}
	if info.IsDir() {
		return zerr.With(domain.ErrBinaryNotFound, "path", path)
	}
	return nil
}

// run tracks the state machine of one installation.
type run struct {
	tracer ports.Tracer
	state  domain.InstallState
}

// step moves to next, running fn inside a span named after the state.
func (r *run) step(ctx context.Context, next domain.InstallState, fn func(context.Context) error) error {
	if !r.state.CanTransition(next) {
		return zerr.With(zerr.With(domain.ErrInvalidTransition, "from", string(r.state)), "to", string(next))
	}
	r.state = next

	ctx, span := r.tracer.Start(ctx, string(next))
	defer span.End()
	span.SetAttribute(domain.SpanAttrState, string(next))

	if fn == nil {
		return nil
	}
	if err := fn(ctx); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// fail moves to the failed state.
func (r *run) fail() {
	r.state = domain.StateFailed
}
