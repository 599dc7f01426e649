// Package app implements the application layer for setup-cpp.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/setup-cpp/internal/adapters/telemetry"
	"go.trai.ch/setup-cpp/internal/adapters/telemetry/progrock"
	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/setup-cpp/internal/core/ports"
	"go.trai.ch/setup-cpp/internal/engine/installer"
	"go.trai.ch/setup-cpp/internal/ui/report"
)

// RootSpanName names the span covering a whole install run.
const RootSpanName = "setup-cpp"

// sinkSetter is implemented by tracers that stream span output to a sink.
type sinkSetter interface {
	SetSink(sink telemetry.LogSink)
}

// jsonSwitcher is implemented by loggers with a JSON mode.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	dispatcher   *installer.Dispatcher
	tracer       ports.Tracer
	logger       ports.Logger
	stderr       io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	dispatcher *installer.Dispatcher,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		dispatcher:   dispatcher,
		tracer:       tracer,
		logger:       log,
		stderr:       os.Stderr,
	}
}

// WithStderr redirects step output. Used for testing.
func (a *App) WithStderr(w io.Writer) *App {
	a.stderr = w
	return a
}

// SetJSONLogs switches the logger to JSON output when it supports it.
func (a *App) SetJSONLogs(enable bool) {
	if l, ok := a.logger.(jsonSwitcher); ok {
		l.SetJSON(enable)
	}
}

// Requests resolves the manifest tools, with overrides taking precedence,
// into install requests in installation order.
func (a *App) Requests(overrides map[string]string) ([]domain.Request, error) {
	return a.configLoader.Manifest().Requests(overrides)
}

// Plan returns what Run would install, without touching the network.
func (a *App) Plan(requests []domain.Request) ([]report.PlannedTool, error) {
	planned := make([]report.PlannedTool, 0, len(requests))
	for _, req := range requests {
		url, err := a.dispatcher.Describe(req)
		if err != nil {
			return nil, err
		}
		if url == "" {
			url = "pip"
		}
		planned = append(planned, report.PlannedTool{Tool: req.Tool, Version: req.Version, Source: url})
	}
	return planned, nil
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// DisableProgress skips the progress journal.
	DisableProgress bool
}

// Run installs every request in order and stops at the first failure.
// Failures are joined with domain.ErrSetupFailed.
func (a *App) Run(ctx context.Context, requests []domain.Request, opts RunOptions) ([]domain.CacheEntry, error) {
	settings := a.configLoader.Settings()

	bridge := telemetry.NewGroupBridge(a.stderr, settings.GroupOutput)
	processors := []sdktrace.TracerProviderOption{sdktrace.WithSpanProcessor(bridge)}
	sinks := telemetry.MultiSink{bridge}
	if !opts.DisableProgress {
		journal, err := progrock.OpenJournal(settings.Journal())
		if err != nil {
			a.logger.Warn(fmt.Sprintf("progress journal disabled: %v", err))
		} else {
			recorder := progrock.NewRecorder(journal)
			processors = append(processors, sdktrace.WithSpanProcessor(recorder))
			sinks = append(sinks, recorder)
		}
	}

	tp := setupOTel(processors...)
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()

	if s, ok := a.tracer.(sinkSetter); ok {
		s.SetSink(sinks)
		defer s.SetSink(nil)
	}

	ctx, span := a.tracer.Start(ctx, RootSpanName)
	defer span.End()
	span.SetAttribute("setup_cpp.requests", len(requests))

	entries := make([]domain.CacheEntry, 0, len(requests))
	for _, req := range requests {
		entry, err := a.dispatcher.Install(ctx, req)
		if err != nil {
			span.RecordError(err)
			return entries, errors.Join(domain.ErrSetupFailed, err)
		}
		entries = append(entries, *entry)
	}

	a.logger.Info("setup-cpp succeeded")
	return entries, nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// ToolCache also removes the persistent tool cache.
	ToolCache bool
}

// Clean removes the extraction directories under the temp root and,
// optionally, the tool cache. Entries holding the tool cache, or held by it,
// survive unless options.ToolCache is set. Failures are logged as warnings.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	settings := a.configLoader.Settings()
	cacheRoot := filepath.Clean(settings.ToolCacheRoot)

	remove := func(path string) {
		if err := os.RemoveAll(path); err != nil {
			a.logger.Warn(fmt.Sprintf("failed to remove %s: %v", path, err))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", path))
	}

	downloadDir := settings.DownloadDir()
	entries, err := os.ReadDir(downloadDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		a.logger.Warn(fmt.Sprintf("failed to read %s: %v", downloadDir, err))
	default:
		for _, e := range entries {
			path := filepath.Join(downloadDir, e.Name())
			if within(path, cacheRoot) || within(cacheRoot, path) {
				continue
			}
			remove(path)
		}
	}

	if options.ToolCache {
		remove(cacheRoot)
	}
	return nil
}

// within reports whether path is dir or lies below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// setupOTel installs a global TracerProvider with the given span processors.
func setupOTel(opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp
}
