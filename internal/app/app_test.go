package app_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/setup-cpp/internal/adapters/logger"
	"go.trai.ch/setup-cpp/internal/adapters/telemetry"
	"go.trai.ch/setup-cpp/internal/app"
	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/setup-cpp/internal/core/ports"
	"go.trai.ch/setup-cpp/internal/core/ports/mocks"
	"go.trai.ch/setup-cpp/internal/engine/installer"
	"go.trai.ch/setup-cpp/internal/ui/report"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader   *mocks.MockConfigLoader
	tracer   *telemetry.OTelTracer
	log      *logger.Logger
	logs     *bytes.Buffer
	stderr   *bytes.Buffer
	settings domain.Settings
}

func newFixture(t *testing.T) (*fixture, *gomock.Controller) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)

	temp := t.TempDir()
	f := &fixture{
		loader: mocks.NewMockConfigLoader(ctrl),
		tracer: telemetry.NewOTelTracer("test"),
		log:    logger.New(false),
		logs:   new(bytes.Buffer),
		stderr: new(bytes.Buffer),
		settings: domain.Settings{
			TempDir:       temp,
			ToolCacheRoot: domain.DefaultToolCacheRoot(temp),
			OS:            "linux",
			Arch:          "x64",
			GroupOutput:   true,
		},
	}
	f.log.SetOutput(f.logs)
	f.loader.EXPECT().Settings().DoAndReturn(func() domain.Settings { return f.settings }).AnyTimes()
	return f, ctrl
}

func (f *fixture) app(installers ...ports.Installer) *app.App {
	d := installer.NewDispatcher(f.settings, installers...)
	return app.New(f.loader, d, f.tracer, f.log).WithStderr(f.stderr)
}

// fakeInstaller returns an installer that opens a group span like the real ones.
func fakeInstaller(ctrl *gomock.Controller, tracer ports.Tracer, tool string, calls *[]string, err error) *mocks.MockInstaller {
	inst := mocks.NewMockInstaller(ctrl)
	inst.EXPECT().Name().Return(tool).AnyTimes()
	inst.EXPECT().Install(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, spec domain.ToolSpec) (*domain.CacheEntry, error) {
			*calls = append(*calls, spec.Name)
			_, span := tracer.Start(ctx, spec.Name+" "+spec.Version, ports.WithGroup())
			defer span.End()
			_, _ = fmt.Fprintf(span, "installing %s\n", spec.Name)
			if err != nil {
				span.RecordError(err)
				return nil, err
			}
			return &domain.CacheEntry{Tool: spec.Name, Version: spec.Version, Directory: "/bin/" + spec.Name}, nil
		}).AnyTimes()
	return inst
}

func TestApp_RunInstallsInOrder(t *testing.T) {
	f, ctrl := newFixture(t)
	var calls []string
	a := f.app(
		fakeInstaller(ctrl, f.tracer, domain.ToolNinja, &calls, nil),
		fakeInstaller(ctrl, f.tracer, domain.ToolCmake, &calls, nil),
	)

	requests := []domain.Request{
		{Tool: domain.ToolCmake, Version: "3.27.7"},
		{Tool: domain.ToolNinja, Version: "1.11.1"},
	}
	entries, err := a.Run(context.Background(), requests, app.RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"cmake", "ninja"}, calls)
	require.Len(t, entries, 2)
	assert.Equal(t, "/bin/ninja", entries[1].Directory)
	assert.Contains(t, f.logs.String(), "setup-cpp succeeded")

	assert.Contains(t, f.stderr.String(), "::group::cmake 3.27.7\ninstalling cmake\n::endgroup::\n")
	assert.Contains(t, f.stderr.String(), "::group::ninja 1.11.1\ninstalling ninja\n::endgroup::\n")
}

func TestApp_RunStopsAtFirstFailure(t *testing.T) {
	f, ctrl := newFixture(t)
	var calls []string
	a := f.app(
		fakeInstaller(ctrl, f.tracer, domain.ToolCmake, &calls, domain.ErrDownloadFailed),
		fakeInstaller(ctrl, f.tracer, domain.ToolNinja, &calls, nil),
	)

	requests := []domain.Request{
		{Tool: domain.ToolCmake, Version: "3.27.7"},
		{Tool: domain.ToolNinja, Version: "1.11.1"},
	}
	entries, err := a.Run(context.Background(), requests, app.RunOptions{DisableProgress: true})
	require.Error(t, err)

	assert.ErrorIs(t, err, domain.ErrSetupFailed)
	assert.ErrorContains(t, err, domain.ErrDownloadFailed.Error())
	assert.Equal(t, []string{"cmake"}, calls)
	assert.Empty(t, entries)
	assert.NotContains(t, f.logs.String(), "succeeded")
	assert.Contains(t, f.stderr.String(), "::error::cmake 3.27.7 failed")
}

func TestApp_RunUnsupportedPlatform(t *testing.T) {
	f, ctrl := newFixture(t)
	f.settings.OS = "plan9"
	var calls []string
	a := f.app(fakeInstaller(ctrl, f.tracer, domain.ToolNinja, &calls, nil))

	_, err := a.Run(context.Background(), []domain.Request{{Tool: domain.ToolNinja, Version: "1.11.1"}}, app.RunOptions{})
	assert.ErrorIs(t, err, domain.ErrSetupFailed)
	assert.ErrorContains(t, err, domain.ErrUnsupportedPlatform.Error())
	assert.Empty(t, calls)
}

func TestApp_Requests(t *testing.T) {
	f, _ := newFixture(t)
	f.loader.EXPECT().Manifest().Return(&domain.Manifest{
		Tools: map[string]string{"ninja": "1.10.2", "llvm": "false"},
	})
	a := f.app()

	requests, err := a.Requests(map[string]string{"cmake": "true", "ninja": "1.11.1"})
	require.NoError(t, err)

	assert.Equal(t, []domain.Request{
		{Tool: domain.ToolCmake, Version: domain.DefaultVersions[domain.ToolCmake]},
		{Tool: domain.ToolNinja, Version: "1.11.1"},
	}, requests)
}

func TestApp_Plan(t *testing.T) {
	f, ctrl := newFixture(t)
	workflow := installer.NewWorkflow(nil, nil, nil, telemetry.NewNoOpTracer(), f.settings)
	d := installer.NewDispatcher(f.settings,
		installer.NewNinja(workflow),
		installer.NewMeson(mocks.NewMockCommandRunner(ctrl), mocks.NewMockPathRegistrar(ctrl), f.tracer, f.settings),
	)
	a := app.New(f.loader, d, f.tracer, f.log)

	planned, err := a.Plan([]domain.Request{
		{Tool: domain.ToolNinja, Version: "1.11.1"},
		{Tool: domain.ToolMeson, Version: "1.2.3"},
	})
	require.NoError(t, err)

	assert.Equal(t, []report.PlannedTool{
		{Tool: "ninja", Version: "1.11.1", Source: "https://github.com/ninja-build/ninja/releases/download/v1.11.1/ninja-linux.zip"},
		{Tool: "meson", Version: "1.2.3", Source: "pip"},
	}, planned)
}

func TestApp_Clean(t *testing.T) {
	f, _ := newFixture(t)
	a := f.app()

	extracted := filepath.Join(f.settings.DownloadDir(), "0123456789abcdef")
	require.NoError(t, os.MkdirAll(extracted, 0o750))
	cached := domain.CacheEntryPath(f.settings.ToolCacheRoot, "ninja", "1.11.1", "x64")
	require.NoError(t, os.MkdirAll(cached, 0o750))

	require.NoError(t, a.Clean(context.Background(), app.CleanOptions{}))
	assert.NoDirExists(t, extracted)
	assert.DirExists(t, cached, "tool cache survives without --tool-cache")

	require.NoError(t, a.Clean(context.Background(), app.CleanOptions{ToolCache: true}))
	assert.NoDirExists(t, f.settings.ToolCacheRoot)
}

func TestApp_CleanKeepsEnclosingToolCache(t *testing.T) {
	tests := []struct {
		name      string
		cacheRoot func(downloadDir string) string
	}{
		{name: "nested below a child", cacheRoot: func(d string) string { return filepath.Join(d, "caches", "tools") }},
		{name: "the temp root itself", cacheRoot: func(d string) string { return d }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newFixture(t)
			f.settings.ToolCacheRoot = tt.cacheRoot(f.settings.DownloadDir())
			a := f.app()

			cached := domain.CacheEntryPath(f.settings.ToolCacheRoot, "cmake", "3.27.7", "x64")
			require.NoError(t, os.MkdirAll(cached, 0o750))

			require.NoError(t, a.Clean(context.Background(), app.CleanOptions{}))
			assert.DirExists(t, cached)
		})
	}
}

func TestApp_RunWritesProgressJournal(t *testing.T) {
	f, ctrl := newFixture(t)
	var calls []string
	a := f.app(fakeInstaller(ctrl, f.tracer, domain.ToolNinja, &calls, nil))

	_, err := a.Run(context.Background(), []domain.Request{{Tool: domain.ToolNinja, Version: "1.11.1"}}, app.RunOptions{})
	require.NoError(t, err)

	data, err := os.ReadFile(f.settings.Journal())
	require.NoError(t, err)
	assert.Contains(t, string(data), "ninja 1.11.1")
}

func TestApp_RunWithoutProgressSkipsJournal(t *testing.T) {
	f, ctrl := newFixture(t)
	var calls []string
	a := f.app(fakeInstaller(ctrl, f.tracer, domain.ToolNinja, &calls, nil))

	_, err := a.Run(context.Background(), []domain.Request{{Tool: domain.ToolNinja, Version: "1.11.1"}}, app.RunOptions{DisableProgress: true})
	require.NoError(t, err)
	assert.NoFileExists(t, f.settings.Journal())
}

func TestApp_CleanMissingTempIsNoop(t *testing.T) {
	f, _ := newFixture(t)
	a := f.app()

	require.NoError(t, a.Clean(context.Background(), app.CleanOptions{ToolCache: true}))
	assert.NotContains(t, f.logs.String(), "failed")
}

func TestApp_SetJSONLogs(t *testing.T) {
	f, _ := newFixture(t)
	a := f.app()

	a.SetJSONLogs(true)
	f.log.Info("hello")

	assert.Contains(t, f.logs.String(), `"msg":"hello"`)
}
