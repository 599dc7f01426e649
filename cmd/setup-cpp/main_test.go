package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/setup-cpp/internal/adapters/logger"
	"go.trai.ch/setup-cpp/internal/adapters/telemetry"
	"go.trai.ch/setup-cpp/internal/app"
	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/setup-cpp/internal/core/ports/mocks"
	"go.trai.ch/setup-cpp/internal/engine/installer"
	"go.uber.org/mock/gomock"
)

// newProvider builds components around a mocked config loader and the real logger.
func newProvider(t *testing.T, settings domain.Settings, manifest *domain.Manifest) (ComponentProvider, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)

	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Settings().Return(settings).AnyTimes()
	loader.EXPECT().Manifest().Return(manifest).AnyTimes()

	logs := new(bytes.Buffer)
	log := logger.New(false)
	log.SetOutput(logs)

	tracer := telemetry.NewOTelTracer("test")
	workflow := installer.NewWorkflow(
		mocks.NewMockToolCache(ctrl),
		mocks.NewMockFetcher(ctrl),
		mocks.NewMockPathRegistrar(ctrl),
		tracer,
		settings,
	)
	dispatcher := installer.NewDispatcher(settings, installer.NewNinja(workflow))
	application := app.New(loader, dispatcher, tracer, log).WithStderr(new(bytes.Buffer))

	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: log}, func() {}, nil
	}, logs
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	provider, _ := newProvider(t, domain.Settings{OS: "linux", Arch: "x64"}, nil)

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that invalid manifests are logged and exit 1.
func TestRun_ExecutionError(t *testing.T) {
	manifest := &domain.Manifest{Tools: map[string]string{"bazel": "7.0.0"}}
	provider, logs := newProvider(t, domain.Settings{OS: "linux", Arch: "x64"}, manifest)

	exitCode := run(context.Background(), []string{"install", "--no-progress"}, new(bytes.Buffer), provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, logs.String(), domain.ErrUnknownTool.Error())
}

// TestRun_SetupFailure verifies that a failed installation exits 1.
func TestRun_SetupFailure(t *testing.T) {
	temp := t.TempDir()
	settings := domain.Settings{TempDir: temp, ToolCacheRoot: temp, OS: "plan9", Arch: "x64"}
	provider, logs := newProvider(t, settings, nil)

	exitCode := run(context.Background(), []string{"install", "--ninja", "true", "--no-progress"}, new(bytes.Buffer), provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, logs.String(), domain.ErrUnsupportedPlatform.Error())
}

// TestRun_AppliesOptions verifies that options are applied to the app before execution.
func TestRun_AppliesOptions(t *testing.T) {
	provider, _ := newProvider(t, domain.Settings{OS: "linux", Arch: "x64"}, nil)

	applied := false
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), provider, func(*app.App) {
		applied = true
	})

	assert.Equal(t, 0, exitCode)
	assert.True(t, applied)
}
