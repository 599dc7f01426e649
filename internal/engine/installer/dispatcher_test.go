package installer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/setup-cpp/internal/adapters/telemetry"
	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/setup-cpp/internal/core/ports/mocks"
	"go.trai.ch/setup-cpp/internal/engine/installer"
	"go.uber.org/mock/gomock"
)

func newDispatcher(t *testing.T, settings domain.Settings) (*installer.Dispatcher, *mocks.MockFetcher) {
	t.Helper()
	ctrl := gomock.NewController(t)

	fetcher := mocks.NewMockFetcher(ctrl)
	d := installer.New(
		settings,
		mocks.NewMockToolCache(ctrl),
		fetcher,
		mocks.NewMockPathRegistrar(ctrl),
		mocks.NewMockCommandRunner(ctrl),
		telemetry.NewNoOpTracer(),
	)
	return d, fetcher
}

func TestDispatcher_Tools(t *testing.T) {
	d, _ := newDispatcher(t, domain.Settings{OS: "linux", Arch: "x64"})

	assert.Equal(t, domain.ToolOrder, d.Tools())
}

func TestDispatcher_UnsupportedPlatformFailsBeforeNetwork(t *testing.T) {
	// The mocks carry no expectations: any cache or fetch call fails the test.
	d, _ := newDispatcher(t, domain.Settings{OS: "plan9", Arch: "x64", TempDir: t.TempDir()})

	_, err := d.Install(context.Background(), domain.Request{Tool: domain.ToolNinja, Version: "1.11.1"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnsupportedPlatform.Error())
}

func TestDispatcher_DoxygenOnMacOSFailsBeforeNetwork(t *testing.T) {
	d, _ := newDispatcher(t, domain.Settings{OS: "darwin", Arch: "arm64", TempDir: t.TempDir()})

	_, err := d.Install(context.Background(), domain.Request{Tool: domain.ToolDoxygen, Version: "1.9.8"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnsupportedPlatform.Error())
}

func TestDispatcher_UnknownTool(t *testing.T) {
	d, _ := newDispatcher(t, domain.Settings{OS: "linux", Arch: "x64"})

	_, err := d.Install(context.Background(), domain.Request{Tool: "bazel", Version: "7.0.0"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownTool.Error())
}

func TestDispatcher_Describe(t *testing.T) {
	d, _ := newDispatcher(t, domain.Settings{OS: "linux", Arch: "x64"})

	url, err := d.Describe(domain.Request{Tool: domain.ToolNinja, Version: "1.11.1"})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/ninja-build/ninja/releases/download/v1.11.1/ninja-linux.zip", url)

	url, err = d.Describe(domain.Request{Tool: domain.ToolConan, Version: "2.0.13"})
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestDispatcher_RoutesToInstaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	inst := mocks.NewMockInstaller(ctrl)
	inst.EXPECT().Name().Return(domain.ToolMeson).AnyTimes()

	want := &domain.CacheEntry{Tool: domain.ToolMeson, Version: "1.2.3", Directory: "/bin"}
	inst.EXPECT().Install(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, spec domain.ToolSpec) (*domain.CacheEntry, error) {
			assert.Equal(t, domain.PlatformLinux, spec.Platform)
			assert.Equal(t, "1.2.3", spec.Version)
			return want, nil
		})

	d := installer.NewDispatcher(domain.Settings{OS: "linux", Arch: "x64"}, inst)

	got, err := d.Install(context.Background(), domain.Request{Tool: domain.ToolMeson, Version: "1.2.3"})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
