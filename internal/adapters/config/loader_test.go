package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/setup-cpp/internal/adapters/config"
	"go.trai.ch/setup-cpp/internal/core/domain"
)

func envLookup(vars map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func TestNewLoader_Defaults(t *testing.T) {
	temp := t.TempDir()
	home := t.TempDir()

	loader, err := config.NewLoader(envLookup(map[string]string{
		config.EnvRunnerTemp: temp,
		"HOME":               home,
	}), t.TempDir())
	require.NoError(t, err)

	s := loader.Settings()
	assert.Equal(t, temp, s.TempDir)
	assert.Equal(t, filepath.Join(temp, "setup-cpp", "tool-cache"), s.ToolCacheRoot)
	assert.Equal(t, filepath.Join(home, "setup_cpp"), s.SetupDir)
	assert.Empty(t, s.PathFile)
	assert.Equal(t, domain.CurrentOS(), s.OS)
	assert.Equal(t, domain.CurrentArch(), s.Arch)
	assert.False(t, s.GroupOutput)
	assert.Equal(t, domain.DefaultHTTPTimeout, s.HTTPTimeout)
	assert.Equal(t, domain.DefaultDownloadBaseURL, s.DownloadBaseURL)
	assert.Equal(t, filepath.Join(temp, "setup-cpp", "progress.jsonl"), s.Journal())
	assert.Nil(t, loader.Manifest())
}

func TestNewLoader_Environment(t *testing.T) {
	loader, err := config.NewLoader(envLookup(map[string]string{
		config.EnvRunnerTemp:      "/runner/temp",
		config.EnvRunnerToolCache: "/opt/hostedtoolcache",
		config.EnvSetupDir:        "/opt/setup",
		config.EnvGitHubPath:      "/runner/path",
		config.EnvGitHubActions:   "true",
		config.EnvOS:              "win32",
		config.EnvArch:            "arm64",
		config.EnvHTTPTimeout:     "30s",
		config.EnvDownloadBaseURL: "http://127.0.0.1:8080/",
		config.EnvJournal:         "/runner/progress.jsonl",
	}), t.TempDir())
	require.NoError(t, err)

	s := loader.Settings()
	assert.Equal(t, "/runner/temp", s.TempDir)
	assert.Equal(t, "/opt/hostedtoolcache", s.ToolCacheRoot)
	assert.Equal(t, "/opt/setup", s.SetupDir)
	assert.Equal(t, "/runner/path", s.PathFile)
	assert.Equal(t, "win32", s.OS)
	assert.Equal(t, "arm64", s.Arch)
	assert.True(t, s.GroupOutput)
	assert.Equal(t, 30*time.Second, s.HTTPTimeout)
	assert.Equal(t, "http://127.0.0.1:8080", s.DownloadBaseURL)
	assert.Equal(t, "/runner/progress.jsonl", s.Journal())
}

func TestNewLoader_InvalidTimeout(t *testing.T) {
	for _, raw := range []string{"soon", "-5s"} {
		t.Run(raw, func(t *testing.T) {
			_, err := config.NewLoader(envLookup(map[string]string{
				config.EnvHTTPTimeout: raw,
			}), t.TempDir())
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
		})
	}
}

func TestNewLoader_DiscoversYAMLManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "setup-cpp.yaml"), `
version: "1"
tools:
  ninja: 1.11.1
  cmake: true
  llvm: false
  meson: 1.2
settings:
  tool_cache: /opt/cache
`)

	loader, err := config.NewLoader(envLookup(map[string]string{
		config.EnvRunnerToolCache: "/env/cache",
	}), dir)
	require.NoError(t, err)

	m := loader.Manifest()
	require.NotNil(t, m)
	assert.Equal(t, map[string]string{
		"ninja": "1.11.1",
		"cmake": "true",
		"llvm":  "false",
		"meson": "1.2",
	}, m.Tools)
	assert.Equal(t, "/opt/cache", loader.Settings().ToolCacheRoot)
}

func TestNewLoader_DiscoversTOMLManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "setup-cpp.toml"), `
version = "1"

[tools]
ninja = "1.11.1"
cmake = true
doxygen = false

[settings]
setup_dir = "/opt/setup"
`)

	loader, err := config.NewLoader(envLookup(nil), dir)
	require.NoError(t, err)

	m := loader.Manifest()
	require.NotNil(t, m)
	assert.Equal(t, map[string]string{
		"ninja":   "1.11.1",
		"cmake":   "true",
		"doxygen": "false",
	}, m.Tools)
	assert.Equal(t, "/opt/setup", loader.Settings().SetupDir)
}

func TestNewLoader_YAMLWinsOverTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "setup-cpp.yaml"), "tools:\n  ninja: 1.10.2\n")
	writeFile(t, filepath.Join(dir, "setup-cpp.toml"), "[tools]\nninja = \"1.11.1\"\n")

	loader, err := config.NewLoader(envLookup(nil), dir)
	require.NoError(t, err)
	assert.Equal(t, "1.10.2", loader.Manifest().Tools["ninja"])
}

func TestNewLoader_ExplicitManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ci.yml"), "tools:\n  cmake: 3.27.7\n")

	loader, err := config.NewLoader(envLookup(map[string]string{
		config.EnvConfig: "ci.yml",
	}), dir)
	require.NoError(t, err)
	assert.Equal(t, "3.27.7", loader.Manifest().Tools["cmake"])
}

func TestNewLoader_ExplicitManifestMissing(t *testing.T) {
	_, err := config.NewLoader(envLookup(map[string]string{
		config.EnvConfig: "missing.yaml",
	}), t.TempDir())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

func TestNewLoader_TempDirMovesDefaultCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "setup-cpp.yaml"), "settings:\n  temp_dir: /scratch\n")

	loader, err := config.NewLoader(envLookup(map[string]string{
		config.EnvRunnerTemp: "/runner/temp",
	}), dir)
	require.NoError(t, err)

	s := loader.Settings()
	assert.Equal(t, "/scratch", s.TempDir)
	assert.Equal(t, filepath.Join("/scratch", "setup-cpp", "tool-cache"), s.ToolCacheRoot)
}

func TestLoadManifest_Errors(t *testing.T) {
	dir := t.TempDir()

	badYAML := filepath.Join(dir, "bad.yaml")
	writeFile(t, badYAML, "tools: [ninja")

	nested := filepath.Join(dir, "nested.yaml")
	writeFile(t, nested, "tools:\n  ninja:\n    version: 1.11.1\n")

	badTOML := filepath.Join(dir, "bad.toml")
	writeFile(t, badTOML, "[tools\n")

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "unsupported format", path: filepath.Join(dir, "setup-cpp.json"), want: domain.ErrUnsupportedConfigFormat},
		{name: "missing file", path: filepath.Join(dir, "missing.yaml"), want: domain.ErrConfigReadFailed},
		{name: "malformed yaml", path: badYAML, want: domain.ErrConfigParseFailed},
		{name: "non scalar version", path: nested, want: domain.ErrConfigParseFailed},
		{name: "malformed toml", path: badTOML, want: domain.ErrConfigParseFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadManifest(tt.path)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want.Error())
		})
	}
}
