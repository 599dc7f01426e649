// Package config resolves runtime settings from the environment and an
// optional tool manifest.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables read by the loader.
const (
	EnvRunnerTemp      = "RUNNER_TEMP"
	EnvRunnerToolCache = "RUNNER_TOOL_CACHE"
	EnvSetupDir        = "SETUP_CPP_DIR"
	EnvConfig          = "SETUP_CPP_CONFIG"
	EnvOS              = "SETUP_CPP_OS"
	EnvArch            = "SETUP_CPP_ARCH"
	EnvHTTPTimeout     = "SETUP_CPP_HTTP_TIMEOUT"
	EnvDownloadBaseURL = "SETUP_CPP_DOWNLOAD_BASE_URL"
	EnvJournal         = "SETUP_CPP_JOURNAL"
	EnvGitHubPath      = "GITHUB_PATH"
	EnvGitHubActions   = "GITHUB_ACTIONS"
)

// TOMLManifestFileName is the TOML spelling of the manifest.
const TOMLManifestFileName = "setup-cpp.toml"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Loader implements ports.ConfigLoader. Settings are resolved once, at construction.
type Loader struct {
	settings domain.Settings
	manifest *domain.Manifest
}

// New creates a Loader from the process environment and working directory.
func New() (*Loader, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	return NewLoader(os.LookupEnv, wd)
}

// NewLoader creates a Loader reading variables through lookup and
// discovering the manifest in workDir.
func NewLoader(lookup LookupFunc, workDir string) (*Loader, error) {
	settings, err := settingsFromEnv(lookup)
	if err != nil {
		return nil, err
	}

	var manifest *domain.Manifest
	if path := manifestPath(lookup, workDir); path != "" {
		manifest, err = LoadManifest(path)
		if err != nil {
			return nil, err
		}
	}

	return &Loader{
		settings: applyManifest(settings, manifest),
		manifest: manifest,
	}, nil
}

// Settings returns the resolved runtime settings.
func (l *Loader) Settings() domain.Settings {
	return l.settings
}

// Manifest returns the discovered manifest, or nil.
func (l *Loader) Manifest() *domain.Manifest {
	return l.manifest
}

func settingsFromEnv(lookup LookupFunc) (domain.Settings, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	temp := get(EnvRunnerTemp)
	if temp == "" {
		temp = os.TempDir()
	}

	s := domain.Settings{
		TempDir:         temp,
		ToolCacheRoot:   get(EnvRunnerToolCache),
		SetupDir:        get(EnvSetupDir),
		PathFile:        get(EnvGitHubPath),
		OS:              get(EnvOS),
		Arch:            get(EnvArch),
		GroupOutput:     get(EnvGitHubActions) == "true",
		HTTPTimeout:     domain.DefaultHTTPTimeout,
		DownloadBaseURL: strings.TrimSuffix(get(EnvDownloadBaseURL), "/"),
		JournalFile:     get(EnvJournal),
	}

	if s.ToolCacheRoot == "" {
		s.ToolCacheRoot = domain.DefaultToolCacheRoot(temp)
	}
	if s.SetupDir == "" {
		home := get("HOME")
		if home == "" {
			home = get("USERPROFILE")
		}
		if home == "" {
			home = temp
		}
		s.SetupDir = filepath.Join(home, domain.DefaultSetupDirName)
	}
	if s.OS == "" {
		s.OS = domain.CurrentOS()
	}
	if s.Arch == "" {
		s.Arch = domain.CurrentArch()
	}
	if s.DownloadBaseURL == "" {
		s.DownloadBaseURL = domain.DefaultDownloadBaseURL
	}
	if raw := get(EnvHTTPTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			if err == nil {
				err = zerr.New("timeout must be positive")
			}
			return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "variable", EnvHTTPTimeout)
		}
		s.HTTPTimeout = d
	}

	return s, nil
}

// manifestPath returns the manifest to load. An explicit SETUP_CPP_CONFIG is
// returned even when missing so that the read fails loudly.
func manifestPath(lookup LookupFunc, workDir string) string {
	if v, ok := lookup(EnvConfig); ok && strings.TrimSpace(v) != "" {
		path := strings.TrimSpace(v)
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		return path
	}

	for _, name := range []string{domain.ManifestFileName, TOMLManifestFileName} {
		candidate := filepath.Join(workDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

func applyManifest(s domain.Settings, m *domain.Manifest) domain.Settings {
	if m == nil {
		return s
	}
	resolved := m.Apply(s)
	// A relocated temp root moves the fallback tool cache with it unless
	// either side named the cache explicitly.
	if m.TempDir != "" && m.ToolCacheRoot == "" && s.ToolCacheRoot == domain.DefaultToolCacheRoot(s.TempDir) {
		resolved.ToolCacheRoot = domain.DefaultToolCacheRoot(m.TempDir)
	}
	return resolved
}

// LoadManifest reads a YAML or TOML manifest, chosen by file extension.
func LoadManifest(path string) (*domain.Manifest, error) {
	var file manifestFile

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := readAndUnmarshal(path, &file, yaml.Unmarshal); err != nil {
			return nil, err
		}
	case ".toml":
		if err := readAndUnmarshal(path, &file, toml.Unmarshal); err != nil {
			return nil, err
		}
	default:
		return nil, zerr.With(domain.ErrUnsupportedConfigFormat, "path", path)
	}

	manifest := &domain.Manifest{
		Tools:         make(map[string]string, len(file.Tools)),
		TempDir:       file.Settings.TempDir,
		ToolCacheRoot: file.Settings.ToolCache,
		SetupDir:      file.Settings.SetupDir,
	}
	for name, v := range file.Tools {
		manifest.Tools[strings.ToLower(strings.TrimSpace(name))] = string(v)
	}
	return manifest, nil
}

func readAndUnmarshal(path string, target *manifestFile, unmarshal func([]byte, any) error) error {
	// #nosec G304 -- path comes from the operator's environment or working directory
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}
	if err := unmarshal(data, target); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return nil
}
