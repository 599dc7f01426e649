package domain

import (
	"path/filepath"
	"time"
)

const (
	// DefaultHTTPTimeout bounds a single archive download.
	DefaultHTTPTimeout = 10 * time.Minute

	// DefaultDownloadBaseURL hosts every release archive.
	DefaultDownloadBaseURL = "https://github.com"
)

// Settings is the resolved runtime configuration handed to every component.
// It replaces direct reads of the process environment.
type Settings struct {
	// TempDir is the scratch root; extraction directories live under DownloadRoot(TempDir).
	TempDir string
	// ToolCacheRoot is the persistent tool cache root.
	ToolCacheRoot string
	// SetupDir is the install root for tools not managed by the tool cache.
	SetupDir string
	// PathFile receives registered directories for later job steps. Empty disables it.
	PathFile string
	// OS is the runtime OS identifier, resolved by ParsePlatform.
	OS string
	// Arch is the tool cache architecture.
	Arch string
	// GroupOutput enables ::group:: markers for CI log folding.
	GroupOutput bool
	// HTTPTimeout bounds archive downloads.
	HTTPTimeout time.Duration
	// DownloadBaseURL prefixes every release download URL.
	DownloadBaseURL string
	// JournalFile receives the progress journal. Empty means the default under DownloadDir.
	JournalFile string
}

// DownloadDir returns the extraction root for these settings.
func (s Settings) DownloadDir() string {
	return DownloadRoot(s.TempDir)
}

// Journal returns the progress journal path for these settings.
func (s Settings) Journal() string {
	if s.JournalFile != "" {
		return s.JournalFile
	}
	return filepath.Join(s.DownloadDir(), JournalFileName)
}
