package domain

import "go.trai.ch/zerr"

var (
	// ErrUnsupportedPlatform is returned when the runtime OS has no vendor mapping.
	ErrUnsupportedPlatform = zerr.New("unsupported platform")

	// ErrUnknownTool is returned when a tool name has no registered installer.
	ErrUnknownTool = zerr.New("unknown tool")

	// ErrInvalidVersion is returned when a requested version cannot be parsed.
	ErrInvalidVersion = zerr.New("invalid tool version")

	// ErrDownloadFailed is returned on network failure, non-2xx responses or timeouts.
	ErrDownloadFailed = zerr.New("failed to download archive")

	// ErrExtractionFailed is returned when an archive is corrupt or has an unexpected layout.
	ErrExtractionFailed = zerr.New("failed to extract archive")

	// ErrBinaryNotFound is returned when the extracted tree does not contain the expected binary.
	ErrBinaryNotFound = zerr.New("binary not found after extraction")

	// ErrPathRegistration is returned when the search path mutation cannot be persisted.
	ErrPathRegistration = zerr.New("failed to register search path")

	// ErrCacheWrite is returned when a binary cannot be stored in the tool cache.
	ErrCacheWrite = zerr.New("failed to write tool cache")

	// ErrCacheUnavailable is returned when the tool cache cannot be read.
	ErrCacheUnavailable = zerr.New("tool cache unavailable")

	// ErrCommandFailed is returned when an external command exits with an error.
	ErrCommandFailed = zerr.New("command failed")

	// ErrConfigReadFailed is returned when the manifest file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the manifest file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigFormat is returned for manifest files that are neither YAML nor TOML.
	ErrUnsupportedConfigFormat = zerr.New("unsupported config file format")

	// ErrInvalidTransition is returned when an installation skips a workflow state.
	ErrInvalidTransition = zerr.New("invalid install state transition")

	// ErrSetupFailed wraps any failure of an install run.
	ErrSetupFailed = zerr.New("setup-cpp failed")
)
