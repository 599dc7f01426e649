package domain

import "path/filepath"

const (
	// AppDirName is the directory created under the temp root for downloads.
	AppDirName = "setup-cpp"

	// ToolCacheDirName is the fallback tool cache directory under the temp root.
	ToolCacheDirName = "tool-cache"

	// CompleteMarkerSuffix marks a fully written cache entry.
	CompleteMarkerSuffix = ".complete"

	// JournalFileName is the default progress journal under the temp root.
	JournalFileName = "progress.jsonl"

	// ManifestFileName is the default tool manifest.
	ManifestFileName = "setup-cpp.yaml"

	// DefaultSetupDirName is the default install root under the home directory.
	DefaultSetupDirName = "setup_cpp"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission for cached executables (rwxr-xr-x).
	ExecPerm = 0o755
)

// DownloadRoot returns the directory holding extraction directories for a temp root.
func DownloadRoot(tempDir string) string {
	return filepath.Join(tempDir, AppDirName)
}

// DefaultToolCacheRoot returns the fallback tool cache root for a temp root.
func DefaultToolCacheRoot(tempDir string) string {
	return filepath.Join(tempDir, AppDirName, ToolCacheDirName)
}

// CacheEntryPath returns <root>/<tool>/<version>/<arch>.
func CacheEntryPath(root, tool, version, arch string) string {
	return filepath.Join(root, tool, version, arch)
}

// CacheMarkerPath returns <root>/<tool>/<version>/<arch>.complete.
func CacheMarkerPath(root, tool, version, arch string) string {
	return filepath.Join(root, tool, version, arch+CompleteMarkerSuffix)
}
