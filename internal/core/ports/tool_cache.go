// Package ports defines the core interfaces for the application.
package ports

// ToolCache is the persistent store of installed tools keyed by name, version and architecture.
//
//go:generate go run go.uber.org/mock/mockgen -source=tool_cache.go -destination=mocks/mock_tool_cache.go -package=mocks
type ToolCache interface {
	// Find returns the cached installation directory, or "" when there is none.
	// A miss is not an error.
	Find(tool, version, arch string) (string, error)

	// CacheFile copies a single file into the cache as targetName and returns
	// the final cached path.
	CacheFile(sourceFile, targetName, tool, version, arch string) (string, error)

	// CacheDir copies a directory tree into the cache and returns the cached directory.
	CacheDir(sourceDir, tool, version, arch string) (string, error)
}
