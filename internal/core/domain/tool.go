package domain

import (
	"path/filepath"

	"go.trai.ch/zerr"
)

// Tool names known to the dispatcher, in installation order.
const (
	ToolCmake   = "cmake"
	ToolNinja   = "ninja"
	ToolConan   = "conan"
	ToolMeson   = "meson"
	ToolLLVM    = "llvm"
	ToolDoxygen = "doxygen"
)

// ToolOrder is the canonical installation order.
var ToolOrder = []string{ToolCmake, ToolNinja, ToolConan, ToolMeson, ToolLLVM, ToolDoxygen}

// ToolSpec identifies a specific installable artifact.
type ToolSpec struct {
	Name     string
	Version  string
	Platform Platform
	Arch     string
}

// NewToolSpec builds a ToolSpec, resolving the OS identifier first so that an
// unsupported platform fails before anything touches the network.
func NewToolSpec(name, version, osID, arch string) (ToolSpec, error) {
	platform, err := ParsePlatform(osID)
	if err != nil {
		return ToolSpec{}, zerr.With(err, "tool", name)
	}
	return ToolSpec{
		Name:     name,
		Version:  version,
		Platform: platform,
		Arch:     arch,
	}, nil
}

// Executable returns the binary file name for the spec's platform.
func (s ToolSpec) Executable(base string) string {
	return base + s.Platform.ExeSuffix()
}

// CacheEntry is a materialized installation.
type CacheEntry struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Arch      string `json:"arch,omitzero"`
	Directory string `json:"directory"`
	// Cached reports whether the entry came from a cache hit.
	Cached bool `json:"cached,omitzero"`
}

// BinaryPath joins the entry directory with a binary name.
func (e CacheEntry) BinaryPath(name string) string {
	return filepath.Join(e.Directory, name)
}

// Request is a user's intent to install a tool at a version.
type Request struct {
	Tool    string
	Version string
}
