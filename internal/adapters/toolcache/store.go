// Package toolcache implements the persistent tool cache laid out as
// <root>/<tool>/<version>/<arch>/ with a <arch>.complete marker.
package toolcache

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/setup-cpp/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ToolCache = (*Store)(nil)

// Store implements ports.ToolCache on the local filesystem.
type Store struct {
	root string
}

// NewStore creates a Store rooted at root.
func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Find returns the cached directory for the entry, or "" on a miss.
// An entry counts only once its completion marker exists.
func (s *Store) Find(tool, version, arch string) (string, error) {
	if tool == "" || version == "" {
		return "", nil
	}

	dir := domain.CacheEntryPath(s.root, tool, version, arch)
	marker := domain.CacheMarkerPath(s.root, tool, version, arch)

	for _, p := range []string{dir, marker} {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", nil
			}
			return "", s.unavailable(err, tool, version)
		}
	}
	return dir, nil
}

// CacheFile copies a single file into the entry as targetName.
// The cached copy is always executable.
func (s *Store) CacheFile(sourceFile, targetName, tool, version, arch string) (string, error) {
	info, err := os.Stat(sourceFile)
	if err != nil {
		return "", s.writeFailed(err, tool, version, sourceFile)
	}
	if info.IsDir() {
		return "", s.writeFailed(zerr.New("source is a directory"), tool, version, sourceFile)
	}

	return s.commit(tool, version, arch, func(staging string) error {
		return copyFile(sourceFile, filepath.Join(staging, targetName), info.Mode()|domain.ExecPerm)
	})
}

// CacheDir copies a directory tree into the entry.
func (s *Store) CacheDir(sourceDir, tool, version, arch string) (string, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return "", s.writeFailed(err, tool, version, sourceDir)
	}
	if !info.IsDir() {
		return "", s.writeFailed(zerr.New("source is not a directory"), tool, version, sourceDir)
	}

	return s.commit(tool, version, arch, func(staging string) error {
		return copyTree(sourceDir, staging)
	})
}

// commit fills a staging directory, swaps it into place and writes the
// marker last. The previous entry, if any, is replaced.
func (s *Store) commit(tool, version, arch string, fill func(staging string) error) (string, error) {
	versionDir := filepath.Join(s.root, tool, version)
	if err := os.MkdirAll(versionDir, domain.DirPerm); err != nil {
		return "", s.writeFailed(err, tool, version, versionDir)
	}

	staging, err := os.MkdirTemp(versionDir, "."+arch+"-")
	if err != nil {
		return "", s.writeFailed(err, tool, version, versionDir)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	if err := fill(staging); err != nil {
		return "", s.writeFailed(err, tool, version, staging)
	}

	dest := domain.CacheEntryPath(s.root, tool, version, arch)
	marker := domain.CacheMarkerPath(s.root, tool, version, arch)

	if err := os.Remove(marker); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", s.writeFailed(err, tool, version, marker)
	}
	if err := os.RemoveAll(dest); err != nil {
		return "", s.writeFailed(err, tool, version, dest)
	}
	if err := os.Rename(staging, dest); err != nil {
		return "", s.writeFailed(err, tool, version, dest)
	}
	if err := os.WriteFile(marker, nil, domain.FilePerm); err != nil {
		return "", s.writeFailed(err, tool, version, marker)
	}
	return dest, nil
}

func (s *Store) unavailable(err error, tool, version string) error {
	wrapped := zerr.Wrap(err, domain.ErrCacheUnavailable.Error())
	wrapped = zerr.With(wrapped, "tool", tool)
	return zerr.With(wrapped, "version", version)
}

func (s *Store) writeFailed(err error, tool, version, path string) error {
	wrapped := zerr.Wrap(err, domain.ErrCacheWrite.Error())
	wrapped = zerr.With(wrapped, "tool", tool)
	wrapped = zerr.With(wrapped, "version", version)
	return zerr.With(wrapped, "path", path)
}

func copyFile(src, dst string, mode fs.FileMode) error {
	//nolint:gosec // Path is provided by the installer workflow
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	//nolint:gosec // Path is inside the staging directory
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm()|0o200)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			return os.MkdirAll(target, domain.DirPerm)
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			if filepath.IsAbs(link) || escapes(rel, link) {
				return zerr.With(zerr.New("symlink escapes source tree"), "path", path)
			}
			return os.Symlink(link, target)
		default:
			info, err := d.Info()
			if err != nil {
				return err
			}
			return copyFile(path, target, info.Mode())
		}
	})
}

// escapes reports whether a relative link placed at rel points outside the tree.
func escapes(rel, link string) bool {
	resolved := filepath.Join(filepath.Dir(rel), link)
	return resolved == ".." || strings.HasPrefix(resolved, ".."+string(filepath.Separator))
}
