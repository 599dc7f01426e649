package fetch

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/zerr"
)

var errEntryEscapes = zerr.New("archive entry escapes target directory")

// entryName validates an archive entry name and returns it relative to the
// extraction root.
func entryName(name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || filepath.VolumeName(cleaned) != "" || escapesRoot(cleaned) {
		return "", zerr.With(errEntryEscapes, "entry", name)
	}
	return cleaned, nil
}

func escapesRoot(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// openRoot confines every write below dest, so symlinks planted by earlier
// entries cannot redirect later ones outside it.
func openRoot(dest string) (*os.Root, error) {
	if err := os.MkdirAll(dest, domain.DirPerm); err != nil {
		return nil, err
	}
	return os.OpenRoot(dest)
}

func confined(err error, name string) error {
	if err == nil {
		return nil
	}
	return zerr.With(err, "entry", name)
}

func extractZip(archive, dest string) error {
	reader, err := zip.OpenReader(archive)
	if err != nil {
		return zerr.Wrap(err, "failed to open zip")
	}
	defer func() { _ = reader.Close() }()

	root, err := openRoot(dest)
	if err != nil {
		return err
	}
	defer func() { _ = root.Close() }()

	for _, file := range reader.File {
		name, err := entryName(file.Name)
		if err != nil {
			return err
		}

		mode := file.Mode()
		switch {
		case mode.IsDir():
			if err := mkdirAll(root, name); err != nil {
				return confined(err, file.Name)
			}
		case mode.IsRegular():
			if err := writeZipEntry(root, file, name); err != nil {
				return err
			}
		default:
			// Vendor zips carry no links.
		}
	}
	return nil
}

func writeZipEntry(root *os.Root, file *zip.File, name string) error {
	rc, err := file.Open()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open zip entry"), "entry", file.Name)
	}
	defer func() { _ = rc.Close() }()
	return confined(writeFile(root, name, rc, file.Mode()), file.Name)
}

func extractTarGz(archive, dest string) error {
	//nolint:gosec // archive is a temp file created by the fetcher
	file, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return zerr.Wrap(err, "failed to read gzip stream")
	}
	defer func() { _ = gz.Close() }()

	return untar(gz, dest)
}

func untar(r io.Reader, dest string) error {
	root, err := openRoot(dest)
	if err != nil {
		return err
	}
	defer func() { _ = root.Close() }()

	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return zerr.Wrap(err, "failed to read tar header")
		}

		name, err := entryName(header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			err = mkdirAll(root, name)
		case tar.TypeReg:
			//nolint:gosec // tar modes fit in fs.FileMode
			err = writeFile(root, name, tr, fs.FileMode(header.Mode))
		case tar.TypeSymlink:
			err = writeSymlink(root, name, header.Linkname)
		case tar.TypeLink:
			var source string
			if source, err = entryName(header.Linkname); err != nil {
				return err
			}
			if err = mkdirParent(root, name); err == nil {
				err = root.Link(source, name)
			}
		default:
			// Devices, fifos and pax records carry nothing to install.
		}
		if err != nil {
			return confined(err, header.Name)
		}
	}
}

// writeSymlink creates name pointing at link. The link text itself must stay
// below the root; os.Root does not validate symlink targets.
func writeSymlink(root *os.Root, name, link string) error {
	if filepath.IsAbs(link) {
		return zerr.With(errEntryEscapes, "link", link)
	}
	if escapesRoot(filepath.Join(filepath.Dir(name), filepath.FromSlash(link))) {
		return zerr.With(errEntryEscapes, "link", link)
	}
	if err := mkdirParent(root, name); err != nil {
		return err
	}
	return root.Symlink(link, name)
}

func mkdirParent(root *os.Root, name string) error {
	return mkdirAll(root, filepath.Dir(name))
}

func mkdirAll(root *os.Root, dir string) error {
	if dir == "." {
		return nil
	}
	return root.MkdirAll(dir, domain.DirPerm)
}

func writeFile(root *os.Root, name string, r io.Reader, mode fs.FileMode) error {
	if err := mkdirParent(root, name); err != nil {
		return err
	}

	perm := mode.Perm() | 0o600
	out, err := root.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
