package domain

import "strings"

// ArchiveFormat is the container format of a downloaded archive.
type ArchiveFormat string

const (
	// ArchiveZip is a zip file.
	ArchiveZip ArchiveFormat = "zip"
	// ArchiveTarGz is a gzip-compressed tarball.
	ArchiveTarGz ArchiveFormat = "tar.gz"
	// ArchiveTarXz is an xz-compressed tarball.
	ArchiveTarXz ArchiveFormat = "tar.xz"
)

// ArchiveFormatFromURL infers the archive format from the URL suffix.
func ArchiveFormatFromURL(url string) (ArchiveFormat, bool) {
	lower := strings.ToLower(url)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return ArchiveZip, true
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return ArchiveTarGz, true
	case strings.HasSuffix(lower, ".tar.xz"):
		return ArchiveTarXz, true
	default:
		return "", false
	}
}
