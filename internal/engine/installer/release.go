package installer

import (
	"strings"

	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/zerr"
)

// releaseURL builds <base>/<repo>/releases/download/<tag>/<asset>.
func releaseURL(settings domain.Settings, repo, tag, asset string) string {
	base := settings.DownloadBaseURL
	if base == "" {
		base = domain.DefaultDownloadBaseURL
	}
	return strings.TrimSuffix(base, "/") + "/" + repo + "/releases/download/" + tag + "/" + asset
}

// releaseAsset returns the release URL of asset and the archive format its
// name implies.
func releaseAsset(settings domain.Settings, repo, tag, asset string) (string, domain.ArchiveFormat, error) {
	format, ok := domain.ArchiveFormatFromURL(asset)
	if !ok {
		return "", "", zerr.With(zerr.New("unrecognized archive format"), "asset", asset)
	}
	return releaseURL(settings, repo, tag, asset), format, nil
}
