// Package fetch downloads release archives and extracts them into
// content-keyed directories.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.trai.ch/setup-cpp/internal/build"
	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/setup-cpp/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.Fetcher = (*Fetcher)(nil)

// Fetcher implements ports.Fetcher over HTTP.
type Fetcher struct {
	client *http.Client
	runner ports.CommandRunner
	group  singleflight.Group
}

// NewClient returns an HTTP client with its own pooled transport, traced
// with otelhttp and bounded by timeout.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(cleanhttp.DefaultPooledTransport()),
	}
}

// NewFetcher creates a Fetcher. runner extracts tar.xz archives through the
// system tar.
func NewFetcher(client *http.Client, runner ports.CommandRunner) *Fetcher {
	return &Fetcher{
		client: client,
		runner: runner,
	}
}

// Fetch makes sure targetDir holds the extracted archive at url.
// An existing targetDir is reused without touching the network.
// Concurrent calls for the same targetDir share one download.
func (f *Fetcher) Fetch(ctx context.Context, url, targetDir string, format domain.ArchiveFormat) (bool, error) {
	exists, err := dirExists(targetDir)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	v, err, _ := f.group.Do(targetDir, func() (any, error) {
		exists, err := dirExists(targetDir)
		if err != nil {
			return false, err
		}
		if exists {
			return false, nil
		}
		if err := f.fetch(ctx, url, targetDir, format); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}
	fetched, _ := v.(bool)
	return fetched, nil
}

func (f *Fetcher) fetch(ctx context.Context, url, targetDir string, format domain.ArchiveFormat) error {
	parent := filepath.Dir(targetDir)
	if err := os.MkdirAll(parent, domain.DirPerm); err != nil {
		return downloadFailed(err, url)
	}

	progress(ctx, "downloading %s\n", url)
	archive, err := f.download(ctx, url, parent)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(archive) }()

	staging, err := os.MkdirTemp(parent, "."+filepath.Base(targetDir)+"-")
	if err != nil {
		return extractionFailed(err, url, targetDir)
	}

	progress(ctx, "extracting %s\n", filepath.Base(url))
	if err := f.extract(ctx, format, archive, staging); err != nil {
		_ = os.RemoveAll(staging)
		return extractionFailed(err, url, targetDir)
	}

	if err := os.Rename(staging, targetDir); err != nil {
		_ = os.RemoveAll(staging)
		return extractionFailed(err, url, targetDir)
	}
	return nil
}

// download streams url into a temporary file under dir and returns its path.
func (f *Fetcher) download(ctx context.Context, url, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", downloadFailed(err, url)
	}
	req.Header.Set("User-Agent", "setup-cpp/"+build.Version)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", downloadFailed(err, url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := zerr.With(downloadFailed(fmt.Errorf("unexpected status %s", resp.Status), url), "status", resp.StatusCode)
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", downloadFailed(err, url)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", downloadFailed(err, url)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", downloadFailed(err, url)
	}
	return tmpPath, nil
}

func (f *Fetcher) extract(ctx context.Context, format domain.ArchiveFormat, archive, dest string) error {
	switch format {
	case domain.ArchiveZip:
		return extractZip(archive, dest)
	case domain.ArchiveTarGz:
		return extractTarGz(archive, dest)
	case domain.ArchiveTarXz:
		return f.extractTarXz(ctx, archive, dest)
	default:
		return zerr.With(zerr.New("unsupported archive format"), "format", string(format))
	}
}

// extractTarXz shells out to tar, which handles xz without a Go decoder.
func (f *Fetcher) extractTarXz(ctx context.Context, archive, dest string) error {
	_, err := f.runner.Run(ctx, domain.Command{
		Name: "tar",
		Args: []string{"-xJf", archive, "-C", dest},
	})
	return err
}

func progress(ctx context.Context, format string, args ...any) {
	if span, ok := ports.SpanFromContext(ctx); ok {
		_, _ = fmt.Fprintf(span, format, args...)
	}
}

func dirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrExtractionFailed.Error()), "path", path)
	}
	return info.IsDir(), nil
}

func downloadFailed(err error, url string) error {
	return zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
}

func extractionFailed(err error, url, target string) error {
	wrapped := zerr.With(zerr.Wrap(err, domain.ErrExtractionFailed.Error()), "url", url)
	return zerr.With(wrapped, "path", target)
}
