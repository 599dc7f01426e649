package ports

import (
	"context"

	"go.trai.ch/setup-cpp/internal/core/domain"
)

// Fetcher downloads and unpacks archives.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch makes the contents of the archive at url available in targetDir.
	// If targetDir already exists nothing is fetched and fetched is false.
	Fetch(ctx context.Context, url, targetDir string, format domain.ArchiveFormat) (fetched bool, err error)
}
