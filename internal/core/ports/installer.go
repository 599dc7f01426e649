package ports

import (
	"context"

	"go.trai.ch/setup-cpp/internal/core/domain"
)

// Installer installs one tool.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Name returns the tool name the installer handles.
	Name() string

	// Install makes the tool described by spec available on the search path.
	Install(ctx context.Context, spec domain.ToolSpec) (*domain.CacheEntry, error)
}
