package ports

import "go.trai.ch/setup-cpp/internal/core/domain"

// ConfigLoader exposes the configuration resolved at startup.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Settings returns the runtime settings, manifest overrides applied.
	Settings() domain.Settings

	// Manifest returns the discovered tool manifest, or nil when there is none.
	Manifest() *domain.Manifest
}
