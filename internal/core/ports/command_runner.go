package ports

import (
	"context"

	"go.trai.ch/setup-cpp/internal/core/domain"
)

// CommandRunner runs external processes such as pip and tar.
//
//go:generate go run go.uber.org/mock/mockgen -source=command_runner.go -destination=mocks/mock_command_runner.go -package=mocks
type CommandRunner interface {
	// Run executes cmd and returns its combined output.
	// A non-zero exit fails with domain.ErrCommandFailed.
	Run(ctx context.Context, cmd domain.Command) ([]byte, error)
}
