package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/setup-cpp/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/setup-cpp/internal/adapters/fetch"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/setup-cpp/internal/adapters/pathenv"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/setup-cpp/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/setup-cpp/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/setup-cpp/internal/adapters/toolcache" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/setup-cpp/internal/core/ports"
)

// NodeID is the unique identifier for the installer dispatcher Graft node.
const NodeID graft.ID = "engine.installer"

func init() {
	graft.Register(graft.Node[*Dispatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			toolcache.NodeID,
			fetch.NodeID,
			pathenv.NodeID,
			shell.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Dispatcher, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			cache, err := graft.Dep[ports.ToolCache](ctx)
			if err != nil {
				return nil, err
			}

			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}

			paths, err := graft.Dep[ports.PathRegistrar](ctx)
			if err != nil {
				return nil, err
			}

			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader.Settings(), cache, fetcher, paths, runner, tracer), nil
		},
	})
}
