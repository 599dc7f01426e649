package fetch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/setup-cpp/internal/adapters/config"
	"go.trai.ch/setup-cpp/internal/adapters/shell"
	"go.trai.ch/setup-cpp/internal/core/ports"
)

// NodeID is the unique identifier for the fetcher Graft node.
const NodeID graft.ID = "adapter.fetcher"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, shell.NodeID},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewFetcher(NewClient(loader.Settings().HTTPTimeout), runner), nil
		},
	})
}
