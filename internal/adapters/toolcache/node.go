package toolcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/setup-cpp/internal/adapters/config"
	"go.trai.ch/setup-cpp/internal/core/ports"
)

// NodeID is the unique identifier for the tool cache Graft node.
const NodeID graft.ID = "adapter.tool_cache"

func init() {
	graft.Register(graft.Node[ports.ToolCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.ToolCache, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(loader.Settings().ToolCacheRoot), nil
		},
	})
}
