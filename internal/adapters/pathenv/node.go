package pathenv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/setup-cpp/internal/adapters/config"
	"go.trai.ch/setup-cpp/internal/core/ports"
)

// NodeID is the unique identifier for the path registrar Graft node.
const NodeID graft.ID = "adapter.path_registrar"

func init() {
	graft.Register(graft.Node[ports.PathRegistrar]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.PathRegistrar, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			return NewRegistrar(loader.Settings().PathFile), nil
		},
	})
}
