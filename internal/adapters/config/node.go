package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/setup-cpp/internal/core/ports"
)

// NodeID is the unique identifier for the config loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			loader, err := New()
			if err != nil {
				return nil, err
			}
			return loader, nil
		},
	})
}
