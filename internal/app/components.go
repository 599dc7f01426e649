package app

import "go.trai.ch/setup-cpp/internal/core/ports"

// Components holds what the command line needs from the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
}
