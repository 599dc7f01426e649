// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/setup-cpp/internal/adapters/config"
	_ "go.trai.ch/setup-cpp/internal/adapters/fetch"
	_ "go.trai.ch/setup-cpp/internal/adapters/logger"
	_ "go.trai.ch/setup-cpp/internal/adapters/pathenv"
	_ "go.trai.ch/setup-cpp/internal/adapters/shell"
	_ "go.trai.ch/setup-cpp/internal/adapters/telemetry"
	_ "go.trai.ch/setup-cpp/internal/adapters/toolcache"
	// Register app and engine nodes.
	_ "go.trai.ch/setup-cpp/internal/app"
	_ "go.trai.ch/setup-cpp/internal/engine/installer"
)
