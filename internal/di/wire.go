//go:build wireinject
// +build wireinject

package di

import (
	"StockLens/pkg/config"
	"StockLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideCache,
		ProvideDiagnosticsProducer,

		// Upstream sources and use case
		ProvideSources,
		ProvideLookupService,
		ProvideLimiter,

		// HTTP surface
		ProvideHandler,

		// Application
		ProvideApp,
	)
	return &server.App{}, nil
}
