//go:build wireinject
// +build wireinject

package di

import (
	"StockVault/pkg/config"
	"StockVault/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCache,
		ProvideObjectStore,
		ProvideMarketSource,

		// Repositories
		ProvideSymbolFiles,

		// Engine components
		ProvideCalculator,
		ProvideMerger,

		// Use cases
		ProvideCatalogManager,
		ProvidePipeline,
		ProvideReader,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
