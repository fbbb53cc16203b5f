//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"posterd/internal"
	"posterd/internal/catalog"
	"posterd/internal/controllers"
	"posterd/internal/gateway"
	"posterd/internal/ledger"
	"posterd/internal/providers"
	"posterd/internal/services"
	"posterd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		ledger.NewLedger,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		catalog.NewCatalog,
		gateway.NewGateway,
		services.NewPosterService,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
