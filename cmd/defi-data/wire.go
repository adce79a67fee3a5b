//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"defi-data/internal/app"
	"defi-data/internal/collect"
	"defi-data/internal/provider"
)

// App holds application dependencies built by Wire.
type App struct {
	Config    *app.Config
	Provider  *provider.LlamaProvider
	Collector *collect.Collector
}

// InitializeApp builds App (Config + Provider + Collector) via Wire.
// Caller must call a.Provider.Close() when done.
func InitializeApp() (*App, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideProvider,
		app.ProvideCollector,
		wire.Struct(new(App), "Config", "Provider", "Collector"),
	)
	return nil, nil
}
