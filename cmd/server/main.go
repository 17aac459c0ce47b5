package main

import (
	"fmt"
	"log/slog"

	log "github.com/charmbracelet/log"

	"github.com/paystreet/fx/infra/initializer"
	"github.com/paystreet/fx/pkg/config"
	"github.com/paystreet/fx/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(slog.Default())
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	app := webapi.New(deps.FxService, deps.Provider, deps.Logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info(
		"Starting server",
		"address", addr,
		"cache_ttl", cfg.Exchange.CacheTTL,
		"provider_url", cfg.Exchange.ApiUrl,
	)

	return app.Listen(addr)
}
