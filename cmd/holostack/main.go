// Command holostack hydrates a local Pokémon TCG card store from TCGdex.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SergioXp/holostack/internal/adapters/driven/catalog/tcgdex"
	"github.com/SergioXp/holostack/internal/adapters/driven/config/file"
	"github.com/SergioXp/holostack/internal/adapters/driven/storage/memory"
	"github.com/SergioXp/holostack/internal/adapters/driven/storage/sqlite"
	"github.com/SergioXp/holostack/internal/adapters/driving/cli"
	"github.com/SergioXp/holostack/internal/core/ports/driving"
	"github.com/SergioXp/holostack/internal/core/services"
	"github.com/SergioXp/holostack/internal/logger"
)

// version is set by the linker at release time.
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		logger.Error("loading config: %v", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		logger.Error("reading settings: %v", err)
		return err
	}

	store, err := sqlite.NewStore(settings.Storage.DataDir)
	if err != nil {
		logger.Error("opening card store: %v", err)
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("closing card store: %v", cerr)
		}
	}()

	catalog, err := tcgdex.NewClient(tcgdex.ConfigFromSettings(settings.Catalog))
	if err != nil {
		logger.Error("creating catalog client: %v", err)
		return fmt.Errorf("catalog client: %w", err)
	}

	batchSize := settings.Hydration.BatchSize
	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Hydration: services.NewHydrationService(catalog, store.CardStore(), store.TargetStore(), batchSize),
		Targets:   services.NewTargetService(store.TargetStore()),
		Settings:  settingsService,
		DryRun: func() driving.HydrationService {
			return services.NewHydrationService(catalog, memory.NewCardStore(), nil, batchSize)
		},
	})

	return cli.Execute(ctx)
}
