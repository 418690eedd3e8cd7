package main

import (
	"context"
	"fmt"

	"github.com/farmassist/farm-sync/internal/adapter"
	"github.com/farmassist/farm-sync/internal/config"
	"github.com/farmassist/farm-sync/internal/handler"
	"github.com/farmassist/farm-sync/internal/logger"
	"github.com/farmassist/farm-sync/internal/server"
	"github.com/farmassist/farm-sync/internal/service"
	"github.com/farmassist/farm-sync/internal/store"
	"github.com/farmassist/farm-sync/internal/workers"
	"github.com/farmassist/farm-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("farm-sync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error running database migrations")
	}

	storages := store.NewStorages(db, log)

	domain, err := adapter.NewHTTPDomainDataAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating domain data adapter")
	}
	notifier, err := adapter.NewHTTPNotifier(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating notifier adapter")
	}

	services := service.NewServices(storages, domain, notifier, cfg.Sync, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(storages.ConflictRepository, services.Locks, cfg.Workers, log).Run()

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	version := info.BuildVersion()
	if version == "" {
		version = "N/A"
	}

	date := info.BuildDate()
	if date == "" {
		date = "N/A"
	}

	commit := info.BuildCommit()
	if commit == "" {
		commit = "N/A"
	}

	fmt.Printf("Build version: %s\n", version)
	fmt.Printf("Build date: %s\n", date)
	fmt.Printf("Build commit: %s\n", commit)
}
