package main

import (
	"os"

	"github.com/joho/godotenv"

	"datascope/adapters/charts"
	"datascope/internal"
	"datascope/internal/config"
	"datascope/internal/debugserver"
	"datascope/internal/store"
	"datascope/ui"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	log := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		log.Error("config: %v", err)
		os.Exit(1)
	}

	datasets, err := store.New(cfg.Store.MaxDatasets, cfg.Store.MaxDatasetBytes, log)
	if err != nil {
		log.Error("store: %v", err)
		os.Exit(1)
	}

	renderer := charts.NewRenderer(cfg.Charts.Width, cfg.Charts.Height, cfg.Charts.HistogramBins)

	if cfg.Debug.Enabled {
		debugserver.Start(cfg.Debug.Port, log)
	}

	server := ui.NewServer(datasets, renderer, cfg, log)
	if err := server.Run(); err != nil {
		log.Error("server: %v", err)
		os.Exit(1)
	}
}
