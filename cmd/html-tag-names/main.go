package main

import (
	"fmt"
	"os"

	"html-tag-names/internal/app"
	"html-tag-names/internal/config"
	"html-tag-names/internal/fetcher"
	"html-tag-names/internal/observability"
	"html-tag-names/internal/storage"
	"html-tag-names/internal/storage/jsonfile"
	"html-tag-names/internal/storage/mssql"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Без аргументов работаем на значениях по умолчанию
	cfg := config.Default()
	if len(os.Args) > 1 {
		loaded, err := config.LoadConfig(os.Args[1])
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	logger := observability.NewLogger(
		cfg.Observability.LogPath,
		cfg.Observability.LogLevel,
		cfg.Observability.LogMaxSizeMB,
		cfg.Observability.LogMaxBackups,
	)
	defer func() { _ = logger.Close() }()

	ctx, cancel := app.GracefulShutdown(logger)
	defer cancel()

	f := fetcher.NewFetcher(cfg, logger)

	var renderer app.PageFetcher
	if cfg.Rod.Enabled {
		r := fetcher.NewRenderer(cfg, logger)
		defer func() {
			if err := r.Close(); err != nil {
				logger.Warn("Failed to close browser", "error", err.Error())
			}
		}()
		renderer = r
	}

	store := jsonfile.NewRepository(cfg.Output.Path, logger)

	var mirror storage.Repository
	if cfg.Storage.Driver == "mssql" {
		repo, err := mssql.NewRepository(cfg.Storage.DSN, cfg.Storage.CommandTimeoutMS, logger)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer func() { _ = repo.Close() }()
		mirror = repo
	}

	stats, err := app.NewOrchestrator(cfg, logger, f, renderer, store, mirror).Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("Done",
		"seeded", stats.Seeded,
		"added", stats.Added,
		"total", stats.Total,
		"output", cfg.Output.Path,
	)
	return nil
}
