package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtroode/roster-server/database"
	"github.com/dtroode/roster-server/internal/cli"
	"github.com/dtroode/roster-server/internal/config"
	"github.com/dtroode/roster-server/internal/logger"
	"github.com/dtroode/roster-server/internal/model"
	"github.com/dtroode/roster-server/internal/repository"
	storage "github.com/dtroode/roster-server/internal/storage/minio"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	db, dialect, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "driver", cfg.Database.Driver, "error", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, dialect, logger); err != nil {
		logger.Fatal("failed to apply migrations", "error", err)
	}

	var opts []repository.Option
	if cfg.Database.FixedUpdates {
		opts = append(opts, repository.WithFixedUpdates())
	}

	var objectStorage model.Storage
	if cfg.Storage.Enabled {
		client, err := storage.NewFromConfig(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize storage client", "endpoint", cfg.Storage.Endpoint, "error", err)
		}
		objectStorage = client
	}

	app := cli.NewApp(db, dialect, logger, objectStorage, opts...)
	app.Build = cli.BuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit}

	if err := cli.NewRootCommand(app).ExecuteContext(ctx); err != nil {
		logger.Error("command failed", "error", err)
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}
