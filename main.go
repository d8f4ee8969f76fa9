// main.go
package main

import (
	"context"
	"log"

	"screenvault/cmd"
	"screenvault/internal/data/repository"
	"screenvault/internal/notify"
	"screenvault/internal/storage"
	"screenvault/internal/wire"
	"screenvault/pkg/database"
	"screenvault/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Apply schema migrations before opening the pool
	if err := database.RunMigrations(context.Background(), config.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// OTP delivery: real SMTP when configured, log sink otherwise
	var notifier notify.Notifier
	if config.Email.Host != "" {
		notifier = notify.NewSMTPNotifier(config.Email, logger)
	} else {
		logger.Warn("SMTP not configured, OTP codes will be logged instead")
		notifier = notify.NewLogNotifier(logger)
	}

	// Object storage for film assets
	store, err := storage.NewS3Store(context.Background(), config.S3)
	if err != nil {
		logger.Fatal("Failed to init object storage", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger, notifier, store)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
