package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shangobashi/NoteSquared-C/internal/config"
	"github.com/shangobashi/NoteSquared-C/internal/db"
	"github.com/shangobashi/NoteSquared-C/internal/logger"
	"github.com/shangobashi/NoteSquared-C/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()

	log.Info().Str("version", cfg.App.Version).Msg("Starting sweeper")

	// Initialize database
	database, err := db.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	// Initialize repository
	repo := db.NewRepository(database)

	// Create sweeper
	sweeper := worker.NewSweeper(cfg, repo)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start sweeper
	go func() {
		if err := sweeper.Start(ctx); err != nil && err != context.Canceled {
			log.Fatal().Err(err).Msg("Sweeper failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down sweeper...")

	// Cancel context to stop sweeper
	cancel()
	sweeper.Stop()

	log.Info().Msg("Sweeper exited")
}
