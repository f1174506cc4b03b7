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
	"github.com/shangobashi/NoteSquared-C/internal/pipeline"
	"github.com/shangobashi/NoteSquared-C/internal/queue"
	"github.com/shangobashi/NoteSquared-C/internal/storage"
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

	log.Info().Str("version", cfg.App.Version).Msg("Starting pipeline worker")

	// Initialize database
	database, err := db.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	// Initialize repository
	repo := db.NewRepository(database)

	// Initialize Redis client
	redisClient, err := queue.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Initialize object storage
	store, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}

	// Wire the pipeline stages
	transcriber := pipeline.NewTranscriber(cfg, store, log)
	extractor := pipeline.NewDemoExtractor()
	generator := pipeline.NewDemoGenerator()
	orchestrator := pipeline.NewOrchestrator(repo, transcriber, extractor, generator, log)

	// Create pipeline worker
	pipelineWorker := worker.NewPipelineWorker(cfg, orchestrator, redisClient)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start worker
	go func() {
		if err := pipelineWorker.Start(ctx); err != nil && err != context.Canceled {
			log.Fatal().Err(err).Msg("Pipeline worker failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down pipeline worker...")

	// Cancel context to stop worker
	cancel()
	pipelineWorker.Stop()

	log.Info().Msg("Pipeline worker exited")
}
