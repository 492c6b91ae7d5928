package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/meeting-flow/internal/artifact"
	"github.com/nguyentantai21042004/meeting-flow/internal/config"
	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/media"
	"github.com/nguyentantai21042004/meeting-flow/internal/notes"
	"github.com/nguyentantai21042004/meeting-flow/internal/pipeline"
	"github.com/nguyentantai21042004/meeting-flow/internal/server"
	"github.com/nguyentantai21042004/meeting-flow/internal/store"
	"github.com/nguyentantai21042004/meeting-flow/internal/transcriber"
	"github.com/nguyentantai21042004/meeting-flow/internal/watcher"
	"github.com/nguyentantai21042004/meeting-flow/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Load .env if present, then configuration
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, falling back to environment variables")
	}
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Transcription Service")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcription model: %s", cfg.OpenAI.TranscribeModel)
	log.Info(ctx, "Notes provider: %s", cfg.Notes.Provider)
	log.Info(ctx, "Configuration loaded successfully")

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Connect the result store
	connectCtx, cancelConnect := context.WithTimeout(ctx, 10*time.Second)
	st, err := store.NewMongo(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection, log)
	cancelConnect()
	if err != nil {
		log.Error(ctx, "Failed to connect result store: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	exec := executor.New()
	med := media.New(cfg.Paths.Uploads, exec, log)
	trans := transcriber.New(cfg.OpenAI.APIKey, cfg.OpenAI.TranscribeModel, log)
	gen := newGenerator(cfg, log)
	art := artifact.New(cfg.Paths.Results, true, log)

	pipe := pipeline.New(med, trans, gen, st, art, log)
	srv := server.New(pipe, st, log)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)

	// Optional drop-folder ingestion feeding the same pipeline
	if cfg.Watch.Enabled {
		w, err := watcher.New(cfg.Watch.Input, dropHandler(pipe, log), log, cfg.Watch.MaxConcurrent)
		if err != nil {
			log.Error(ctx, "Failed to create watcher: %v", err)
			os.Exit(1)
		}
		defer w.Stop()

		go func() {
			if err := w.Start(ctx); err != nil && err != context.Canceled {
				errChan <- err
			}
		}()
		log.Info(ctx, "Drop-folder ingestion enabled: %s", cfg.Watch.Input)
	}

	// Start HTTP server
	go func() {
		log.Info(ctx, "HTTP server listening on %s", cfg.Server.Addr)
		if err := srv.Listen(cfg.Server.Addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Warn(ctx, "HTTP shutdown: %v", err)
	}
	disconnectCtx, cancelDisconnect := context.WithTimeout(context.Background(), 5*time.Second)
	if err := st.Close(disconnectCtx); err != nil {
		log.Warn(ctx, "Store disconnect: %v", err)
	}
	cancelDisconnect()

	log.Info(ctx, "Meeting Transcription Service stopped")
}

// newGenerator selects the notes provider from config.
func newGenerator(cfg *config.Config, log logger.Logger) notes.Generator {
	if cfg.Notes.Provider == "gemini" {
		return notes.NewGemini(cfg.Notes.GeminiAPIKeys, cfg.Notes.GeminiModel, log)
	}
	return notes.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.NotesModel, log)
}

// dropHandler adapts a dropped file into a pipeline run. There is no HTTP
// response to deliver, so outcomes are only logged.
func dropHandler(pipe pipeline.Pipeline, log logger.Logger) watcher.EventHandler {
	return func(ctx context.Context, filePath string) error {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("read dropped file: %w", err)
		}

		out, err := pipe.Run(ctx, pipeline.Upload{
			Filename: filepath.Base(filePath),
			Data:     data,
		})
		if err != nil {
			return err
		}

		log.Info(ctx, "Processed dropped recording %s -> %s", filePath, out.ID)
		if err := os.Remove(filePath); err != nil {
			log.Warn(ctx, "Failed to remove dropped file %s: %v", filePath, err)
		}
		return nil
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Uploads,
		cfg.Paths.Results,
	}
	if cfg.Watch.Enabled {
		dirs = append(dirs, cfg.Watch.Input)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
