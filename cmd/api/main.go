package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/spellspire/internal/config"
	"github.com/jwebster45206/spellspire/internal/handlers"
	"github.com/jwebster45206/spellspire/internal/logger"
	"github.com/jwebster45206/spellspire/internal/middleware"
	"github.com/jwebster45206/spellspire/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Spellspire API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"data_dir", cfg.DataDir)

	store := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	profileHandler := handlers.NewProfileHandler(store, log)
	mux.Handle("/v1/profiles", profileHandler)
	mux.Handle("/v1/profiles/", profileHandler)

	packHandler := handlers.NewPackHandler(store, log)
	mux.Handle("/v1/packs", packHandler)
	mux.Handle("/v1/packs/", packHandler)

	runHandler := handlers.NewRunHandler(store, log)
	mux.Handle("/v1/runs", runHandler)
	mux.Handle("/v1/runs/", runHandler)

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
