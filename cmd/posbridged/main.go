package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pos-bridge-backend/config"
	"pos-bridge-backend/internal/api"
	"pos-bridge-backend/internal/bluetooth"
	"pos-bridge-backend/internal/bridge"
	"pos-bridge-backend/internal/db"
	"pos-bridge-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "pos-bridge ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Printf("could not load configuration from %s, using defaults: %v", configPath, err)
		cfg = config.Default()
	} else {
		logger.Printf("configuration loaded successfully from %s", configPath)
	}

	// Initialize the preference database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)

	// Wire the Bluetooth stack and the print orchestrator
	adapter := bluetooth.NewAdapter()
	if !adapter.Available() {
		logger.Println("warning: no Bluetooth stack found, printing will be unavailable")
	}
	manager := bluetooth.NewManager(adapter, appStore, cfg.Bluetooth)
	orchestrator := bridge.NewOrchestrator(manager, cfg.Bluetooth)
	orchestrator.Start(ctx)

	// Initialize router
	handler := api.NewHandler(manager, orchestrator)
	router := api.NewRouter(handler, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	manager.StopScan()
	if err := manager.Disconnect(); err != nil {
		logger.Printf("disconnecting printer: %v", err)
	}

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
