// Package main implements the puzzle training server with RESTful API,
// user authentication, and engine-backed game analysis.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdamHerman69/backranq-sub002/internal/config"
	"github.com/AdamHerman69/backranq-sub002/internal/engine"
	"github.com/AdamHerman69/backranq-sub002/internal/http"
	"github.com/AdamHerman69/backranq-sub002/internal/service"
	"github.com/AdamHerman69/backranq-sub002/internal/storage"
)

const gracefulShutdownTimeout = time.Second * 5

func main() {
	// Command-line flags override file and environment configuration
	var (
		configPath  = flag.String("config", "", "Path to YAML config file")
		apiHost     = flag.String("api-host", "", "API server host")
		apiPort     = flag.Int("api-port", 0, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, fixed JWT secret)")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file (disables persistence if empty)")
		enginePath  = flag.String("engine-path", "", "Path to UCI engine binary")
		workers     = flag.Int("engine-workers", 0, "Engine worker count")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *apiHost != "" {
		cfg.Server.Host = *apiHost
	}
	if *apiPort != 0 {
		cfg.Server.Port = *apiPort
	}
	if *dev {
		cfg.Server.Dev = true
	}
	if *storagePath != "" {
		cfg.Storage.Path = *storagePath
	}
	if *enginePath != "" {
		cfg.Engine.Path = *enginePath
	}
	if *workers != 0 {
		cfg.Engine.Workers = *workers
	}

	// 1. Initialize storage
	if cfg.Storage.Path == "" {
		log.Fatal("Storage is required; set -storage-path or BACKRANQ_STORAGE_PATH")
	}
	log.Printf("Initializing persistent storage at: %s", cfg.Storage.Path)
	store, err := storage.NewStore(cfg.Storage.Path, cfg.Server.Dev)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	if err := store.InitDB(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// JWT secret management
	var jwtSecret []byte
	if cfg.Server.Dev {
		// Fixed secret in dev mode for testing consistency
		jwtSecret = []byte("dev-secret-minimum-32-characters-long")
		log.Printf("Using fixed JWT secret (dev mode)")
	} else {
		jwtSecret = make([]byte, 32)
		if _, err := rand.Read(jwtSecret); err != nil {
			log.Fatalf("Failed to generate JWT secret: %v", err)
		}
		log.Printf("JWT secret generated (sessions valid until restart)")
	}

	// 2. Initialize the engine pool
	log.Printf("Starting %d engine workers (%s)", cfg.Engine.Workers, cfg.Engine.Path)
	pool := engine.NewPool(cfg.Engine.Path, cfg.Engine.Workers)

	// 3. Initialize the service
	svc := service.New(store, jwtSecret, pool, cfg.Analysis)

	// Start cleanup job for expired users/sessions
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	go svc.RunCleanupJob(cleanupCtx, service.CleanupJobInterval)

	// 4. Initialize the Fiber app
	app := http.NewFiberApp(svc, cfg.Server.Dev)

	apiAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	go func() {
		log.Printf("Backranq Training Server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		log.Printf("API Version: v1")
		log.Printf("Authentication: Enabled (JWT)")
		if cfg.Server.Dev {
			log.Printf("Rate Limit: 20 requests/second per IP (DEV MODE)")
		} else {
			log.Printf("Rate Limit: 10 requests/second per IP")
		}
		log.Printf("Storage: %s", cfg.Storage.Path)
		log.Printf("Engine: %s (%d workers)", cfg.Engine.Path, cfg.Engine.Workers)
		log.Printf("API Endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Auth Endpoints: http://%s/api/v1/auth/[register|login|me]", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)
		log.Printf("Metrics: http://%s/metrics", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	// Wait for an interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	if err = app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	cleanupCancel() // Stop cleanup job

	// Service shutdown closes the engine pool and storage
	if err = svc.Shutdown(gracefulShutdownTimeout); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}

	log.Println("Server exited")
}
