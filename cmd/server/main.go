/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the flextime engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env defaults, parse command-line flags
  2. Initialize SQLite store
  3. Load workday/break configuration (JSON file or built-in preset)
  4. Wire the processing service and API handler
  5. Start the background processing scheduler
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port      HTTP server port (default: 8080)
  -db        SQLite database path (default: flextime.db)
             Use ":memory:" for an in-memory database
  -config    Workday configuration JSON path (default: built-in preset)
  -interval  Scheduler check interval (default: 1h)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the scheduler, close the database
  4. Exit

EXAMPLES:
  # Run with file database and custom schedule config
  ./server -db="./data/flextime.db" -config="./config/flextime.json"

  # Run with in-memory database
  ./server -db=":memory:"

ENVIRONMENT:
  A .env file (if present) seeds flag defaults:
  PORT, DB_PATH, CONFIG_PATH, CHECK_INTERVAL

SEE ALSO:
  - api/server.go: Router configuration
  - api/scheduler.go: Background processing
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/warp/flextime-engine/api"
	"github.com/warp/flextime-engine/factory"
	"github.com/warp/flextime-engine/flextime"
	"github.com/warp/flextime-engine/store/sqlite"
)

func main() {
	// .env is optional; flags override its values.
	if err := godotenv.Load(); err == nil {
		log.Println("[Server] Loaded .env file")
	}

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envString("DB_PATH", "flextime.db"), "SQLite database path")
	configPath := flag.String("config", envString("CONFIG_PATH", ""), "workday configuration JSON path")
	interval := flag.Duration("interval", envDuration("CHECK_INTERVAL", time.Hour), "scheduler check interval")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Load workday and break configuration
	var cfg *factory.Config
	if *configPath != "" {
		cfg, err = factory.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", *configPath, err)
		}
		log.Printf("[Server] Loaded schedule config from %s (%d grades)", *configPath, len(cfg.Grades()))
	} else {
		cfg = factory.DefaultConfig()
		log.Println("[Server] Using built-in default schedule config")
	}

	// Wire the engine
	clock := flextime.SystemClock{}
	processing := flextime.NewProcessingService(
		clock, store, store, cfg, cfg, store, store, store, store, store)

	// Initialize handler and router
	handler := api.NewHandler(store, processing, clock)
	router := api.NewRouter(handler)

	// Start background processing
	scheduler := api.NewProcessingScheduler(processing)
	scheduler.CheckInterval = *interval
	scheduler.Start()
	defer scheduler.Stop()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// =============================================================================
// ENVIRONMENT HELPERS
// =============================================================================

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
