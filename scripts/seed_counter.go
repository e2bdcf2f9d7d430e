package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"alfredoptarigan/job-assistant/internal/config"
	"alfredoptarigan/job-assistant/internal/repositories"
	"alfredoptarigan/job-assistant/internal/services"
)

// Seeds the visitor counter document with a starting value, default 0.
// Usage: go run ./scripts/seed_counter.go [visits]
func main() {
	log.Println("🚀 Seeding visitor counter...")

	cfg := config.Load()

	visits := 0
	if len(os.Args) > 1 {
		v, err := strconv.Atoi(os.Args[1])
		if err != nil || v < 0 {
			log.Fatalf("❌ Invalid starting value %q", os.Args[1])
		}
		visits = v
	}

	var store services.CounterStore
	switch cfg.Counter.Backend {
	case config.CounterBackendPostgres:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		store = repositories.NewVisitorCounterRepository(db)
	default:
		if !cfg.HasJSONBinCredentials() {
			log.Fatal("❌ JSONBIN_API_KEY and JSONBIN_BIN_ID must be set")
		}
		store = services.NewJSONBinStore(cfg.Counter.JSONBinAPIKey, cfg.Counter.JSONBinBinID, cfg.Counter.JSONBinBaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := store.WriteVisits(ctx, visits); err != nil {
		log.Fatalf("❌ Failed to write visitor count: %v", err)
	}

	current, err := store.ReadVisits(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to read back visitor count: %v", err)
	}

	log.Printf("✅ Visitor counter (%s) now at %d", cfg.Counter.Backend, current)
}
