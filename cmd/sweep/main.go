// Command sweep deletes expired stories once and exits. Run it from cron.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/anonto42/pixgram/backend/internal/repositories"
	"github.com/anonto42/pixgram/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}

	deleted, err := sweep(db)
	db.CloseDB()
	if err != nil {
		log.Printf("Failed to sweep expired stories: %v", err)
		os.Exit(1)
	}
	log.Printf("Deleted %d expired stories.", deleted)
}

func sweep(db *config.DB) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return repositories.NewPostgresStoryRepository(db.Postgres).DeleteExpiredStories(ctx)
}
