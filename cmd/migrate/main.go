// Command migrate applies the embedded database migrations.
//
// Usage: migrate [up|down]
package main

import (
	"log"
	"os"

	"campus-clubs/backend/internal/config"
	"campus-clubs/backend/internal/db/migrate"
)

func main() {
	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}
	if direction != "up" && direction != "down" {
		log.Fatalf("migrate: unknown direction %q (want up or down)", direction)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("migrate: DATABASE_URL must be set")
	}

	if err := migrate.Run(cfg.DatabaseURL, direction); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Printf("migrate: %s complete", direction)
}
