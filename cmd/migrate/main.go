package main

import (
	"log"

	"github.com/lwhela12/the-hive-api/internal/infrastructure/database"
	"github.com/lwhela12/the-hive-api/pkg/config"
)

func main() {
	log.Println("🚀 Running database migrations...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	log.Println("✅ Migrations applied successfully")
}
