package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"geoks/adapters/postgres"
	"geoks/adapters/stats/kstest"
	"geoks/internal/config"
	"geoks/ui"
)

func main() {
	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Printf("[Main] no .env file loaded: %v", err)
	}

	cfg := config.Load()

	var results *postgres.ResultRepository
	if cfg.DB.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.DB.URL)
		if err != nil {
			log.Fatalf("[Main] failed to connect to database: %v", err)
		}
		defer db.Close()
		results = postgres.NewResultRepository(db)
		log.Printf("[Main] result persistence enabled")
	} else {
		log.Printf("[Main] GEOKS_DB_URL not set; running without result persistence")
	}

	server := ui.NewServer(cfg, kstest.NewTester(), results)
	if err := server.Run(); err != nil {
		log.Fatalf("[Main] server exited: %v", err)
	}
}
