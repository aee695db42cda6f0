package main

import (
	"log"

	"github.com/linkdeck/linkdeck/db"
	"github.com/linkdeck/linkdeck/internal/config"
	"github.com/linkdeck/linkdeck/internal/router"
)

func main() {
	cfg := config.Load()

	// The database connects lazily on the first request; an unreachable
	// store fails that request, not the process.
	conn := db.New(cfg.DSN())

	r := router.NewRouter(conn)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
