// Command migrate creates or updates the database schema. It is run separately
// from the server, which refuses to start against an empty database.
package main

import (
	"log"

	"github.com/hitalent/qanda/config"
	"github.com/hitalent/qanda/models"
)

func main() {
	cfg := config.Load()

	db, err := config.Open(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&models.Question{}, &models.Answer{}); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("schema is up to date: questions, answers")
}
