// backend/main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/citystreams/tlcingest/backend/config"
	"github.com/citystreams/tlcingest/backend/database"
	"github.com/citystreams/tlcingest/backend/handlers"
)

func main() {
	log.Println("Starting TLC Trip Ingestion Backend...")

	// Secrets (TLC_DB_PASSWORD etc.) come from .env when present; missing .env
	// just means the environment is already populated.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; relying on process environment.")
	}

	configPath := "config/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = "config.yaml"
		if _, errFallback := os.Stat(configPath); os.IsNotExist(errFallback) {
			log.Fatalf("Config file not found at default paths. Error: %v", errFallback)
		}
	}

	err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	log.Printf("Configuration loaded. Server port: %s, DB name: %s",
		config.AppConfig.Server.Port, config.AppConfig.Database.DBName)
	log.Printf("Trip source base URL: %s", config.AppConfig.TripSource.BaseURL)
	log.Printf("Default taxi types: %v", config.AppConfig.Ingest.DefaultTaxiTypes)

	err = database.InitDB(config.AppConfig.Database)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer database.CloseDB()

	// --- Setup HTTP routes ---
	http.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := database.DB.Ping(); err != nil {
			http.Error(w, `{"status": "error", "message": "database connection error"}`, http.StatusInternalServerError)
			log.Printf("Health check failed: DB ping error: %v", err)
			return
		}
		fmt.Fprintln(w, `{"status": "ok", "message": "TLC ingestion backend is healthy"}`)
	})

	// Admin routes for triggering and inspecting ingestion
	http.HandleFunc("/api/admin/ingest-trips", handlers.RunTripIngestionHandler)
	http.HandleFunc("/api/admin/source-status", handlers.SourceStatusHandler)
	http.HandleFunc("/api/runs", handlers.ListIngestRunsHandler)

	serverAddr := ":" + config.AppConfig.Server.Port
	log.Printf("Server starting on http://localhost%s\n", serverAddr)
	err = http.ListenAndServe(serverAddr, nil)
	if err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
