// backend/database/connection.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL/MariaDB driver

	"github.com/citystreams/tlcingest/backend/config"
)

var DB *sql.DB

// InitDB opens the connection pool for the trips database and verifies it.
// parseTime is required: trip timestamps are scanned into time.Time.
func InitDB(cfg config.DatabaseConfig) error {
	var err error
	// DSN: username:password@protocol(address)/dbname?param=value
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
	)

	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	// Pool sizing: ingestion runs hold one connection for a long transaction,
	// the API handlers take short-lived ones.
	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err = DB.Ping(); err != nil {
		DB.Close() // Close the pool if the ping fails
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Connected to trips database %q on %s:%s.\n", cfg.DBName, cfg.Host, cfg.Port)
	return nil
}

// CloseDB closes the connection pool. Called on application shutdown.
func CloseDB() {
	if DB != nil {
		DB.Close()
		log.Println("Database connection closed.")
	}
}
