// backend/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/citystreams/tlcingest/backend/utils"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type TripSourceConfig struct {
	// BaseURL is the file host serving monthly trip files, e.g.
	// https://d37ci6vzurychx.cloudfront.net/trip-data
	BaseURL string `yaml:"base_url"`
	// CatalogPageURL is the TLC page that links every published file.
	CatalogPageURL  string `yaml:"catalog_page_url"`
	FetchTimeoutStr string `yaml:"fetch_timeout"`
	FetchTimeout    time.Duration // parsed from FetchTimeoutStr
}

type IngestConfig struct {
	// DefaultTaxiTypes is used when a run request names no taxi types.
	DefaultTaxiTypes []string `yaml:"default_taxi_types"`
}

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	TripSource TripSourceConfig `yaml:"trip_source"`
	Ingest     IngestConfig     `yaml:"ingest"`
}

var AppConfig Config

// LoadConfig reads configuration from a YAML file, then applies environment
// overrides for secrets so the config file never needs to hold a password
// (TLC_DB_PASSWORD, typically supplied via .env).
func LoadConfig(configPath string) error {
	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	AppConfig = Config{} // start clean so reloads never keep stale values
	if err := yaml.Unmarshal(file, &AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if v := os.Getenv("TLC_DB_PASSWORD"); v != "" {
		AppConfig.Database.Password = v
	}

	// Parse durations
	if AppConfig.TripSource.FetchTimeoutStr != "" {
		AppConfig.TripSource.FetchTimeout, err = time.ParseDuration(AppConfig.TripSource.FetchTimeoutStr)
		if err != nil {
			return fmt.Errorf("failed to parse fetch_timeout: %w", err)
		}
	} else {
		AppConfig.TripSource.FetchTimeout = 60 * time.Second // Default
	}

	if len(AppConfig.Ingest.DefaultTaxiTypes) == 0 {
		AppConfig.Ingest.DefaultTaxiTypes = utils.DefaultTaxiTypes()
	}

	return nil
}
