package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Catalog source
	CatalogBackend  string
	CatalogCacheTTL time.Duration

	// Google Sheets
	GoogleSpreadsheetID string
	ItemsSheetName      string
	StoresSheetName     string
	SiteConfigSheetName string

	// Database
	SQLiteDBPath string

	// AMQP (optional transaction event stream)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Sessions
	SessionTTL time.Duration

	// Starting wallet for new sessions
	StartingGold   int
	StartingSilver int
	StartingCopper int
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		CatalogBackend:  getEnv("CATALOG_BACKEND", "static"),
		CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		ItemsSheetName:      getEnv("ITEMS_SHEET_NAME", "Items"),
		StoresSheetName:     getEnv("STORES_SHEET_NAME", "Stores"),
		SiteConfigSheetName: getEnv("SITE_CONFIG_SHEET_NAME", "SiteConfig"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/merchant.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "merchant"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_transactions"),

		SessionTTL: getEnvDuration("SESSION_TTL", 4*time.Hour),

		StartingGold:   getEnvInt("STARTING_GOLD", 25),
		StartingSilver: getEnvInt("STARTING_SILVER", 30),
		StartingCopper: getEnvInt("STARTING_COPPER", 50),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"static", "sheets", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.CatalogBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid catalog backend '%s': must be one of %v", c.CatalogBackend, validBackends))
	}

	if c.CatalogBackend == "sheets" {
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}
		if c.ItemsSheetName == "" {
			errors = append(errors, "items sheet name cannot be empty when using sheets backend")
		}
		if c.StoresSheetName == "" {
			errors = append(errors, "stores sheet name cannot be empty when using sheets backend")
		}
	}

	if c.CatalogBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.CatalogCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid catalog cache TTL %v: must be at least 1 second", c.CatalogCacheTTL))
	} else if c.CatalogCacheTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid catalog cache TTL %v: must be at most 24 hours", c.CatalogCacheTTL))
	}

	if c.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
	}

	if c.StartingGold < 0 || c.StartingSilver < 0 || c.StartingCopper < 0 {
		errors = append(errors, "starting wallet amounts cannot be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
