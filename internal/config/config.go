package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultCategories seeds the category selector when CATEGORIES is not
// set.
var DefaultCategories = []string{"Food", "Transport", "Shopping", "Bills", "Entertainment", "Other"}

type Config struct {
	// HTTP Server
	Port string

	// Ledger store
	LedgerBackend string
	CSVPath       string
	SQLiteDBPath  string

	// Category selector
	Categories []string

	// AMQP (optional; enables the mirror worker)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Mirror worker
	MirrorInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8082"),

		LedgerBackend: getEnv("LEDGER_BACKEND", "csv"),
		CSVPath:       getEnv("CSV_PATH", "./data/expenses.csv"),
		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/outlay.db"),

		Categories: getEnvList("CATEGORIES", DefaultCategories),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "outlay"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "record_events"),

		MirrorInterval: getEnvDuration("MIRROR_INTERVAL", 30*time.Second),
	}
}

// Validate checks the configuration, collecting every problem into a
// single error.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.LedgerBackend {
	case "csv":
		if c.CSVPath == "" {
			errs = append(errs, "CSV path cannot be empty when using csv backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		}
	case "memory":
	default:
		errs = append(errs, fmt.Sprintf("invalid ledger backend '%s': must be one of [csv sqlite memory]", c.LedgerBackend))
	}

	if len(c.Categories) == 0 {
		errs = append(errs, "category list cannot be empty")
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.MirrorInterval < time.Second {
		errs = append(errs, fmt.Sprintf("invalid mirror interval %v: must be at least 1 second", c.MirrorInterval))
	} else if c.MirrorInterval > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid mirror interval %v: must be at most 24 hours", c.MirrorInterval))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
