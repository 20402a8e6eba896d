package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	StoreDriver     string
	DatabaseURL     string
	SQLitePath      string
	MigrationsPath  string
	DefaultLocale   string
	MissingLogPath  string
	LogLevel        string
	LogFormat       string
	SeedConcurrency int
}

// Load reads the configuration from the environment and validates it. A .env
// file in the working directory is loaded first when present.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI, etc.).
	_ = godotenv.Load()

	return FromLookup(os.Getenv)
}

// FromLookup builds a Config from getenv, applying defaults and validation.
func FromLookup(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		StoreDriver:    strings.ToLower(strings.TrimSpace(getenv("STORE_DRIVER"))),
		DatabaseURL:    strings.TrimSpace(getenv("DATABASE_URL")),
		SQLitePath:     strings.TrimSpace(getenv("SQLITE_PATH")),
		MigrationsPath: strings.TrimSpace(getenv("MIGRATIONS_PATH")),
		DefaultLocale:  strings.TrimSpace(getenv("DEFAULT_LOCALE")),
		MissingLogPath: strings.TrimSpace(getenv("MISSING_LOG_PATH")),
		LogLevel:       strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL"))),
		LogFormat:      strings.ToLower(strings.TrimSpace(getenv("LOG_FORMAT"))),
	}

	if raw := strings.TrimSpace(getenv("SEED_CONCURRENCY")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: SEED_CONCURRENCY must be a positive integer, got %q", raw)
		}
		cfg.SeedConcurrency = n
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.StoreDriver == "" {
		c.StoreDriver = DriverSQLite
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "marktrans.db"
	}
	if c.MigrationsPath == "" {
		c.MigrationsPath = "migrations/postgres"
	}
	if c.DefaultLocale == "" {
		c.DefaultLocale = "en"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
	if c.SeedConcurrency == 0 {
		c.SeedConcurrency = 4
	}
}

// validate applies every rule to the loaded configuration.
func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the %s driver", DriverPostgres)
		}
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
		}
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}

	tag, err := language.Parse(c.DefaultLocale)
	if err != nil {
		return fmt.Errorf("config: invalid DEFAULT_LOCALE %q: %w", c.DefaultLocale, err)
	}
	c.DefaultLocale = tag.String()

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown LOG_LEVEL %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("config: unknown LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}
