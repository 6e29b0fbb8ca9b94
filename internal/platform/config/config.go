// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file
is loaded first (if present) with 'joho/godotenv'; real environment variables
always win over the file.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (store, cache, server) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/scrapbook/internal/platform/constants"
)

// # Store Drivers

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// # Configuration Schema

// Config holds all runtime configuration for the Scrapbook server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StoreDriver selects the item store backend: memory, postgres or sqlite.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"./data/scrapbook.db"`

	// Key-Value Cache (Redis). Empty disables the list cache.
	RedisURL     string        `env:"REDIS_URL"`
	ListCacheTTL time.Duration `env:"LIST_CACHE_TTL" envDefault:"30s"`

	// Capabilities. When RequireAdmin is false every caller may create and
	// delete items (open policy).
	RequireAdmin        bool          `env:"REQUIRE_ADMIN"          envDefault:"false"`
	AdminTokenSecret    string        `env:"ADMIN_TOKEN_SECRET"`
	AdminPassphraseHash string        `env:"ADMIN_PASSPHRASE_HASH"`
	AdminTokenTTL       time.Duration `env:"ADMIN_TOKEN_TTL"        envDefault:"12h"`

	// Seeding
	SeedOnStart bool   `env:"SEED_ON_START" envDefault:"true"`
	SeedFile    string `env:"SEED_FILE"`

	// Cross-Origin Resource Sharing (comma separated origins)
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load reads an optional .env file, then parses environment variables into
// a validated [Config].
func Load() (*Config, error) {

	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	return Parse()
}

// Parse maps the current environment onto a [Config] without touching .env.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate cross-checks settings that depend on each other.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required for the postgres driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("config: SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.RequireAdmin && c.AdminTokenSecret == "" {
		return errors.New("config: ADMIN_TOKEN_SECRET is required when REQUIRE_ADMIN is set")
	}

	if c.AdminTokenTTL <= 0 {
		c.AdminTokenTTL = constants.DefaultAdminTokenTTL
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the trimmed EXTRA_ORIGINS entries.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// AdminEnabled reports whether admin tokens can be issued and verified.
func (c *Config) AdminEnabled() bool {
	return c.AdminTokenSecret != ""
}
