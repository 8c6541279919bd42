// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the club portal configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Storage backends for the per-client key-value store.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"LOBOS_DB_PATH" envDefault:"./data/lobos.db"`
	SessionSecret string `env:"LOBOS_SESSION_SECRET,required"`
	ServerHost    string `env:"LOBOS_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"LOBOS_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"LOBOS_ENV" envDefault:"development"`
	LogLevel      string `env:"LOBOS_LOG_LEVEL" envDefault:"info"`

	// Client storage configuration
	StorageBackend string `env:"LOBOS_STORAGE_BACKEND" envDefault:"sqlite"` // sqlite, redis or memory
	RedisURL       string `env:"LOBOS_REDIS_URL"`                           // Required when StorageBackend is redis
	StoragePrefix  string `env:"LOBOS_STORAGE_PREFIX" envDefault:"lobos:"`  // Redis key prefix

	// Client lifecycle
	ClientIdleTTL  time.Duration `env:"LOBOS_CLIENT_IDLE_TTL" envDefault:"30m"`
	ToastDuration  time.Duration `env:"LOBOS_TOAST_DURATION" envDefault:"3s"`
	EvictionPeriod string        `env:"LOBOS_EVICTION_SCHEDULE" envDefault:"@every 1m"`
	GuardWait      time.Duration `env:"LOBOS_GUARD_WAIT" envDefault:"2s"` // How long guards wait for session initialization

	// Operator event log retention
	EventRetention     time.Duration `env:"LOBOS_EVENT_RETENTION" envDefault:"720h"`
	EventPruneSchedule string        `env:"LOBOS_EVENT_PRUNE_SCHEDULE" envDefault:"@daily"`

	// Login/register rate limiting per IP
	AuthRateLimit float64 `env:"LOBOS_AUTH_RATE_LIMIT" envDefault:"0.5"`
	AuthBurst     int     `env:"LOBOS_AUTH_BURST" envDefault:"5"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisStorage returns true if client storage lives in Redis.
func (c Config) UseRedisStorage() bool {
	return c.StorageBackend == StorageRedis
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("LOBOS_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("LOBOS_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	switch cfg.StorageBackend {
	case StorageSQLite, StorageMemory:
	case StorageRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("LOBOS_REDIS_URL is required when LOBOS_STORAGE_BACKEND=redis")
		}
	default:
		return nil, fmt.Errorf("unknown LOBOS_STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	if cfg.ToastDuration < 0 {
		return nil, fmt.Errorf("LOBOS_TOAST_DURATION must not be negative")
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("LOBOS_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
