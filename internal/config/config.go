// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"MENU_DB_PATH" envDefault:"./data/menu.db"`
	SessionSecret string `env:"MENU_SESSION_SECRET,required"`
	ServerHost    string `env:"MENU_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"MENU_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"MENU_ENV" envDefault:"development"`
	LogLevel      string `env:"MENU_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"MENU_UPLOADS_DIR" envDefault:"./uploads"`

	// DefaultLocale is served when a request carries no locale preference.
	DefaultLocale string `env:"MENU_DEFAULT_LOCALE" envDefault:"en"`

	// CORSOrigins lists browser origins allowed to call the JSON API.
	CORSOrigins []string `env:"MENU_CORS_ORIGINS" envSeparator:","`

	// EventRetentionDays controls how long audit events are kept before
	// the nightly pruning job removes them.
	EventRetentionDays int `env:"MENU_EVENT_RETENTION_DAYS" envDefault:"90"`

	// Seeding configuration
	DoSeed bool `env:"MENU_DO_SEED" envDefault:"false"` // Enable demo menu seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("MENU_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("MENU_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("MENU_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.EventRetentionDays < 1 {
		return nil, fmt.Errorf("MENU_EVENT_RETENTION_DAYS must be at least 1, got %d", cfg.EventRetentionDays)
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
