// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the blog configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
	"blogicum-development-secret-key!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"BLOGICUM_DB_PATH" envDefault:"./data/blogicum.db"`
	SessionSecret string `env:"BLOGICUM_SESSION_SECRET,required"`
	ServerHost    string `env:"BLOGICUM_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"BLOGICUM_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"BLOGICUM_ENV" envDefault:"development"`
	LogLevel      string `env:"BLOGICUM_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"BLOGICUM_UPLOADS_DIR" envDefault:"./uploads"`
	// SiteURL is the public base URL used in sitemap.xml and robots.txt.
	// Empty derives it from each request.
	SiteURL string `env:"BLOGICUM_SITE_URL"`

	PostsPerPage  int `env:"BLOGICUM_POSTS_PER_PAGE" envDefault:"10"`
	ImageMaxWidth int `env:"BLOGICUM_IMAGE_MAX_WIDTH" envDefault:"1200"`

	// Seeding configuration
	DoSeed bool `env:"BLOGICUM_DO_SEED" envDefault:"false"` // Insert default categories and locations
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// SlogLevel maps LogLevel to a slog level. Unknown values fall back to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
// The secret doubles as the CSRF authentication key, which needs 32 bytes.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("BLOGICUM_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, errors.New("BLOGICUM_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if cfg.Env != "development" && cfg.Env != "production" {
		return nil, fmt.Errorf("BLOGICUM_ENV must be development or production, got %q", cfg.Env)
	}
	if cfg.SiteURL != "" && !strings.HasPrefix(cfg.SiteURL, "http://") && !strings.HasPrefix(cfg.SiteURL, "https://") {
		return nil, fmt.Errorf("BLOGICUM_SITE_URL must start with http:// or https://, got %q", cfg.SiteURL)
	}
	cfg.SiteURL = strings.TrimSuffix(cfg.SiteURL, "/")
	if cfg.PostsPerPage <= 0 {
		return nil, fmt.Errorf("BLOGICUM_POSTS_PER_PAGE must be positive, got %d", cfg.PostsPerPage)
	}
	if cfg.ImageMaxWidth <= 0 {
		return nil, fmt.Errorf("BLOGICUM_IMAGE_MAX_WIDTH must be positive, got %d", cfg.ImageMaxWidth)
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("BLOGICUM_SESSION_SECRET has low character diversity; " +
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
