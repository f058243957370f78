// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"AJNUSA_DB_PATH" envDefault:"./data/ajnusa.db"`
	ServerHost string `env:"AJNUSA_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"AJNUSA_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"AJNUSA_ENV" envDefault:"development"`
	LogLevel   string `env:"AJNUSA_LOG_LEVEL" envDefault:"info"`

	// SiteURL is the canonical public URL of the site, used when absolute
	// links are needed (e.g. popup link normalization in the admin UI).
	SiteURL string `env:"AJNUSA_SITE_URL" envDefault:"https://ajnusa.com"`

	// Seeding configuration
	DoSeed bool `env:"AJNUSA_DO_SEED" envDefault:"false"` // Enable database seeding

	// EventRetentionDays controls how long audit events are kept before the
	// scheduler prunes them. Zero disables pruning.
	EventRetentionDays int `env:"AJNUSA_EVENT_RETENTION_DAYS" envDefault:"90"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("AJNUSA_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}

	if u, err := url.Parse(cfg.SiteURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("AJNUSA_SITE_URL must be an absolute URL, got %q", cfg.SiteURL)
	}

	if cfg.EventRetentionDays < 0 {
		return nil, fmt.Errorf("AJNUSA_EVENT_RETENTION_DAYS must not be negative, got %d", cfg.EventRetentionDays)
	}

	return cfg, nil
}
