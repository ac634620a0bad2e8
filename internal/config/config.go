// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment
// variables.
type Config struct {
	DBPath     string `env:"MAISTERNI_DB_PATH" envDefault:"./data/maisterni.db"`
	ServerHost string `env:"MAISTERNI_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"MAISTERNI_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"MAISTERNI_ENV" envDefault:"development"`
	LogLevel   string `env:"MAISTERNI_LOG_LEVEL" envDefault:"info"`

	// Translation pipeline
	TranslateProvider    string        `env:"MAISTERNI_TRANSLATE_PROVIDER" envDefault:"google"` // google or openai
	TranslateConcurrency int           `env:"MAISTERNI_TRANSLATE_CONCURRENCY" envDefault:"3"`   // max in-flight provider calls
	TranslateTimeout     time.Duration `env:"MAISTERNI_TRANSLATE_TIMEOUT" envDefault:"10s"`     // per provider call
	OpenAIAPIKey         string        `env:"MAISTERNI_OPENAI_API_KEY"`
	OpenAIModel          string        `env:"MAISTERNI_OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// Cache (verification codes, pending registrations)
	RedisURL    string        `env:"MAISTERNI_REDIS_URL"` // optional; empty selects in-process cache
	CachePrefix string        `env:"MAISTERNI_CACHE_PREFIX" envDefault:"maisterni:"`
	CacheTTL    time.Duration `env:"MAISTERNI_CACHE_TTL" envDefault:"1h"`

	// Verification codes expire faster than general cache entries.
	VerificationTTL time.Duration `env:"MAISTERNI_VERIFICATION_TTL" envDefault:"15m"`

	// Background translation sweep schedule (cron spec).
	SweepSchedule string `env:"MAISTERNI_SWEEP_SCHEDULE" envDefault:"*/5 * * * *"`

	// SMTP for verification emails. An empty host logs codes instead of
	// sending them, which is only acceptable in development.
	SMTPHost     string `env:"MAISTERNI_SMTP_HOST"`
	SMTPPort     int    `env:"MAISTERNI_SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"MAISTERNI_SMTP_USERNAME"`
	SMTPPassword string `env:"MAISTERNI_SMTP_PASSWORD"`
	SMTPFrom     string `env:"MAISTERNI_SMTP_FROM"`
}

// IsDevelopment returns true in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns host:port for the HTTP listener.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// UseSMTP returns true if an SMTP relay is configured.
func (c Config) UseSMTP() bool {
	return c.SMTPHost != ""
}

// Load parses environment variables and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.TranslateProvider != "google" && cfg.TranslateProvider != "openai" {
		return nil, fmt.Errorf("MAISTERNI_TRANSLATE_PROVIDER must be google or openai, got %q",
			cfg.TranslateProvider)
	}
	if cfg.TranslateProvider == "openai" && cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("MAISTERNI_OPENAI_API_KEY is required with the openai provider")
	}
	if cfg.TranslateConcurrency < 1 {
		return nil, fmt.Errorf("MAISTERNI_TRANSLATE_CONCURRENCY must be at least 1, got %d",
			cfg.TranslateConcurrency)
	}
	if !cfg.IsDevelopment() && !cfg.UseSMTP() {
		return nil, fmt.Errorf("MAISTERNI_SMTP_HOST is required outside development")
	}

	return cfg, nil
}
