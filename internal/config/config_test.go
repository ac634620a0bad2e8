// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TranslateProvider != "google" {
		t.Errorf("TranslateProvider = %q, want %q", cfg.TranslateProvider, "google")
	}
	if cfg.TranslateConcurrency != 3 {
		t.Errorf("TranslateConcurrency = %d, want 3", cfg.TranslateConcurrency)
	}
	if cfg.TranslateTimeout != 10*time.Second {
		t.Errorf("TranslateTimeout = %v, want 10s", cfg.TranslateTimeout)
	}
	if cfg.VerificationTTL != 15*time.Minute {
		t.Errorf("VerificationTTL = %v, want 15m", cfg.VerificationTTL)
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true by default")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true with no redis url")
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "localhost:8080")
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("MAISTERNI_TRANSLATE_PROVIDER", "babelfish")
	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted unknown translation provider")
	}
}

func TestLoadRequiresOpenAIKey(t *testing.T) {
	t.Setenv("MAISTERNI_TRANSLATE_PROVIDER", "openai")
	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted openai provider without an API key")
	}

	t.Setenv("MAISTERNI_OPENAI_API_KEY", "sk-test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TranslateProvider != "openai" {
		t.Errorf("TranslateProvider = %q, want openai", cfg.TranslateProvider)
	}
}

func TestLoadRejectsZeroConcurrency(t *testing.T) {
	t.Setenv("MAISTERNI_TRANSLATE_CONCURRENCY", "0")
	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted zero concurrency")
	}
}
