// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"time"
)

// Options selects and configures a cache backend.
type Options struct {
	RedisURL   string // empty selects the in-process backend
	Prefix     string
	DefaultTTL time.Duration
}

// New creates the cache backend described by opts: Redis when a URL is
// configured, in-process memory otherwise.
func New(ctx context.Context, opts Options, logger *slog.Logger) (Cache, error) {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = time.Hour
	}

	if opts.RedisURL != "" {
		c, err := NewRedis(ctx, opts.RedisURL, opts.Prefix, opts.DefaultTTL)
		if err != nil {
			return nil, err
		}
		if logger != nil {
			logger.Info("cache backend initialized", "backend", "redis", "prefix", opts.Prefix)
		}
		return c, nil
	}

	if logger != nil {
		logger.Info("cache backend initialized", "backend", "memory")
	}
	return NewMemory(opts.DefaultTTL), nil
}
