// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Typed wraps a Cache with JSON encoding so callers work with domain
// structs (verification codes, pending bids) instead of raw bytes.
type Typed[T any] struct {
	cache      Cache
	keyPrefix  string
	defaultTTL time.Duration
}

// NewTyped creates a typed view over cache. keyPrefix namespaces the
// entries so different consumers can share one Cache.
func NewTyped[T any](cache Cache, keyPrefix string, defaultTTL time.Duration) *Typed[T] {
	return &Typed[T]{
		cache:      cache,
		keyPrefix:  keyPrefix,
		defaultTTL: defaultTTL,
	}
}

// Get retrieves and decodes the value stored under key.
// Returns ErrMiss when absent, expired, or undecodable.
func (c *Typed[T]) Get(ctx context.Context, key string) (*T, error) {
	data, err := c.cache.Get(ctx, c.keyPrefix+key)
	if err != nil {
		return nil, err
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		// A corrupt entry is as useful as a missing one; drop it.
		_ = c.cache.Delete(ctx, c.keyPrefix+key)
		return nil, ErrMiss
	}
	return &value, nil
}

// Set encodes and stores value under key with the default TTL.
func (c *Typed[T]) Set(ctx context.Context, key string, value *T) error {
	return c.SetWithTTL(ctx, key, value, c.defaultTTL)
}

// SetWithTTL encodes and stores value under key with an explicit TTL.
func (c *Typed[T]) SetWithTTL(ctx context.Context, key string, value *T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache value: %w", err)
	}
	return c.cache.Set(ctx, c.keyPrefix+key, data, ttl)
}

// Delete removes the entry under key.
func (c *Typed[T]) Delete(ctx context.Context, key string) error {
	return c.cache.Delete(ctx, c.keyPrefix+key)
}

// Has reports whether key exists.
func (c *Typed[T]) Has(ctx context.Context, key string) (bool, error) {
	return c.cache.Has(ctx, c.keyPrefix+key)
}
