// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the short-lived key-value storage used for email
// verification codes and pending (unverified) bid registrations. Values
// are []byte so the same interface covers the in-process store used in
// tests and the Redis store used when several instances share state.
package cache

import (
	"context"
	"time"
)

// Cache is a TTL key-value store. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the value for key, or ErrMiss when absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A zero ttl selects the store's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Has reports whether key exists and has not expired.
	Has(ctx context.Context, key string) (bool, error)

	// Close releases the store's resources.
	Close() error
}

// Error is a sentinel cache error.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrMiss indicates the key was not found or has expired.
	ErrMiss Error = "cache miss"

	// ErrClosed indicates the cache has been closed.
	ErrClosed Error = "cache closed"
)
