// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	c := NewMemory(time.Minute)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_, err := c.Get(ctx, "absent")
	assert.Equal(t, ErrMiss, err)

	require.NoError(t, c.Set(ctx, "code", []byte("483920"), 0))

	got, err := c.Get(ctx, "code")
	require.NoError(t, err)
	assert.Equal(t, []byte("483920"), got)

	has, err := c.Has(ctx, "code")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestMemoryExpiry(t *testing.T) {
	c := NewMemory(time.Minute)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "code", []byte("483920"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := c.Get(ctx, "code")
	assert.Equal(t, ErrMiss, err)

	has, err := c.Has(ctx, "code")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestMemoryDelete(t *testing.T) {
	c := NewMemory(time.Minute)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "code", []byte("1"), 0))
	require.NoError(t, c.Delete(ctx, "code"))
	require.NoError(t, c.Delete(ctx, "code"), "deleting absent key is not an error")

	_, err := c.Get(ctx, "code")
	assert.Equal(t, ErrMiss, err)
}

func TestMemoryClosed(t *testing.T) {
	c := NewMemory(time.Minute)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "double close must be safe")

	_, err := c.Get(context.Background(), "k")
	assert.Equal(t, ErrClosed, err)
	assert.Equal(t, ErrClosed, c.Set(context.Background(), "k", nil, 0))
}

func TestMemoryValueIsolation(t *testing.T) {
	c := NewMemory(time.Minute)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	original := []byte("483920")
	require.NoError(t, c.Set(ctx, "code", original, 0))
	original[0] = 'X'

	got, err := c.Get(ctx, "code")
	require.NoError(t, err)
	assert.Equal(t, []byte("483920"), got, "stored value must not alias caller's slice")

	got[0] = 'Y'
	again, err := c.Get(ctx, "code")
	require.NoError(t, err)
	assert.Equal(t, []byte("483920"), again, "returned value must not alias stored slice")
}

type pendingBid struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func TestTypedRoundTrip(t *testing.T) {
	c := NewMemory(time.Minute)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	typed := NewTyped[pendingBid](c, "pending:", time.Minute)

	want := &pendingBid{Email: "user@example.com", Code: "483920"}
	require.NoError(t, typed.Set(ctx, "user@example.com", want))

	got, err := typed.Get(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Prefixes keep consumers out of each other's namespace.
	other := NewTyped[pendingBid](c, "verify:", time.Minute)
	_, err = other.Get(ctx, "user@example.com")
	assert.Equal(t, ErrMiss, err)
}

func TestTypedCorruptEntry(t *testing.T) {
	c := NewMemory(time.Minute)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "pending:bad", []byte("{not json"), 0))

	typed := NewTyped[pendingBid](c, "pending:", time.Minute)
	_, err := typed.Get(ctx, "bad")
	assert.Equal(t, ErrMiss, err)

	has, err := c.Has(ctx, "pending:bad")
	require.NoError(t, err)
	assert.False(t, has, "corrupt entry should be dropped")
}

func TestFactorySelectsMemory(t *testing.T) {
	c, err := New(context.Background(), Options{}, nil)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	_, ok := c.(*Memory)
	assert.True(t, ok)
}
