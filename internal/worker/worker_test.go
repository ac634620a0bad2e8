// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykovalchuk/maisterni/internal/model"
	"github.com/ykovalchuk/maisterni/internal/store"
	"github.com/ykovalchuk/maisterni/internal/testutil"
)

type recordingBackfiller struct {
	mu   sync.Mutex
	ids  []int64
	err  error
	done chan int64
}

func newRecordingBackfiller() *recordingBackfiller {
	return &recordingBackfiller{done: make(chan int64, 64)}
}

func (b *recordingBackfiller) Backfill(_ context.Context, bidID int64) error {
	b.mu.Lock()
	b.ids = append(b.ids, bidID)
	err := b.err
	b.mu.Unlock()
	b.done <- bidID
	return err
}

func (b *recordingBackfiller) seen() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int64(nil), b.ids...)
}

func newWorkerQueries(t *testing.T) *store.Queries {
	t.Helper()
	return store.New(testutil.DB(t))
}

func waitFor(t *testing.T, done <-chan int64, want int64) {
	t.Helper()
	select {
	case got := <-done:
		assert.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for bid %d", want)
	}
}

func TestWorkerProcessesEnqueuedBids(t *testing.T) {
	backfiller := newRecordingBackfiller()
	w := New(newWorkerQueries(t), backfiller, nil)
	require.NoError(t, w.Start(""))

	w.Enqueue(7)
	waitFor(t, backfiller.done, 7)

	w.Stop()
	assert.Equal(t, []int64{7}, backfiller.seen())
}

func TestWorkerStopDrainsQueue(t *testing.T) {
	backfiller := newRecordingBackfiller()
	w := New(newWorkerQueries(t), backfiller, nil)
	require.NoError(t, w.Start(""))

	for id := int64(1); id <= 5; id++ {
		w.Enqueue(id)
	}
	w.Stop()

	assert.Len(t, backfiller.seen(), 5)

	// Enqueue after Stop is a no-op, not a panic.
	w.Enqueue(99)
	assert.Len(t, backfiller.seen(), 5)
}

func TestWorkerKeepsGoingAfterFailure(t *testing.T) {
	backfiller := newRecordingBackfiller()
	backfiller.err = errors.New("provider down")

	w := New(newWorkerQueries(t), backfiller, nil)
	require.NoError(t, w.Start(""))

	w.Enqueue(1)
	waitFor(t, backfiller.done, 1)

	backfiller.mu.Lock()
	backfiller.err = nil
	backfiller.mu.Unlock()

	w.Enqueue(2)
	waitFor(t, backfiller.done, 2)
	w.Stop()

	assert.Equal(t, []int64{1, 2}, backfiller.seen())
}

func TestSweepEnqueuesPendingBids(t *testing.T) {
	queries := newWorkerQueries(t)
	ctx := context.Background()

	pending := &model.Bid{TranslationPending: true}
	id, err := queries.CreateBid(ctx, pending)
	require.NoError(t, err)

	done := &model.Bid{TranslationPending: false}
	_, err = queries.CreateBid(ctx, done)
	require.NoError(t, err)

	backfiller := newRecordingBackfiller()
	w := New(queries, backfiller, nil)
	require.NoError(t, w.Start(""))

	w.sweep()
	waitFor(t, backfiller.done, id)
	w.Stop()

	assert.Equal(t, []int64{id}, backfiller.seen())
}

func TestStartIdempotent(t *testing.T) {
	w := New(newWorkerQueries(t), newRecordingBackfiller(), nil)
	require.NoError(t, w.Start(""))
	require.NoError(t, w.Start(""))
	w.Stop()
	w.Stop()
}
