// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

// Package worker completes the translations of fast-path bids in the
// background. A small goroutine pool serves the queue fed at creation
// time, and a cron sweep re-enqueues whatever the queue lost to restarts
// or provider outages.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ykovalchuk/maisterni/internal/store"
)

const (
	defaultQueueSize = 256
	defaultWorkers   = 2

	// sweepBatchSize bounds one sweep pass; the next pass picks up the
	// remainder.
	sweepBatchSize = 50

	backfillTimeout = 2 * time.Minute
)

// Backfiller completes the translation of one bid. The bid service
// provides the production implementation.
type Backfiller interface {
	Backfill(ctx context.Context, bidID int64) error
}

// Worker drains the bid translation queue.
type Worker struct {
	queries    *store.Queries
	backfiller Backfiller
	logger     *slog.Logger

	queue chan int64
	cron  *cron.Cron
	wg    sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool
}

// New creates a Worker. The sweep schedule is a standard cron expression;
// an empty schedule disables the sweep.
func New(queries *store.Queries, backfiller Backfiller, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		queries:    queries,
		backfiller: backfiller,
		logger:     logger,
		queue:      make(chan int64, defaultQueueSize),
		cron:       cron.New(),
	}
}

// Start launches the worker pool and, when schedule is non-empty, the
// periodic sweep for bids the queue lost.
func (w *Worker) Start(schedule string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}
	w.started = true

	for i := 0; i < defaultWorkers; i++ {
		w.wg.Add(1)
		go w.run()
	}

	if schedule != "" {
		if _, err := w.cron.AddFunc(schedule, w.sweep); err != nil {
			return err
		}
		w.cron.Start()
	}

	w.logger.Info("translation worker started", "workers", defaultWorkers, "sweep", schedule)
	return nil
}

// Stop drains the queue and waits for in-flight translations.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.started || w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	w.mu.Unlock()

	<-w.cron.Stop().Done()
	close(w.queue)
	w.wg.Wait()
	w.logger.Info("translation worker stopped")
}

// Enqueue schedules a bid for background translation. Never blocks: when
// the queue is full the bid is left pending and the sweep retries it.
func (w *Worker) Enqueue(bidID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	select {
	case w.queue <- bidID:
	default:
		w.logger.Warn("translation queue full, deferring to sweep", "bid_id", bidID)
	}
}

func (w *Worker) run() {
	defer w.wg.Done()
	for bidID := range w.queue {
		ctx, cancel := context.WithTimeout(context.Background(), backfillTimeout)
		if err := w.backfiller.Backfill(ctx, bidID); err != nil {
			w.logger.Error("bid translation failed", "bid_id", bidID, "error", err)
		} else {
			w.logger.Info("bid translation completed", "bid_id", bidID)
		}
		cancel()
	}
}

// sweep re-enqueues bids stuck in the pending state. Failed provider
// calls leave source text behind, so each retry converges toward a fully
// translated bid.
func (w *Worker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bids, err := w.queries.ListPendingTranslationBids(ctx, sweepBatchSize)
	if err != nil {
		w.logger.Error("listing pending bids failed", "error", err)
		return
	}
	if len(bids) == 0 {
		return
	}

	w.logger.Info("sweeping pending bids", "count", len(bids))
	for _, bid := range bids {
		w.Enqueue(bid.ID)
	}
}
