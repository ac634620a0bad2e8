// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

// DefaultConcurrency caps in-flight provider calls when the caller does
// not say otherwise.
const DefaultConcurrency = 3

// Request is one independent translation unit within a batch.
type Request struct {
	Key    string // result map key, conventionally "{group}_{lang}"
	Text   string
	Source langcode.Code
	Target langcode.Code
}

// Orchestrator fans a batch of translation requests out to the provider
// with bounded concurrency. One failed request never fails the batch: the
// affected key degrades to the untranslated source text.
type Orchestrator struct {
	provider      Provider
	maxConcurrent int
	logger        *slog.Logger
}

// NewOrchestrator creates an orchestrator over the given provider.
// maxConcurrent <= 0 selects DefaultConcurrency.
func NewOrchestrator(provider Provider, maxConcurrent int, logger *slog.Logger) *Orchestrator {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		provider:      provider,
		maxConcurrent: maxConcurrent,
		logger:        logger,
	}
}

// Run executes every request and returns a map from request key to result
// text. Every submitted key is present in the result: a request whose
// provider call fails, panics, or returns blank maps to its original text.
// Requests are independent and complete in no particular order.
func (o *Orchestrator) Run(ctx context.Context, requests []Request) map[string]string {
	results := make(map[string]string, len(requests))
	if len(requests) == 0 {
		return results
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, o.maxConcurrent)
	)

	for _, req := range requests {
		sem <- struct{}{}
		wg.Add(1)

		go func(req Request) {
			defer func() {
				<-sem
				wg.Done()
			}()

			text := o.translateOne(ctx, req)

			mu.Lock()
			results[req.Key] = text
			mu.Unlock()
		}(req)
	}

	wg.Wait()
	return results
}

// translateOne runs a single request, converting any failure into the
// source-text fallback.
func (o *Orchestrator) translateOne(ctx context.Context, req Request) (result string) {
	// A panicking provider is treated the same as a failed one.
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("translation provider panic",
				"key", req.Key, "source", req.Source, "target", req.Target, "panic", r)
			result = req.Text
		}
	}()

	translated, err := o.provider.Translate(ctx, req.Text, req.Source, req.Target)
	if err != nil {
		o.logger.Warn("translation failed, keeping source text",
			"key", req.Key, "source", req.Source, "target", req.Target, "error", err)
		return req.Text
	}
	if strings.TrimSpace(translated) == "" {
		o.logger.Warn("translation returned empty result, keeping source text",
			"key", req.Key, "source", req.Source, "target", req.Target)
		return req.Text
	}
	return translated
}
