// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

// fakeProvider is a test Provider with call counting, optional failure
// injection, and in-flight concurrency tracking.
type fakeProvider struct {
	mu         sync.Mutex
	calls      int
	inFlight   int32
	maxSeen    int32
	delay      time.Duration
	fail       bool
	failFor    map[string]bool // target lang -> fail
	panicOn    string          // text that triggers a panic
	translated func(text string, source, target langcode.Code) string
}

func (f *fakeProvider) Translate(_ context.Context, text string, source, target langcode.Code) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		seen := atomic.LoadInt32(&f.maxSeen)
		if cur <= seen || atomic.CompareAndSwapInt32(&f.maxSeen, seen, cur) {
			break
		}
	}

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if text == f.panicOn {
		panic("provider exploded")
	}
	if f.fail || f.failFor[string(target)] {
		return "", errors.New("provider unavailable")
	}
	if source == target {
		return text, nil
	}
	if f.translated != nil {
		return f.translated(text, source, target), nil
	}
	return fmt.Sprintf("[%s]%s", target, text), nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestOrchestratorRun(t *testing.T) {
	provider := &fakeProvider{}
	orch := NewOrchestrator(provider, 3, discardLogger())

	requests := []Request{
		{Key: "title_en", Text: "Розробка сайту", Source: langcode.UK, Target: langcode.EN},
		{Key: "title_pl", Text: "Розробка сайту", Source: langcode.UK, Target: langcode.PL},
		{Key: "title_fr", Text: "Розробка сайту", Source: langcode.UK, Target: langcode.FR},
		{Key: "title_de", Text: "Розробка сайту", Source: langcode.UK, Target: langcode.DE},
	}

	results := orch.Run(context.Background(), requests)

	if len(results) != len(requests) {
		t.Fatalf("got %d results, want %d", len(results), len(requests))
	}
	for _, req := range requests {
		want := fmt.Sprintf("[%s]%s", req.Target, req.Text)
		if results[req.Key] != want {
			t.Errorf("results[%q] = %q, want %q", req.Key, results[req.Key], want)
		}
	}
	if provider.callCount() != len(requests) {
		t.Errorf("provider calls = %d, want %d", provider.callCount(), len(requests))
	}
}

func TestOrchestratorEmptyBatch(t *testing.T) {
	provider := &fakeProvider{}
	orch := NewOrchestrator(provider, 3, discardLogger())

	results := orch.Run(context.Background(), nil)

	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
	if provider.callCount() != 0 {
		t.Errorf("provider calls = %d, want 0", provider.callCount())
	}
}

func TestOrchestratorConcurrencyCap(t *testing.T) {
	provider := &fakeProvider{delay: 20 * time.Millisecond}
	orch := NewOrchestrator(provider, 2, discardLogger())

	var requests []Request
	for i, lang := range []langcode.Code{langcode.EN, langcode.PL, langcode.FR, langcode.DE} {
		requests = append(requests, Request{
			Key:    fmt.Sprintf("g%d_%s", i, lang),
			Text:   "текст",
			Source: langcode.UK,
			Target: lang,
		})
	}

	orch.Run(context.Background(), requests)

	if seen := atomic.LoadInt32(&provider.maxSeen); seen > 2 {
		t.Errorf("max in-flight calls = %d, want <= 2", seen)
	}
}

func TestOrchestratorFallbackOnFailure(t *testing.T) {
	provider := &fakeProvider{fail: true}
	orch := NewOrchestrator(provider, 3, discardLogger())

	results := orch.Run(context.Background(), []Request{
		{Key: "title_en", Text: "Розробка сайту", Source: langcode.UK, Target: langcode.EN},
	})

	if results["title_en"] != "Розробка сайту" {
		t.Errorf("failed translation = %q, want source text fallback", results["title_en"])
	}
}

func TestOrchestratorPartialFailure(t *testing.T) {
	provider := &fakeProvider{failFor: map[string]bool{"pl": true}}
	orch := NewOrchestrator(provider, 3, discardLogger())

	results := orch.Run(context.Background(), []Request{
		{Key: "title_en", Text: "Тест", Source: langcode.UK, Target: langcode.EN},
		{Key: "title_pl", Text: "Тест", Source: langcode.UK, Target: langcode.PL},
	})

	if !strings.HasPrefix(results["title_en"], "[en]") {
		t.Errorf("title_en = %q, want translated", results["title_en"])
	}
	if results["title_pl"] != "Тест" {
		t.Errorf("title_pl = %q, want source text fallback", results["title_pl"])
	}
}

func TestOrchestratorRecoversPanic(t *testing.T) {
	provider := &fakeProvider{panicOn: "бомба"}
	orch := NewOrchestrator(provider, 3, discardLogger())

	results := orch.Run(context.Background(), []Request{
		{Key: "title_en", Text: "бомба", Source: langcode.UK, Target: langcode.EN},
		{Key: "title_pl", Text: "ок", Source: langcode.UK, Target: langcode.PL},
	})

	if results["title_en"] != "бомба" {
		t.Errorf("panicked translation = %q, want source text fallback", results["title_en"])
	}
	if results["title_pl"] != "[pl]ок" {
		t.Errorf("title_pl = %q, want translated", results["title_pl"])
	}
}
