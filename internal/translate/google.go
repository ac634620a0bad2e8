// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

const (
	googleEndpoint = "https://translate.googleapis.com/translate_a/single"

	// defaultCallTimeout bounds a single provider round-trip. External HTTP
	// without a deadline would let one slow call stall a whole batch.
	defaultCallTimeout = 10 * time.Second
)

// GoogleProvider translates through the public Google Translate endpoint.
// Requests are rate-limited client-side to stay under the endpoint's
// unofficial quota.
type GoogleProvider struct {
	endpoint    string
	client      *http.Client
	limiter     *rate.Limiter
	callTimeout time.Duration
}

// GoogleOptions configures a GoogleProvider.
type GoogleOptions struct {
	CallTimeout time.Duration // per-call deadline, default 10s
	RateLimit   rate.Limit    // requests per second, default 5
	Burst       int           // default 5
}

// NewGoogleProvider creates a Google Translate backed provider.
func NewGoogleProvider(opts GoogleOptions) *GoogleProvider {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = defaultCallTimeout
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5
	}
	if opts.Burst <= 0 {
		opts.Burst = 5
	}
	return &GoogleProvider{
		endpoint:    googleEndpoint,
		client:      &http.Client{Timeout: opts.CallTimeout},
		limiter:     rate.NewLimiter(opts.RateLimit, opts.Burst),
		callTimeout: opts.CallTimeout,
	}
}

// Translate implements Provider.
func (p *GoogleProvider) Translate(ctx context.Context, text string, source, target langcode.Code) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if source == target {
		return text, nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("google translate rate wait: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", string(source))
	query.Set("tl", string(target))
	query.Set("dt", "t")
	query.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("google translate request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("google translate call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google translate status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("google translate read: %w", err)
	}

	translated, err := parseGoogleResponse(body)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(translated) == "" {
		return "", fmt.Errorf("google translate: empty result for %s->%s", source, target)
	}
	return translated, nil
}

// parseGoogleResponse extracts translated text from the gtx response shape:
// [[["translated","original",...],...],null,"sl",...]. Long inputs come back
// split into several chunks that concatenate in order.
func parseGoogleResponse(body []byte) (string, error) {
	var raw []any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("google translate decode: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("google translate: empty response")
	}

	chunks, ok := raw[0].([]any)
	if !ok {
		return "", fmt.Errorf("google translate: unexpected response shape")
	}

	var b strings.Builder
	for _, chunk := range chunks {
		parts, ok := chunk.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			b.WriteString(s)
		}
	}
	return b.String(), nil
}
