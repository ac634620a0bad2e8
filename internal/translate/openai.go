// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

// OpenAIProvider translates through the OpenAI chat completions API.
// Useful when translation quality matters more than latency, e.g. blog
// articles; bids and profiles normally use GoogleProvider.
type OpenAIProvider struct {
	client      openai.Client
	model       string
	callTimeout time.Duration
}

// OpenAIOptions configures an OpenAIProvider.
type OpenAIOptions struct {
	APIKey      string
	Model       string        // default gpt-4o-mini
	CallTimeout time.Duration // per-call deadline, default 30s
}

// NewOpenAIProvider creates an OpenAI backed provider.
func NewOpenAIProvider(opts OpenAIOptions) *OpenAIProvider {
	if opts.Model == "" {
		opts.Model = openai.ChatModelGPT4oMini
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 30 * time.Second
	}
	return &OpenAIProvider{
		client:      openai.NewClient(option.WithAPIKey(opts.APIKey)),
		model:       opts.Model,
		callTimeout: opts.CallTimeout,
	}
}

// Translate implements Provider.
func (p *OpenAIProvider) Translate(ctx context.Context, text string, source, target langcode.Code) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if source == target {
		return text, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	system := fmt.Sprintf(
		"You are a professional translator. Translate the user's text from %s to %s. "+
			"Preserve meaning, tone and any HTML markup. "+
			"Respond with the translated text only, no explanations.",
		LanguageName(source), LanguageName(target))

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(text),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return "", fmt.Errorf("openai translate %s->%s: %w", source, target, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai translate: no choices returned")
	}

	translated := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translated == "" {
		return "", fmt.Errorf("openai translate: empty result for %s->%s", source, target)
	}
	return translated, nil
}
