// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translate fills missing language variants of localized entity
// fields through an external machine-translation provider. It bounds
// provider concurrency, degrades failed translations to the source text,
// and reports which fields were machine-filled.
package translate

import (
	"context"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

// Provider ID constants for supported translation backends.
const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
)

// Provider translates a single text between two supported languages.
//
// Implementations must treat source == target as the identity function
// without a network call, and must honor ctx cancellation. A failed call
// returns an empty string and an error; callers above the orchestrator
// never see that error surface.
type Provider interface {
	Translate(ctx context.Context, text string, source, target langcode.Code) (string, error)
}

// languageNames is used by prompt-based providers.
var languageNames = map[langcode.Code]string{
	langcode.UK: "Ukrainian",
	langcode.EN: "English",
	langcode.PL: "Polish",
	langcode.FR: "French",
	langcode.DE: "German",
}

// LanguageName returns the English display name for a supported code.
func LanguageName(code langcode.Code) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return string(code)
}
