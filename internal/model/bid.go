// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the marketplace domain entities. Localized fields
// are maps keyed by language code rather than parallel named attributes;
// the store layer flattens them into per-language columns.
package model

import (
	"time"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

// Budget type values for bids.
const (
	BudgetFixed  = "fixed"
	BudgetHourly = "hourly"
)

// Bid is a service request posted by a customer.
type Bid struct {
	ID          int64         `json:"id"`
	Title       langcode.Text `json:"title"`
	Description langcode.Text `json:"description"`
	Slugs       langcode.Text `json:"slugs"`

	Categories      []int64 `json:"categories,omitempty"`
	UnderCategories []int64 `json:"under_categories,omitempty"`

	Budget     string `json:"budget,omitempty"`
	BudgetType string `json:"budget_type,omitempty"`

	AuthorID *int64   `json:"author_id,omitempty"`
	Files    []string `json:"files,omitempty"`

	// AutoTranslatedFields lists "{group}_{lang}" keys filled by machine
	// translation; the UI renders a badge next to them.
	AutoTranslatedFields []string `json:"auto_translated_fields,omitempty"`

	// TranslationPending marks a bid created through the fast path whose
	// background translation has not completed yet.
	TranslationPending bool `json:"translation_pending,omitempty"`

	DeleteToken string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
