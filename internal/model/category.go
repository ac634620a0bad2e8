// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

// Category is a top-level service catalog section.
type Category struct {
	ID int64 `json:"id"`

	// Key is the stable machine identifier ("web-development"), unique
	// across categories and independent of any display language.
	Key string `json:"key"`

	Name  langcode.Text `json:"name"`
	Slugs langcode.Text `json:"slugs"`

	AutoTranslatedFields []string `json:"auto_translated_fields,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UnderCategory is a second-level catalog section inside a Category.
type UnderCategory struct {
	ID         int64 `json:"id"`
	CategoryID int64 `json:"category_id"`

	Name  langcode.Text `json:"name"`
	Slugs langcode.Text `json:"slugs"`

	AutoTranslatedFields []string `json:"auto_translated_fields,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
