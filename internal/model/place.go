// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

// Country is seeded geographic reference data. Names and slugs come
// pre-localized from the migration; no translation pipeline runs here.
type Country struct {
	ID    int64         `json:"id"`
	Name  langcode.Text `json:"name"`
	Slugs langcode.Text `json:"slugs,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// City belongs to a Country.
type City struct {
	ID        int64         `json:"id"`
	CountryID int64         `json:"country_id"`
	Name      langcode.Text `json:"name"`
	Slugs     langcode.Text `json:"slugs,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
