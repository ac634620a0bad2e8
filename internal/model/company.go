// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

// Company is a registered performer organization.
type Company struct {
	ID          int64         `json:"id"`
	Name        langcode.Text `json:"name"`
	Description langcode.Text `json:"description"`
	Slugs       langcode.Text `json:"slugs"`

	OwnerID    *int64  `json:"owner_id,omitempty"`
	Categories []int64 `json:"categories,omitempty"`

	AutoTranslatedFields []string `json:"auto_translated_fields,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
