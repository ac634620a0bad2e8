// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

// Article is a blog post. Unlike most entities, articles are authored in
// Ukrainian first: title, content, description and keywords all translate
// from uk regardless of which other variants are filled.
type Article struct {
	ID          int64         `json:"id"`
	Title       langcode.Text `json:"title"`
	Content     langcode.Text `json:"content"`
	Description langcode.Text `json:"description"`
	Keywords    langcode.Text `json:"keywords"`
	Slugs       langcode.Text `json:"slugs"`

	FeaturedImage string `json:"featured_image,omitempty"`
	Published     bool   `json:"published"`
	AuthorID      *int64 `json:"author_id,omitempty"`

	AutoTranslatedFields []string `json:"auto_translated_fields,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
