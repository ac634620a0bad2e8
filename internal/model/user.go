// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

// User roles.
const (
	RoleUser  = 0
	RoleAdmin = 1
)

// Marketplace-side user kinds.
const (
	UserKindCustomer  = "customer"
	UserKindPerformer = "performer"
)

// User is a marketplace account. Performers may attach a localized company
// profile directly to their account; those fields run through the same
// translation pipeline as standalone companies.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`

	Role     int           `json:"role"`
	Kind     string        `json:"kind"`
	Language langcode.Code `json:"language"`

	Nickname string `json:"nickname,omitempty"`
	Avatar   string `json:"avatar,omitempty"`

	CompanyName        langcode.Text `json:"company_name,omitempty"`
	CompanyDescription langcode.Text `json:"company_description,omitempty"`
	Slugs              langcode.Text `json:"slugs,omitempty"`

	AutoTranslatedFields []string `json:"auto_translated_fields,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user may moderate content.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HashAuthToken hashes a bearer token for storage. Only the hash ever
// touches the database.
func HashAuthToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
