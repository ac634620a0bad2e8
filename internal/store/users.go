// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ykovalchuk/maisterni/internal/langcode"
	"github.com/ykovalchuk/maisterni/internal/model"
)

var userCols = fmt.Sprintf(
	"id, name, email, password_hash, role, kind, language, nickname, avatar, "+
		"%s, %s, %s, auto_translated_fields, created_at, updated_at",
	localizedCols("company_name"), localizedCols("company_description"), localizedCols("slug"))

// CreateUser inserts a user and returns the assigned ID.
func (q *Queries) CreateUser(ctx context.Context, user *model.User) (int64, error) {
	autoFields, err := jsonText(user.AutoTranslatedFields)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		INSERT INTO users (name, email, password_hash, role, kind, language,
			nickname, avatar, %s, %s, %s, auto_translated_fields,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		localizedCols("company_name"), localizedCols("company_description"), localizedCols("slug"))

	now := time.Now()
	args := []any{user.Name, user.Email, user.PasswordHash, user.Role,
		user.Kind, string(user.Language), nullStr(user.Nickname), nullStr(user.Avatar)}
	args = append(args, localizedArgs(user.CompanyName)...)
	args = append(args, localizedArgs(user.CompanyDescription)...)
	args = append(args, localizedArgs(user.Slugs)...)
	args = append(args, autoFields, now, now)

	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("creating user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("creating user: %w", err)
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	return id, nil
}

// GetUserByID fetches one user.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE id = ?", userCols), id)
	return scanUser(row)
}

// GetUserByEmail fetches a user by unique email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE email = ?", userCols), email)
	return scanUser(row)
}

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	if _, err := q.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?",
		passwordHash, time.Now(), id); err != nil {
		return fmt.Errorf("updating user %d password: %w", id, err)
	}
	return nil
}

// UpdateUserProfileLocalization overwrites a user's localized company
// profile, slugs and translation bookkeeping by primary key.
func (q *Queries) UpdateUserProfileLocalization(ctx context.Context, user *model.User) error {
	autoFields, err := jsonText(user.AutoTranslatedFields)
	if err != nil {
		return err
	}

	query := `
		UPDATE users SET
			company_name_uk = ?, company_name_en = ?, company_name_pl = ?,
			company_name_fr = ?, company_name_de = ?,
			company_description_uk = ?, company_description_en = ?,
			company_description_pl = ?, company_description_fr = ?,
			company_description_de = ?,
			slug_uk = ?, slug_en = ?, slug_pl = ?, slug_fr = ?, slug_de = ?,
			auto_translated_fields = ?, updated_at = ?
		WHERE id = ?`

	now := time.Now()
	args := localizedArgs(user.CompanyName)
	args = append(args, localizedArgs(user.CompanyDescription)...)
	args = append(args, localizedArgs(user.Slugs)...)
	args = append(args, autoFields, now, user.ID)

	if _, err := q.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating user %d profile localization: %w", user.ID, err)
	}
	user.UpdatedAt = now
	return nil
}

func scanUser(row rowScanner) (*model.User, error) {
	var (
		user                                    model.User
		companyName, companyDescription, slugs  localizedScanner
		nickname, avatar, autoF                 sql.NullString
		language                                string
	)

	dest := []any{&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.Kind, &language, &nickname, &avatar}
	dest = append(dest, companyName.dest()...)
	dest = append(dest, companyDescription.dest()...)
	dest = append(dest, slugs.dest()...)
	dest = append(dest, &autoF, &user.CreatedAt, &user.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	user.Language = langcode.Code(language)
	user.Nickname = strOrEmpty(nickname)
	user.Avatar = strOrEmpty(avatar)
	user.CompanyName = companyName.text()
	user.CompanyDescription = companyDescription.text()
	user.Slugs = slugs.text()

	var err error
	if user.AutoTranslatedFields, err = jsonSlice[string](autoF); err != nil {
		return nil, err
	}
	return &user, nil
}
