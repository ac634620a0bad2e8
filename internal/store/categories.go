// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ykovalchuk/maisterni/internal/model"
)

var (
	categoryCols = fmt.Sprintf(
		"id, key, %s, %s, auto_translated_fields, created_at, updated_at",
		localizedCols("name"), localizedCols("slug"))
	underCategoryCols = fmt.Sprintf(
		"id, category_id, %s, %s, auto_translated_fields, created_at, updated_at",
		localizedCols("name"), localizedCols("slug"))
)

// CreateCategory inserts a category and returns the assigned ID.
func (q *Queries) CreateCategory(ctx context.Context, category *model.Category) (int64, error) {
	autoFields, err := jsonText(category.AutoTranslatedFields)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		INSERT INTO categories (key, %s, %s, auto_translated_fields,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		localizedCols("name"), localizedCols("slug"))

	now := time.Now()
	args := []any{category.Key}
	args = append(args, localizedArgs(category.Name)...)
	args = append(args, localizedArgs(category.Slugs)...)
	args = append(args, autoFields, now, now)

	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("creating category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("creating category: %w", err)
	}
	category.CreatedAt = now
	category.UpdatedAt = now
	return id, nil
}

// GetCategoryByID fetches one category.
func (q *Queries) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM categories WHERE id = ?", categoryCols), id)
	return scanCategory(row)
}

// ListCategories returns all categories ordered by key.
func (q *Queries) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM categories ORDER BY key", categoryCols))
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

// UpdateCategoryLocalization overwrites a category's names, slugs and
// translation bookkeeping by primary key.
func (q *Queries) UpdateCategoryLocalization(ctx context.Context, category *model.Category) error {
	autoFields, err := jsonText(category.AutoTranslatedFields)
	if err != nil {
		return err
	}

	query := `
		UPDATE categories SET
			name_uk = ?, name_en = ?, name_pl = ?, name_fr = ?, name_de = ?,
			slug_uk = ?, slug_en = ?, slug_pl = ?, slug_fr = ?, slug_de = ?,
			auto_translated_fields = ?, updated_at = ?
		WHERE id = ?`

	now := time.Now()
	args := localizedArgs(category.Name)
	args = append(args, localizedArgs(category.Slugs)...)
	args = append(args, autoFields, now, category.ID)

	if _, err := q.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating category %d localization: %w", category.ID, err)
	}
	category.UpdatedAt = now
	return nil
}

// CreateUnderCategory inserts a subsection and returns the assigned ID.
func (q *Queries) CreateUnderCategory(ctx context.Context, uc *model.UnderCategory) (int64, error) {
	autoFields, err := jsonText(uc.AutoTranslatedFields)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		INSERT INTO under_categories (category_id, %s, %s,
			auto_translated_fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		localizedCols("name"), localizedCols("slug"))

	now := time.Now()
	args := []any{uc.CategoryID}
	args = append(args, localizedArgs(uc.Name)...)
	args = append(args, localizedArgs(uc.Slugs)...)
	args = append(args, autoFields, now, now)

	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("creating under-category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("creating under-category: %w", err)
	}
	uc.CreatedAt = now
	uc.UpdatedAt = now
	return id, nil
}

// GetUnderCategoryByID fetches one subsection.
func (q *Queries) GetUnderCategoryByID(ctx context.Context, id int64) (*model.UnderCategory, error) {
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM under_categories WHERE id = ?", underCategoryCols), id)
	return scanUnderCategory(row)
}

// ListUnderCategories returns a category's subsections.
func (q *Queries) ListUnderCategories(ctx context.Context, categoryID int64) ([]model.UnderCategory, error) {
	rows, err := q.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM under_categories WHERE category_id = ? ORDER BY id", underCategoryCols),
		categoryID)
	if err != nil {
		return nil, fmt.Errorf("listing under-categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ucs []model.UnderCategory
	for rows.Next() {
		uc, err := scanUnderCategory(rows)
		if err != nil {
			return nil, err
		}
		ucs = append(ucs, *uc)
	}
	return ucs, rows.Err()
}

// UpdateUnderCategoryLocalization overwrites a subsection's names, slugs
// and translation bookkeeping by primary key.
func (q *Queries) UpdateUnderCategoryLocalization(ctx context.Context, uc *model.UnderCategory) error {
	autoFields, err := jsonText(uc.AutoTranslatedFields)
	if err != nil {
		return err
	}

	query := `
		UPDATE under_categories SET
			name_uk = ?, name_en = ?, name_pl = ?, name_fr = ?, name_de = ?,
			slug_uk = ?, slug_en = ?, slug_pl = ?, slug_fr = ?, slug_de = ?,
			auto_translated_fields = ?, updated_at = ?
		WHERE id = ?`

	now := time.Now()
	args := localizedArgs(uc.Name)
	args = append(args, localizedArgs(uc.Slugs)...)
	args = append(args, autoFields, now, uc.ID)

	if _, err := q.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating under-category %d localization: %w", uc.ID, err)
	}
	uc.UpdatedAt = now
	return nil
}

func scanCategory(row rowScanner) (*model.Category, error) {
	var (
		category    model.Category
		name, slugs localizedScanner
		autoF       sql.NullString
	)

	dest := []any{&category.ID, &category.Key}
	dest = append(dest, name.dest()...)
	dest = append(dest, slugs.dest()...)
	dest = append(dest, &autoF, &category.CreatedAt, &category.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning category: %w", err)
	}

	category.Name = name.text()
	category.Slugs = slugs.text()

	var err error
	if category.AutoTranslatedFields, err = jsonSlice[string](autoF); err != nil {
		return nil, err
	}
	return &category, nil
}

func scanUnderCategory(row rowScanner) (*model.UnderCategory, error) {
	var (
		uc          model.UnderCategory
		name, slugs localizedScanner
		autoF       sql.NullString
	)

	dest := []any{&uc.ID, &uc.CategoryID}
	dest = append(dest, name.dest()...)
	dest = append(dest, slugs.dest()...)
	dest = append(dest, &autoF, &uc.CreatedAt, &uc.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning under-category: %w", err)
	}

	uc.Name = name.text()
	uc.Slugs = slugs.text()

	var err error
	if uc.AutoTranslatedFields, err = jsonSlice[string](autoF); err != nil {
		return nil, err
	}
	return &uc, nil
}
