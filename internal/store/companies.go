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

var companyCols = fmt.Sprintf(
	"id, %s, %s, %s, owner_id, categories, auto_translated_fields, created_at, updated_at",
	localizedCols("name"), localizedCols("description"), localizedCols("slug"))

// CreateCompany inserts a company and returns the assigned ID.
func (q *Queries) CreateCompany(ctx context.Context, company *model.Company) (int64, error) {
	categories, err := jsonText(company.Categories)
	if err != nil {
		return 0, err
	}
	autoFields, err := jsonText(company.AutoTranslatedFields)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		INSERT INTO companies (%s, %s, %s, owner_id, categories,
			auto_translated_fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		localizedCols("name"), localizedCols("description"), localizedCols("slug"))

	now := time.Now()
	args := localizedArgs(company.Name)
	args = append(args, localizedArgs(company.Description)...)
	args = append(args, localizedArgs(company.Slugs)...)
	args = append(args, company.OwnerID, categories, autoFields, now, now)

	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("creating company: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("creating company: %w", err)
	}
	company.CreatedAt = now
	company.UpdatedAt = now
	return id, nil
}

// GetCompanyByID fetches one company.
func (q *Queries) GetCompanyByID(ctx context.Context, id int64) (*model.Company, error) {
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM companies WHERE id = ?", companyCols), id)
	return scanCompany(row)
}

// ListCompanies returns companies newest-first.
func (q *Queries) ListCompanies(ctx context.Context, limit, offset int) ([]model.Company, error) {
	rows, err := q.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM companies ORDER BY created_at DESC LIMIT ? OFFSET ?", companyCols),
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var companies []model.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *company)
	}
	return companies, rows.Err()
}

// UpdateCompanyLocalization overwrites a company's localized fields, slugs
// and translation bookkeeping by primary key.
func (q *Queries) UpdateCompanyLocalization(ctx context.Context, company *model.Company) error {
	autoFields, err := jsonText(company.AutoTranslatedFields)
	if err != nil {
		return err
	}

	query := `
		UPDATE companies SET
			name_uk = ?, name_en = ?, name_pl = ?, name_fr = ?, name_de = ?,
			description_uk = ?, description_en = ?, description_pl = ?,
			description_fr = ?, description_de = ?,
			slug_uk = ?, slug_en = ?, slug_pl = ?, slug_fr = ?, slug_de = ?,
			auto_translated_fields = ?, updated_at = ?
		WHERE id = ?`

	now := time.Now()
	args := localizedArgs(company.Name)
	args = append(args, localizedArgs(company.Description)...)
	args = append(args, localizedArgs(company.Slugs)...)
	args = append(args, autoFields, now, company.ID)

	if _, err := q.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating company %d localization: %w", company.ID, err)
	}
	company.UpdatedAt = now
	return nil
}

// DeleteCompany removes a company.
func (q *Queries) DeleteCompany(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, "DELETE FROM companies WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting company %d: %w", id, err)
	}
	return nil
}

func scanCompany(row rowScanner) (*model.Company, error) {
	var (
		company                  model.Company
		name, description, slugs localizedScanner
		categories, autoF        sql.NullString
		ownerID                  sql.NullInt64
	)

	dest := []any{&company.ID}
	dest = append(dest, name.dest()...)
	dest = append(dest, description.dest()...)
	dest = append(dest, slugs.dest()...)
	dest = append(dest, &ownerID, &categories, &autoF, &company.CreatedAt, &company.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning company: %w", err)
	}

	company.Name = name.text()
	company.Description = description.text()
	company.Slugs = slugs.text()
	if ownerID.Valid {
		company.OwnerID = &ownerID.Int64
	}

	var err error
	if company.Categories, err = jsonSlice[int64](categories); err != nil {
		return nil, err
	}
	if company.AutoTranslatedFields, err = jsonSlice[string](autoF); err != nil {
		return nil, err
	}
	return &company, nil
}
