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

var bidCols = fmt.Sprintf(
	"id, %s, %s, %s, categories, under_categories, budget, budget_type, "+
		"author_id, files, auto_translated_fields, translation_pending, "+
		"delete_token, created_at, updated_at",
	localizedCols("title"), localizedCols("description"), localizedCols("slug"))

// CreateBid inserts a bid and returns it with the assigned ID.
func (q *Queries) CreateBid(ctx context.Context, bid *model.Bid) (int64, error) {
	categories, err := jsonText(bid.Categories)
	if err != nil {
		return 0, err
	}
	underCategories, err := jsonText(bid.UnderCategories)
	if err != nil {
		return 0, err
	}
	files, err := jsonText(bid.Files)
	if err != nil {
		return 0, err
	}
	autoFields, err := jsonText(bid.AutoTranslatedFields)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		INSERT INTO bids (%s, %s, %s, categories, under_categories, budget,
			budget_type, author_id, files, auto_translated_fields,
			translation_pending, delete_token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		localizedCols("title"), localizedCols("description"), localizedCols("slug"))

	// Timestamps go through the insert so the returned model matches the
	// row exactly.
	now := time.Now()
	args := localizedArgs(bid.Title)
	args = append(args, localizedArgs(bid.Description)...)
	args = append(args, localizedArgs(bid.Slugs)...)
	args = append(args, categories, underCategories, nullStr(bid.Budget),
		nullStr(bid.BudgetType), bid.AuthorID, files, autoFields,
		bid.TranslationPending, nullStr(bid.DeleteToken), now, now)

	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("creating bid: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("creating bid: %w", err)
	}
	bid.CreatedAt = now
	bid.UpdatedAt = now
	return id, nil
}

// GetBidByID fetches one bid.
func (q *Queries) GetBidByID(ctx context.Context, id int64) (*model.Bid, error) {
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM bids WHERE id = ?", bidCols), id)
	return scanBid(row)
}

// GetBidByDeleteToken fetches the bid owning the given deletion token.
func (q *Queries) GetBidByDeleteToken(ctx context.Context, token string) (*model.Bid, error) {
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM bids WHERE delete_token = ?", bidCols), token)
	return scanBid(row)
}

// ListBids returns bids newest-first.
func (q *Queries) ListBids(ctx context.Context, limit, offset int) ([]model.Bid, error) {
	rows, err := q.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM bids ORDER BY created_at DESC LIMIT ? OFFSET ?", bidCols),
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing bids: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return collectBids(rows)
}

// ListPendingTranslationBids returns bids created through the fast path
// whose background translation has not finished.
func (q *Queries) ListPendingTranslationBids(ctx context.Context, limit int) ([]model.Bid, error) {
	rows, err := q.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM bids WHERE translation_pending = 1 ORDER BY created_at LIMIT ?", bidCols),
		limit)
	if err != nil {
		return nil, fmt.Errorf("listing pending bids: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return collectBids(rows)
}

// UpdateBidLocalization overwrites a bid's localized fields, slugs and
// translation bookkeeping by primary key. This is the idempotent partial
// update the fast path relies on: it touches no other columns, so a
// background back-fill cannot clobber concurrent edits to budget or files.
func (q *Queries) UpdateBidLocalization(ctx context.Context, bid *model.Bid) error {
	autoFields, err := jsonText(bid.AutoTranslatedFields)
	if err != nil {
		return err
	}

	query := `
		UPDATE bids SET
			title_uk = ?, title_en = ?, title_pl = ?, title_fr = ?, title_de = ?,
			description_uk = ?, description_en = ?, description_pl = ?,
			description_fr = ?, description_de = ?,
			slug_uk = ?, slug_en = ?, slug_pl = ?, slug_fr = ?, slug_de = ?,
			auto_translated_fields = ?, translation_pending = ?, updated_at = ?
		WHERE id = ?`

	now := time.Now()
	args := localizedArgs(bid.Title)
	args = append(args, localizedArgs(bid.Description)...)
	args = append(args, localizedArgs(bid.Slugs)...)
	args = append(args, autoFields, bid.TranslationPending, now, bid.ID)

	if _, err := q.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating bid %d localization: %w", bid.ID, err)
	}
	bid.UpdatedAt = now
	return nil
}

// DeleteBid removes a bid.
func (q *Queries) DeleteBid(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, "DELETE FROM bids WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting bid %d: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBid(row rowScanner) (*model.Bid, error) {
	var (
		bid                                       model.Bid
		title, description, slugs                 localizedScanner
		categories, underCategories, files, autoF sql.NullString
		budget, budgetType, deleteToken           sql.NullString
		authorID                                  sql.NullInt64
	)

	dest := []any{&bid.ID}
	dest = append(dest, title.dest()...)
	dest = append(dest, description.dest()...)
	dest = append(dest, slugs.dest()...)
	dest = append(dest, &categories, &underCategories, &budget, &budgetType,
		&authorID, &files, &autoF, &bid.TranslationPending,
		&deleteToken, &bid.CreatedAt, &bid.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning bid: %w", err)
	}

	bid.Title = title.text()
	bid.Description = description.text()
	bid.Slugs = slugs.text()
	bid.Budget = strOrEmpty(budget)
	bid.BudgetType = strOrEmpty(budgetType)
	bid.DeleteToken = strOrEmpty(deleteToken)
	if authorID.Valid {
		bid.AuthorID = &authorID.Int64
	}

	var err error
	if bid.Categories, err = jsonSlice[int64](categories); err != nil {
		return nil, err
	}
	if bid.UnderCategories, err = jsonSlice[int64](underCategories); err != nil {
		return nil, err
	}
	if bid.Files, err = jsonSlice[string](files); err != nil {
		return nil, err
	}
	if bid.AutoTranslatedFields, err = jsonSlice[string](autoF); err != nil {
		return nil, err
	}
	return &bid, nil
}

func collectBids(rows *sql.Rows) ([]model.Bid, error) {
	var bids []model.Bid
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		bids = append(bids, *bid)
	}
	return bids, rows.Err()
}
