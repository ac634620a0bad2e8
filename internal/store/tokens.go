// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"
)

// CreateAuthToken stores a hashed bearer token for the user.
func (q *Queries) CreateAuthToken(ctx context.Context, tokenHash string, userID int64, expiresAt time.Time) error {
	if _, err := q.db.ExecContext(ctx,
		"INSERT INTO auth_tokens (token_hash, user_id, expires_at) VALUES (?, ?, ?)",
		tokenHash, userID, expiresAt.UTC()); err != nil {
		return fmt.Errorf("creating auth token: %w", err)
	}
	return nil
}

// GetUserIDByAuthToken resolves an unexpired token hash to its user.
func (q *Queries) GetUserIDByAuthToken(ctx context.Context, tokenHash string) (int64, error) {
	var userID int64
	err := q.db.QueryRowContext(ctx,
		"SELECT user_id FROM auth_tokens WHERE token_hash = ? AND expires_at > ?",
		tokenHash, time.Now().UTC()).Scan(&userID)
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// DeleteAuthToken revokes one token.
func (q *Queries) DeleteAuthToken(ctx context.Context, tokenHash string) error {
	if _, err := q.db.ExecContext(ctx,
		"DELETE FROM auth_tokens WHERE token_hash = ?", tokenHash); err != nil {
		return fmt.Errorf("deleting auth token: %w", err)
	}
	return nil
}

// DeleteExpiredAuthTokens drops tokens past their expiry.
func (q *Queries) DeleteExpiredAuthTokens(ctx context.Context) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		"DELETE FROM auth_tokens WHERE expires_at <= ?", time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("deleting expired auth tokens: %w", err)
	}
	return res.RowsAffected()
}
