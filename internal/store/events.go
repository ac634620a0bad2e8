// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/ykovalchuk/maisterni/internal/model"
)

// InsertEvent appends a record to the event log.
func (q *Queries) InsertEvent(ctx context.Context, level, source, message string) error {
	if _, err := q.db.ExecContext(ctx,
		"INSERT INTO events (level, source, message) VALUES (?, ?, ?)",
		level, source, message); err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// ListEvents returns recent event log records, newest-first.
func (q *Queries) ListEvents(ctx context.Context, limit int) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, level, source, message, created_at FROM events ORDER BY id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Source, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
