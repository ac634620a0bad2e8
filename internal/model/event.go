// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Event log levels.
const (
	EventWarning = "warning"
	EventError   = "error"
)

// Event is a persisted log record. WARN and ERROR level slog records are
// mirrored here so operators can audit failures (translation outages,
// provider errors) without shell access to the process logs.
type Event struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Source    string    `json:"source"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
