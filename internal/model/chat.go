// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Chat is a private conversation between two users. The pair is stored
// normalized (User1ID < User2ID) so one row covers both directions.
type Chat struct {
	ID      int64 `json:"id"`
	User1ID int64 `json:"user1_id"`
	User2ID int64 `json:"user2_id"`

	CreatedAt time.Time `json:"created_at"`
}

// Partner returns the other side of the conversation.
func (c *Chat) Partner(userID int64) int64 {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// Involves reports whether the user participates in the chat.
func (c *Chat) Involves(userID int64) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// Message is one chat entry. Either Content or File must be set; File is
// an opaque reference managed by the upload layer, like bid attachments.
type Message struct {
	ID       int64  `json:"id"`
	ChatID   int64  `json:"chat_id"`
	SenderID int64  `json:"sender_id"`
	Content  string `json:"content,omitempty"`
	File     string `json:"file,omitempty"`
	IsRead   bool   `json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
