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

const (
	chatCols    = "id, user1_id, user2_id, created_at"
	messageCols = "id, chat_id, sender_id, content, file, is_read, created_at"
)

// CreateChat inserts a conversation. Callers pass the user pair already
// normalized (user1 < user2); the unique index rejects duplicates.
func (q *Queries) CreateChat(ctx context.Context, chat *model.Chat) (int64, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx,
		"INSERT INTO chats (user1_id, user2_id, created_at) VALUES (?, ?, ?)",
		chat.User1ID, chat.User2ID, now)
	if err != nil {
		return 0, fmt.Errorf("creating chat: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("creating chat: %w", err)
	}
	chat.CreatedAt = now
	return id, nil
}

// GetChatByID fetches one conversation.
func (q *Queries) GetChatByID(ctx context.Context, id int64) (*model.Chat, error) {
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM chats WHERE id = ?", chatCols), id)
	return scanChat(row)
}

// GetChatByUsers fetches the conversation of a normalized user pair.
func (q *Queries) GetChatByUsers(ctx context.Context, user1ID, user2ID int64) (*model.Chat, error) {
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM chats WHERE user1_id = ? AND user2_id = ?", chatCols),
		user1ID, user2ID)
	return scanChat(row)
}

// ListChatsForUser returns every conversation the user participates in.
func (q *Queries) ListChatsForUser(ctx context.Context, userID int64) ([]model.Chat, error) {
	rows, err := q.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM chats WHERE user1_id = ? OR user2_id = ?", chatCols),
		userID, userID)
	if err != nil {
		return nil, fmt.Errorf("listing chats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chats []model.Chat
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		chats = append(chats, *chat)
	}
	return chats, rows.Err()
}

// CreateMessage inserts a message.
func (q *Queries) CreateMessage(ctx context.Context, msg *model.Message) (int64, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx,
		"INSERT INTO messages (chat_id, sender_id, content, file, is_read, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		msg.ChatID, msg.SenderID, nullStr(msg.Content), nullStr(msg.File), msg.IsRead, now)
	if err != nil {
		return 0, fmt.Errorf("creating message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("creating message: %w", err)
	}
	msg.CreatedAt = now
	return id, nil
}

// GetMessageByID fetches one message.
func (q *Queries) GetMessageByID(ctx context.Context, id int64) (*model.Message, error) {
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM messages WHERE id = ?", messageCols), id)
	return scanMessage(row)
}

// ListMessages returns a conversation's messages, newest first.
func (q *Queries) ListMessages(ctx context.Context, chatID int64, limit, offset int) ([]model.Message, error) {
	rows, err := q.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM messages WHERE chat_id = ? ORDER BY id DESC LIMIT ? OFFSET ?", messageCols),
		chatID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []model.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}
	return messages, rows.Err()
}

// GetLatestMessage returns a conversation's most recent message, or
// ErrNotFound for an empty chat.
func (q *Queries) GetLatestMessage(ctx context.Context, chatID int64) (*model.Message, error) {
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM messages WHERE chat_id = ? ORDER BY id DESC LIMIT 1", messageCols),
		chatID)
	return scanMessage(row)
}

// MarkMessagesRead flags every message in the chat not sent by reader as
// read.
func (q *Queries) MarkMessagesRead(ctx context.Context, chatID, readerID int64) error {
	if _, err := q.db.ExecContext(ctx,
		"UPDATE messages SET is_read = 1 WHERE chat_id = ? AND sender_id != ? AND is_read = 0",
		chatID, readerID); err != nil {
		return fmt.Errorf("marking messages read in chat %d: %w", chatID, err)
	}
	return nil
}

// CountUnreadMessages counts messages in the chat the user has not read
// yet.
func (q *Queries) CountUnreadMessages(ctx context.Context, chatID, userID int64) (int, error) {
	var count int
	if err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE chat_id = ? AND sender_id != ? AND is_read = 0",
		chatID, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting unread messages in chat %d: %w", chatID, err)
	}
	return count, nil
}

// DeleteMessage removes a message.
func (q *Queries) DeleteMessage(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting message %d: %w", id, err)
	}
	return nil
}

func scanChat(row rowScanner) (*model.Chat, error) {
	var chat model.Chat
	if err := row.Scan(&chat.ID, &chat.User1ID, &chat.User2ID, &chat.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning chat: %w", err)
	}
	return &chat, nil
}

func scanMessage(row rowScanner) (*model.Message, error) {
	var (
		msg           model.Message
		content, file sql.NullString
	)
	if err := row.Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &content, &file,
		&msg.IsRead, &msg.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning message: %w", err)
	}
	msg.Content = strOrEmpty(content)
	msg.File = strOrEmpty(file)
	return &msg, nil
}
