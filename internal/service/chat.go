// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/ykovalchuk/maisterni/internal/model"
	"github.com/ykovalchuk/maisterni/internal/store"
)

// Chat errors.
var (
	ErrChatNotFound    = errors.New("chat not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrSelfChat        = errors.New("cannot open a chat with yourself")
	ErrEmptyMessage    = errors.New("message needs content or a file")
)

// ChatSummary is one conversation in a user's chat list.
type ChatSummary struct {
	ID            int64          `json:"id"`
	PartnerID     int64          `json:"partner_id"`
	PartnerName   string         `json:"partner_name"`
	LatestMessage *model.Message `json:"latest_message,omitempty"`
	UnreadCount   int            `json:"unread_count"`
}

// ChatService manages private conversations between users.
type ChatService struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewChatService creates a ChatService.
func NewChatService(queries *store.Queries, logger *slog.Logger) *ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{queries: queries, logger: logger}
}

// Open returns the conversation between the user and partner, creating
// it on first contact. The pair is normalized so A-to-B and B-to-A land
// on the same row.
func (s *ChatService) Open(ctx context.Context, userID, partnerID int64) (*model.Chat, error) {
	if userID == partnerID {
		return nil, ErrSelfChat
	}
	if _, err := s.queries.GetUserByID(ctx, partnerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user1, user2 := userID, partnerID
	if user1 > user2 {
		user1, user2 = user2, user1
	}

	chat, err := s.queries.GetChatByUsers(ctx, user1, user2)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	chat = &model.Chat{User1ID: user1, User2ID: user2}
	id, err := s.queries.CreateChat(ctx, chat)
	if err != nil {
		return nil, fmt.Errorf("opening chat: %w", err)
	}
	chat.ID = id
	return chat, nil
}

// List returns the user's conversations with partner, latest message and
// unread count, most recently active first.
func (s *ChatService) List(ctx context.Context, userID int64) ([]ChatSummary, error) {
	chats, err := s.queries.ListChatsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ChatSummary, 0, len(chats))
	for _, chat := range chats {
		summary := ChatSummary{ID: chat.ID, PartnerID: chat.Partner(userID)}

		partner, err := s.queries.GetUserByID(ctx, summary.PartnerID)
		if err == nil {
			summary.PartnerName = partner.Name
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}

		latest, err := s.queries.GetLatestMessage(ctx, chat.ID)
		if err == nil {
			summary.LatestMessage = latest
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}

		if summary.UnreadCount, err = s.queries.CountUnreadMessages(ctx, chat.ID, userID); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	// Conversations with fresh messages first; empty chats sort by id.
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i].LatestMessage, summaries[j].LatestMessage
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.ID > b.ID
		}
	})
	return summaries, nil
}

// Messages returns a page of the conversation, newest first, and marks
// the partner's messages as read. Only participants may look.
func (s *ChatService) Messages(ctx context.Context, chatID, userID int64, limit, offset int) ([]model.Message, error) {
	if _, err := s.participant(ctx, chatID, userID); err != nil {
		return nil, err
	}
	messages, err := s.queries.ListMessages(ctx, chatID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.queries.MarkMessagesRead(ctx, chatID, userID); err != nil {
		s.logger.Warn("marking messages read failed", "chat_id", chatID, "error", err)
	}
	return messages, nil
}

// Send appends a message to the conversation. Content or a file
// reference is required.
func (s *ChatService) Send(ctx context.Context, chatID, senderID int64, content, file string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" && file == "" {
		return nil, ErrEmptyMessage
	}
	if _, err := s.participant(ctx, chatID, senderID); err != nil {
		return nil, err
	}

	msg := &model.Message{ChatID: chatID, SenderID: senderID, Content: content, File: file}
	id, err := s.queries.CreateMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("sending message: %w", err)
	}
	msg.ID = id
	return msg, nil
}

// DeleteMessage removes a message. Only its sender may.
func (s *ChatService) DeleteMessage(ctx context.Context, chatID, messageID, userID int64) error {
	if _, err := s.participant(ctx, chatID, userID); err != nil {
		return err
	}
	msg, err := s.queries.GetMessageByID(ctx, messageID)
	if err != nil || msg.ChatID != chatID {
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return ErrMessageNotFound
	}
	if msg.SenderID != userID {
		return ErrNotAuthorized
	}
	return s.queries.DeleteMessage(ctx, messageID)
}

// UnreadCount counts the user's unread messages in the conversation.
func (s *ChatService) UnreadCount(ctx context.Context, chatID, userID int64) (int, error) {
	if _, err := s.participant(ctx, chatID, userID); err != nil {
		return 0, err
	}
	return s.queries.CountUnreadMessages(ctx, chatID, userID)
}

// participant loads the chat and checks membership. Outsiders get
// ErrNotAuthorized, missing chats ErrChatNotFound.
func (s *ChatService) participant(ctx context.Context, chatID, userID int64) (*model.Chat, error) {
	chat, err := s.queries.GetChatByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	if !chat.Involves(userID) {
		return nil, ErrNotAuthorized
	}
	return chat, nil
}
