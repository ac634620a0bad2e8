// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykovalchuk/maisterni/internal/model"
	"github.com/ykovalchuk/maisterni/internal/store"
)

func newChatFixture(t *testing.T) (*ChatService, *store.Queries) {
	t.Helper()
	queries := newTestQueries(t)
	return NewChatService(queries, nil), queries
}

func createAccount(t *testing.T, queries *store.Queries, name string) int64 {
	t.Helper()
	id, err := queries.CreateUser(context.Background(), &model.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "x",
		Kind:         model.UserKindCustomer,
		Language:     "uk",
	})
	require.NoError(t, err)
	return id
}

func TestOpenChatNormalizesPair(t *testing.T) {
	svc, queries := newChatFixture(t)
	ctx := context.Background()
	alice := createAccount(t, queries, "alice")
	bob := createAccount(t, queries, "bob")

	chat, err := svc.Open(ctx, bob, alice)
	require.NoError(t, err)
	assert.Less(t, chat.User1ID, chat.User2ID)

	// The reverse direction reuses the same row.
	same, err := svc.Open(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, chat.ID, same.ID)
}

func TestOpenChatRejectsSelfAndGhosts(t *testing.T) {
	svc, queries := newChatFixture(t)
	ctx := context.Background()
	alice := createAccount(t, queries, "alice")

	_, err := svc.Open(ctx, alice, alice)
	assert.ErrorIs(t, err, ErrSelfChat)

	_, err = svc.Open(ctx, alice, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSendAndReadMessages(t *testing.T) {
	svc, queries := newChatFixture(t)
	ctx := context.Background()
	alice := createAccount(t, queries, "alice")
	bob := createAccount(t, queries, "bob")

	chat, err := svc.Open(ctx, alice, bob)
	require.NoError(t, err)

	_, err = svc.Send(ctx, chat.ID, alice, "   ", "")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	msg, err := svc.Send(ctx, chat.ID, alice, "Вітаю!", "")
	require.NoError(t, err)
	require.NotZero(t, msg.ID)

	unread, err := svc.UnreadCount(ctx, chat.ID, bob)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	// Reading the conversation clears the partner's unread counter but
	// not the sender's view of their own messages.
	messages, err := svc.Messages(ctx, chat.ID, bob, 50, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Вітаю!", messages[0].Content)

	unread, err = svc.UnreadCount(ctx, chat.ID, bob)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestChatListSummaries(t *testing.T) {
	svc, queries := newChatFixture(t)
	ctx := context.Background()
	alice := createAccount(t, queries, "alice")
	bob := createAccount(t, queries, "bob")
	carol := createAccount(t, queries, "carol")

	first, err := svc.Open(ctx, alice, bob)
	require.NoError(t, err)
	second, err := svc.Open(ctx, alice, carol)
	require.NoError(t, err)

	_, err = svc.Send(ctx, first.ID, bob, "давня розмова", "")
	require.NoError(t, err)
	_, err = svc.Send(ctx, second.ID, carol, "свіжа розмова", "")
	require.NoError(t, err)

	summaries, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Most recently active first.
	assert.Equal(t, second.ID, summaries[0].ID)
	assert.Equal(t, "carol", summaries[0].PartnerName)
	assert.Equal(t, 1, summaries[0].UnreadCount)
	assert.Equal(t, "свіжа розмова", summaries[0].LatestMessage.Content)
	assert.Equal(t, first.ID, summaries[1].ID)
}

func TestChatAccessControl(t *testing.T) {
	svc, queries := newChatFixture(t)
	ctx := context.Background()
	alice := createAccount(t, queries, "alice")
	bob := createAccount(t, queries, "bob")
	eve := createAccount(t, queries, "eve")

	chat, err := svc.Open(ctx, alice, bob)
	require.NoError(t, err)
	msg, err := svc.Send(ctx, chat.ID, alice, "приватне", "")
	require.NoError(t, err)

	_, err = svc.Messages(ctx, chat.ID, eve, 50, 0)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = svc.Send(ctx, chat.ID, eve, "вторгнення", "")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = svc.Messages(ctx, 999, alice, 50, 0)
	assert.ErrorIs(t, err, ErrChatNotFound)

	// Receivers cannot delete the sender's messages.
	err = svc.DeleteMessage(ctx, chat.ID, msg.ID, bob)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	require.NoError(t, svc.DeleteMessage(ctx, chat.ID, msg.ID, alice))
	err = svc.DeleteMessage(ctx, chat.ID, msg.ID, alice)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}
