// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ykovalchuk/maisterni/internal/middleware"
)

// OpenChat returns the conversation with a partner, creating it on first
// contact.
func (h *Handler) OpenChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PartnerID int64 `json:"partner_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}
	user := middleware.UserFrom(r.Context())
	chat, err := h.chats.Open(r.Context(), user.ID, req.PartnerID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteCreated(w, chat)
}

// ListChats returns the caller's conversations, most recently active
// first.
func (h *Handler) ListChats(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	chats, err := h.chats.List(r.Context(), user.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, chats, &Meta{Count: len(chats)})
}

// ListMessages returns a page of the conversation and marks the
// partner's messages read.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid chat id", nil)
		return
	}
	limit, offset := pagination(r)
	user := middleware.UserFrom(r.Context())
	messages, err := h.chats.Messages(r.Context(), id, user.ID, limit, offset)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, messages, &Meta{Limit: limit, Offset: offset, Count: len(messages)})
}

// SendMessage appends a message to the conversation.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid chat id", nil)
		return
	}
	var req struct {
		Content string `json:"content"`
		File    string `json:"file"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}
	user := middleware.UserFrom(r.Context())
	msg, err := h.chats.Send(r.Context(), id, user.ID, req.Content, req.File)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteCreated(w, msg)
}

// DeleteMessage removes the caller's own message.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid chat id", nil)
		return
	}
	messageID, err := strconv.ParseInt(chi.URLParam(r, "messageID"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "invalid message id", nil)
		return
	}
	user := middleware.UserFrom(r.Context())
	if err := h.chats.DeleteMessage(r.Context(), id, messageID, user.ID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}

// UnreadCount reports how many messages in the conversation the caller
// has not read.
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid chat id", nil)
		return
	}
	user := middleware.UserFrom(r.Context())
	count, err := h.chats.UnreadCount(r.Context(), id, user.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, map[string]int{"unread": count}, nil)
}
