// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ykovalchuk/maisterni/internal/langcode"
	"github.com/ykovalchuk/maisterni/internal/localize"
	"github.com/ykovalchuk/maisterni/internal/service"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pagination reads limit and offset query parameters with sane bounds.
func pagination(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, maxPageSize)
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// idParam parses the numeric {id} URL segment.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// writeServiceError maps service errors to HTTP statuses. Unknown errors
// become opaque 500s; the details stay in the log.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var unsupported langcode.ErrUnsupported
	switch {
	case errors.As(err, &unsupported),
		errors.Is(err, service.ErrInvalidBudget),
		errors.Is(err, service.ErrInvalidKey),
		errors.Is(err, localize.ErrNoPrimaryText),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrSelfChat),
		errors.Is(err, service.ErrEmptyMessage):
		WriteBadRequest(w, err.Error(), nil)
	case errors.Is(err, service.ErrBidNotFound),
		errors.Is(err, service.ErrCompanyNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrArticleNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCountryNotFound),
		errors.Is(err, service.ErrChatNotFound),
		errors.Is(err, service.ErrMessageNotFound):
		WriteNotFound(w, err.Error())
	case errors.Is(err, service.ErrNotAuthorized):
		WriteForbidden(w, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteUnauthorized(w, err.Error())
	case errors.Is(err, service.ErrCodeMismatch),
		errors.Is(err, service.ErrCodeExpired):
		WriteBadRequest(w, err.Error(), nil)
	case errors.Is(err, service.ErrEmailTaken):
		WriteError(w, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		WriteInternalError(w, "internal error")
	}
}
