// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ykovalchuk/maisterni/internal/model"
)

type stubResolver struct {
	users map[string]*model.User
}

func (s *stubResolver) ResolveToken(_ context.Context, token string) (*model.User, error) {
	if user, ok := s.users[token]; ok {
		return user, nil
	}
	return nil, errors.New("unknown token")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	resolver := &stubResolver{users: map[string]*model.User{
		"good": {ID: 1, Role: model.RoleUser},
	}}

	var captured *model.User
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = UserFrom(r.Context())
	})
	handler := Authenticate(resolver)(capture)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   bool
	}{
		{"no token passes anonymously", "", http.StatusOK, false},
		{"valid token resolves user", "Bearer good", http.StatusOK, true},
		{"case-insensitive scheme", "bearer good", http.StatusOK, true},
		{"invalid token rejected", "Bearer bad", http.StatusUnauthorized, false},
		{"malformed header passes anonymously", "good", http.StatusOK, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captured = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, captured != nil)
		})
	}
}

func TestRequireUser(t *testing.T) {
	handler := RequireUser(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	ctx := context.WithValue(req.Context(), ContextKeyUser, &model.User{ID: 1})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	userCtx := context.WithValue(req.Context(), ContextKeyUser, &model.User{ID: 1, Role: model.RoleUser})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(userCtx))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminCtx := context.WithValue(req.Context(), ContextKeyUser, &model.User{ID: 2, Role: model.RoleAdmin})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(adminCtx))
	assert.Equal(t, http.StatusOK, rec.Code)
}
