// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for bearer token
// authentication and request context handling.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ykovalchuk/maisterni/internal/model"
)

// ContextKey is the type for request context keys set by this package.
type ContextKey string

// ContextKeyUser holds the authenticated *model.User.
const ContextKeyUser ContextKey = "user"

// TokenResolver turns a bearer token into a user. The user service
// provides the production implementation.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*model.User, error)
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeAuthError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	var resp apiError
	resp.Error.Code = code
	resp.Error.Message = message
	_ = json.NewEncoder(w).Encode(resp)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// Authenticate resolves an optional bearer token into the request
// context. Requests without a token pass through anonymously; an invalid
// token is rejected rather than silently downgraded.
func Authenticate(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			user, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects anonymous requests. Must run after Authenticate.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFrom(r.Context()) == nil {
			writeAuthError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests from non-admin users. Must run after
// Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFrom(r.Context())
		if user == nil {
			writeAuthError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}
		if !user.IsAdmin() {
			writeAuthError(w, http.StatusForbidden, "forbidden", "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFrom returns the authenticated user from the context, or nil.
func UserFrom(ctx context.Context) *model.User {
	user, _ := ctx.Value(ContextKeyUser).(*model.User)
	return user
}
