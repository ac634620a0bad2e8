// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ykovalchuk/maisterni/internal/middleware"
	"github.com/ykovalchuk/maisterni/internal/model"
	"github.com/ykovalchuk/maisterni/internal/service"
)

// LoginResponse carries the issued bearer token and the account.
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register starts a registration: the account is created once the
// emailed verification code comes back through /auth/confirm.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}
	code, err := h.users.Register(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if err := h.mailer.SendVerificationCode(r.Context(), req.Email, code); err != nil {
		h.logger.Error("sending verification code failed", "email", req.Email, "error", err)
		WriteInternalError(w, "could not send verification code")
		return
	}
	WriteJSON(w, http.StatusAccepted, Response{Data: map[string]string{
		"status": "verification code sent",
	}})
}

// ConfirmRegistration exchanges a verification code for the account.
func (h *Handler) ConfirmRegistration(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}
	user, err := h.users.ConfirmRegistration(r.Context(), req.Email, req.Code)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteCreated(w, user)
}

// ForgotPassword issues a password-reset code. The response is the same
// whether or not the email has an account.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}
	code, err := h.users.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if code != "" {
		if err := h.mailer.SendVerificationCode(r.Context(), req.Email, code); err != nil {
			h.logger.Error("sending reset code failed", "email", req.Email, "error", err)
			WriteInternalError(w, "could not send reset code")
			return
		}
	}
	WriteJSON(w, http.StatusAccepted, Response{Data: map[string]string{
		"status": "reset code sent",
	}})
}

// ResetPassword exchanges a reset code for a new password.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}
	if err := h.users.ConfirmPasswordReset(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, map[string]string{"status": "password updated"}, nil)
}

// Login authenticates and issues a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}
	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, LoginResponse{Token: token, User: user}, nil)
}

// Logout revokes the bearer token of the current request.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		WriteBadRequest(w, "missing bearer token", nil)
		return
	}
	if err := h.users.Logout(r.Context(), parts[1]); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, map[string]string{"status": "logged out"}, nil)
}

// UpdateProfile updates the authenticated user's localized company
// profile.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req service.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}
	user := middleware.UserFrom(r.Context())
	updated, err := h.users.UpdateProfile(r.Context(), user.ID, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, updated, nil)
}
