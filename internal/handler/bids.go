// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ykovalchuk/maisterni/internal/langcode"
	"github.com/ykovalchuk/maisterni/internal/middleware"
	"github.com/ykovalchuk/maisterni/internal/model"
	"github.com/ykovalchuk/maisterni/internal/service"
)

// BidView is a bid projected into one display language.
type BidView struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Slug            string    `json:"slug"`
	Budget          string    `json:"budget,omitempty"`
	BudgetType      string    `json:"budget_type,omitempty"`
	Categories      []int64   `json:"categories,omitempty"`
	UnderCategories []int64   `json:"under_categories,omitempty"`
	AutoTranslated  bool      `json:"auto_translated"`
	Pending         bool      `json:"translation_pending,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreatedBidResponse returns the new bid together with the guest delete
// token, which is shown exactly once.
type CreatedBidResponse struct {
	Bid         *model.Bid `json:"bid"`
	DeleteToken string     `json:"delete_token,omitempty"`
}

func bidToView(bid *model.Bid, lang langcode.Code) BidView {
	return BidView{
		ID:              bid.ID,
		Title:           bid.Title.Resolve(lang),
		Description:     bid.Description.Resolve(lang),
		Slug:            bid.Slugs.Resolve(lang),
		Budget:          bid.Budget,
		BudgetType:      bid.BudgetType,
		Categories:      bid.Categories,
		UnderCategories: bid.UnderCategories,
		AutoTranslated:  fieldIsAuto(bid.AutoTranslatedFields, "title", lang) || fieldIsAuto(bid.AutoTranslatedFields, "description", lang),
		Pending:         bid.TranslationPending,
		CreatedAt:       bid.CreatedAt,
	}
}

func fieldIsAuto(autoFields []string, group string, lang langcode.Code) bool {
	key := group + "_" + string(lang)
	for _, f := range autoFields {
		if f == key {
			return true
		}
	}
	return false
}

// createBidRequest wraps BidInput with the guest email and the fast flag.
type createBidRequest struct {
	service.BidInput
	Email string `json:"email"`
	Fast  bool   `json:"fast"`
}

// CreateBid creates a bid. Authenticated users get the bid immediately;
// guests get a verification code by email and finish via /bids/confirm.
func (h *Handler) CreateBid(w http.ResponseWriter, r *http.Request) {
	var req createBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}

	if user := middleware.UserFrom(r.Context()); user != nil {
		req.AuthorID = &user.ID
		create := h.bids.Create
		if req.Fast {
			create = h.bids.CreateFast
		}
		bid, err := create(r.Context(), req.BidInput)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		WriteCreated(w, CreatedBidResponse{Bid: bid})
		return
	}

	if req.Email == "" {
		WriteBadRequest(w, "email is required for guest bids", nil)
		return
	}
	code, err := h.bids.RequestGuestBid(r.Context(), req.Email, req.BidInput, req.Fast)
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

// ConfirmGuestBid exchanges a verification code for the parked bid.
func (h *Handler) ConfirmGuestBid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}
	bid, err := h.bids.ConfirmGuestBid(r.Context(), req.Email, req.Code)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteCreated(w, CreatedBidResponse{Bid: bid, DeleteToken: bid.DeleteToken})
}

// ListBids returns a page of bids in the request language.
func (h *Handler) ListBids(w http.ResponseWriter, r *http.Request) {
	lang := langFrom(r)
	limit, offset := pagination(r)

	bids, err := h.bids.List(r.Context(), limit, offset)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	views := make([]BidView, 0, len(bids))
	for i := range bids {
		views = append(views, bidToView(&bids[i], lang))
	}
	WriteSuccess(w, views, &Meta{Limit: limit, Offset: offset, Count: len(views)})
}

// GetBid returns one bid in the request language.
func (h *Handler) GetBid(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid bid id", nil)
		return
	}
	bid, err := h.bids.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, bidToView(bid, langFrom(r)), nil)
}

// DeleteBid removes a bid on behalf of its author or an admin.
func (h *Handler) DeleteBid(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid bid id", nil)
		return
	}
	if err := h.bids.Delete(r.Context(), id, middleware.UserFrom(r.Context())); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}

// DeleteBidByToken removes a guest bid using its secret token.
func (h *Handler) DeleteBidByToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if err := h.bids.DeleteByToken(r.Context(), token); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
