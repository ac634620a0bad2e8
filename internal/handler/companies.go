// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ykovalchuk/maisterni/internal/langcode"
	"github.com/ykovalchuk/maisterni/internal/middleware"
	"github.com/ykovalchuk/maisterni/internal/model"
	"github.com/ykovalchuk/maisterni/internal/service"
)

// CompanyView is a company projected into one display language.
type CompanyView struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Slug           string    `json:"slug"`
	Categories     []int64   `json:"categories,omitempty"`
	AutoTranslated bool      `json:"auto_translated"`
	CreatedAt      time.Time `json:"created_at"`
}

func companyToView(company *model.Company, lang langcode.Code) CompanyView {
	return CompanyView{
		ID:             company.ID,
		Name:           company.Name.Resolve(lang),
		Description:    company.Description.Resolve(lang),
		Slug:           company.Slugs.Resolve(lang),
		Categories:     company.Categories,
		AutoTranslated: fieldIsAuto(company.AutoTranslatedFields, "name", lang) || fieldIsAuto(company.AutoTranslatedFields, "description", lang),
		CreatedAt:      company.CreatedAt,
	}
}

// CreateCompany creates a company owned by the authenticated user.
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req service.CompanyInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}
	user := middleware.UserFrom(r.Context())
	req.OwnerID = &user.ID

	company, err := h.companies.Create(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteCreated(w, company)
}

// UpdateCompany updates a company owned by the authenticated user.
func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid company id", nil)
		return
	}
	var req service.CompanyInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}

	user := middleware.UserFrom(r.Context())
	existing, err := h.companies.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !user.IsAdmin() && (existing.OwnerID == nil || *existing.OwnerID != user.ID) {
		WriteForbidden(w, "not your company")
		return
	}

	company, err := h.companies.Update(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, company, nil)
}

// DeleteCompany removes a company.
func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid company id", nil)
		return
	}
	if err := h.companies.Delete(r.Context(), id, middleware.UserFrom(r.Context())); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}

// ListCompanies returns a page of companies in the request language.
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	lang := langFrom(r)
	limit, offset := pagination(r)

	companies, err := h.companies.List(r.Context(), limit, offset)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	views := make([]CompanyView, 0, len(companies))
	for i := range companies {
		views = append(views, companyToView(&companies[i], lang))
	}
	WriteSuccess(w, views, &Meta{Limit: limit, Offset: offset, Count: len(views)})
}

// GetCompany returns one company in the request language.
func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid company id", nil)
		return
	}
	company, err := h.companies.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, companyToView(company, langFrom(r)), nil)
}
