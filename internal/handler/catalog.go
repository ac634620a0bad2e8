// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
)

type categoryRequest struct {
	Key  string            `json:"key"`
	Name map[string]string `json:"name"`
}

// CreateCategory adds a top-level catalog category.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}
	category, err := h.catalog.CreateCategory(r.Context(), req.Key, req.Name)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteCreated(w, category)
}

// UpdateCategory renames a category.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid category id", nil)
		return
	}
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}
	category, err := h.catalog.UpdateCategory(r.Context(), id, req.Name)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, category, nil)
}

// CreateUnderCategory adds a second-level section to a category.
func (h *Handler) CreateUnderCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid category id", nil)
		return
	}
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}
	uc, err := h.catalog.CreateUnderCategory(r.Context(), id, req.Name)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteCreated(w, uc)
}

// GetCatalog returns the catalog tree in the request language.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	tree, err := h.catalog.Tree(r.Context(), langFrom(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, tree, nil)
}
