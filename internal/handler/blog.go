// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ykovalchuk/maisterni/internal/middleware"
	"github.com/ykovalchuk/maisterni/internal/service"
)

// ArticleListItem is a blog listing entry in one display language.
type ArticleListItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	Published   bool   `json:"published"`
}

// CreateArticle creates a draft article authored by the admin.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req service.ArticleInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}
	user := middleware.UserFrom(r.Context())
	req.AuthorID = &user.ID

	article, err := h.blog.Create(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteCreated(w, article)
}

// UpdateArticle edits an article.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid article id", nil)
		return
	}
	var req service.ArticleInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}
	article, err := h.blog.Update(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, article, nil)
}

// PublishArticle makes an article publicly visible.
func (h *Handler) PublishArticle(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, true)
}

// UnpublishArticle returns an article to draft state.
func (h *Handler) UnpublishArticle(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, false)
}

func (h *Handler) setPublished(w http.ResponseWriter, r *http.Request, published bool) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid article id", nil)
		return
	}
	if err := h.blog.SetPublished(r.Context(), id, published); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, map[string]bool{"published": published}, nil)
}

// ListArticles returns published articles in the request language.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	lang := langFrom(r)
	limit, offset := pagination(r)

	articles, err := h.blog.List(r.Context(), true, limit, offset)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	items := make([]ArticleListItem, 0, len(articles))
	for _, article := range articles {
		items = append(items, ArticleListItem{
			ID:          article.ID,
			Title:       article.Title.Resolve(lang),
			Description: article.Description.Resolve(lang),
			Slug:        article.Slugs.Resolve(lang),
			Published:   article.Published,
		})
	}
	WriteSuccess(w, items, &Meta{Limit: limit, Offset: offset, Count: len(items)})
}

// GetArticleBySlug returns one published article rendered for display.
func (h *Handler) GetArticleBySlug(w http.ResponseWriter, r *http.Request) {
	view, err := h.blog.GetBySlug(r.Context(), langFrom(r), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, view, nil)
}
