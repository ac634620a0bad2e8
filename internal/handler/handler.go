// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the JSON API. Handlers are thin adapters:
// they decode requests, pull the display language out of the URL, and
// delegate to the service layer.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ykovalchuk/maisterni/internal/langcode"
	"github.com/ykovalchuk/maisterni/internal/mail"
	"github.com/ykovalchuk/maisterni/internal/middleware"
	"github.com/ykovalchuk/maisterni/internal/service"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	bids      *service.BidService
	companies *service.CompanyService
	catalog   *service.CatalogService
	blog      *service.BlogService
	users     *service.UserService
	places    *service.PlaceService
	chats     *service.ChatService
	mailer    mail.Mailer
	logger    *slog.Logger
}

// New creates a Handler over the service layer.
func New(bids *service.BidService, companies *service.CompanyService, catalog *service.CatalogService, blog *service.BlogService, users *service.UserService, places *service.PlaceService, chats *service.ChatService, mailer mail.Mailer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		bids:      bids,
		companies: companies,
		catalog:   catalog,
		blog:      blog,
		users:     users,
		places:    places,
		chats:     chats,
		mailer:    mailer,
		logger:    logger,
	}
}

// Routes assembles the /api/v1 router. Localized reads live under a
// `{lang}` prefix that is validated before any handler runs.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Authenticate(h.users))

	r.Get("/status", h.Status)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/confirm", h.ConfirmRegistration)
		r.Post("/login", h.Login)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/reset-password", h.ResetPassword)
		r.With(middleware.RequireUser).Post("/logout", h.Logout)
	})

	r.With(middleware.RequireUser).Put("/profile", h.UpdateProfile)

	r.Route("/chats", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.ListChats)
		r.Post("/", h.OpenChat)
		r.Get("/{id}/messages", h.ListMessages)
		r.Post("/{id}/messages", h.SendMessage)
		r.Delete("/{id}/messages/{messageID}", h.DeleteMessage)
		r.Get("/{id}/unread-count", h.UnreadCount)
	})

	r.Route("/bids", func(r chi.Router) {
		r.Post("/", h.CreateBid)
		r.Post("/confirm", h.ConfirmGuestBid)
		r.With(middleware.RequireUser).Delete("/{id}", h.DeleteBid)
		r.Delete("/token/{token}", h.DeleteBidByToken)
	})

	r.Route("/companies", func(r chi.Router) {
		r.With(middleware.RequireUser).Post("/", h.CreateCompany)
		r.With(middleware.RequireUser).Put("/{id}", h.UpdateCompany)
		r.With(middleware.RequireUser).Delete("/{id}", h.DeleteCompany)
	})

	r.Route("/catalog", func(r chi.Router) {
		r.With(middleware.RequireAdmin).Post("/categories", h.CreateCategory)
		r.With(middleware.RequireAdmin).Put("/categories/{id}", h.UpdateCategory)
		r.With(middleware.RequireAdmin).Post("/categories/{id}/under", h.CreateUnderCategory)
	})

	r.Route("/blog", func(r chi.Router) {
		r.With(middleware.RequireAdmin).Post("/", h.CreateArticle)
		r.With(middleware.RequireAdmin).Put("/{id}", h.UpdateArticle)
		r.With(middleware.RequireAdmin).Post("/{id}/publish", h.PublishArticle)
		r.With(middleware.RequireAdmin).Post("/{id}/unpublish", h.UnpublishArticle)
	})

	// Localized reads.
	r.Route("/{lang}", func(r chi.Router) {
		r.Use(h.requireLang)
		r.Get("/bids", h.ListBids)
		r.Get("/bids/{id}", h.GetBid)
		r.Get("/companies", h.ListCompanies)
		r.Get("/companies/{id}", h.GetCompany)
		r.Get("/catalog", h.GetCatalog)
		r.Get("/blog", h.ListArticles)
		r.Get("/blog/{slug}", h.GetArticleBySlug)
		r.Get("/countries", h.ListCountries)
		r.Get("/countries/{id}", h.GetCountry)
		r.Get("/cities", h.ListCities)
	})

	return r
}

// StatusResponse reports API health.
type StatusResponse struct {
	Status string `json:"status"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{Status: "ok"}, nil)
}

// requireLang validates the `{lang}` URL segment before any localized
// handler runs. Unknown codes fail fast with 400, never a silent
// default.
func (h *Handler) requireLang(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := langcode.Parse(chi.URLParam(r, "lang")); err != nil {
			WriteBadRequest(w, err.Error(), nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// langFrom returns the already-validated language of the request.
func langFrom(r *http.Request) langcode.Code {
	code, _ := langcode.Parse(chi.URLParam(r, "lang"))
	return code
}
