// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/ykovalchuk/maisterni/internal/langcode"
	"github.com/ykovalchuk/maisterni/internal/localize"
	"github.com/ykovalchuk/maisterni/internal/model"
	"github.com/ykovalchuk/maisterni/internal/store"
)

// ErrArticleNotFound is returned for lookups of missing articles.
var ErrArticleNotFound = errors.New("article not found")

// htmlSanitizer strips unsafe markup from article content while keeping
// the tags user-generated content legitimately uses.
var htmlSanitizer = bluemonday.UGCPolicy()

// ArticleInput is the raw request payload for creating or updating a
// blog article. Content is markdown.
type ArticleInput struct {
	Title         map[string]string `json:"title"`
	Content       map[string]string `json:"content"`
	Description   map[string]string `json:"description"`
	Keywords      map[string]string `json:"keywords"`
	FeaturedImage string            `json:"featured_image"`
	AuthorID      *int64            `json:"-"`
}

// ArticleView is an article projected into one display language with its
// markdown content rendered to HTML.
type ArticleView struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	ContentHTML   string `json:"content_html"`
	Description   string `json:"description"`
	Keywords      string `json:"keywords"`
	Slug          string `json:"slug"`
	FeaturedImage string `json:"featured_image,omitempty"`
	PublishedAt   string `json:"published_at,omitempty"`
}

// BlogService manages blog articles. Articles are always authored in
// Ukrainian; the remaining variants come from the translation pipeline,
// which runs with a higher concurrency cap than the marketplace entities
// because each article carries four field groups.
type BlogService struct {
	queries   *store.Queries
	localizer *localize.Service
}

// NewBlogService creates a BlogService.
func NewBlogService(queries *store.Queries, localizer *localize.Service) *BlogService {
	return &BlogService{queries: queries, localizer: localizer}
}

func (in ArticleInput) toArticle() (*model.Article, error) {
	title, err := localize.TextFromMap(in.Title)
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	content, err := localize.TextFromMap(in.Content)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	description, err := localize.TextFromMap(in.Description)
	if err != nil {
		return nil, fmt.Errorf("description: %w", err)
	}
	keywords, err := localize.TextFromMap(in.Keywords)
	if err != nil {
		return nil, fmt.Errorf("keywords: %w", err)
	}
	return &model.Article{
		Title:         title,
		Content:       sanitizeContent(content),
		Description:   description,
		Keywords:      keywords,
		FeaturedImage: in.FeaturedImage,
		AuthorID:      in.AuthorID,
	}, nil
}

// sanitizeContent strips unsafe HTML from every language variant before
// it reaches the translation provider or the database.
func sanitizeContent(content langcode.Text) langcode.Text {
	out := content.Clone()
	for lang, value := range out {
		out[lang] = htmlSanitizer.Sanitize(value)
	}
	return out
}

// Create translates and persists a new article as a draft.
func (s *BlogService) Create(ctx context.Context, in ArticleInput) (*model.Article, error) {
	article, err := in.toArticle()
	if err != nil {
		return nil, err
	}
	if err := s.localizer.Article(ctx, article); err != nil {
		return nil, err
	}

	id, err := s.queries.CreateArticle(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("creating article: %w", err)
	}
	article.ID = id

	article.Slugs = localize.Slugs(article.Title, id)
	if err := s.queries.UpdateArticleLocalization(ctx, article); err != nil {
		return nil, fmt.Errorf("attaching article slugs: %w", err)
	}
	return article, nil
}

// Update overlays new variants onto the stored article and retranslates
// whatever is still missing.
func (s *BlogService) Update(ctx context.Context, id int64, in ArticleInput) (*model.Article, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	input, err := in.toArticle()
	if err != nil {
		return nil, err
	}

	article.Title = overlay(article.Title, input.Title)
	article.Content = overlay(article.Content, input.Content)
	article.Description = overlay(article.Description, input.Description)
	article.Keywords = overlay(article.Keywords, input.Keywords)
	for group, provided := range map[string]langcode.Text{
		"title":       input.Title,
		"content":     input.Content,
		"description": input.Description,
		"keywords":    input.Keywords,
	} {
		article.AutoTranslatedFields = dropAutoFields(article.AutoTranslatedFields, group, provided)
	}
	if in.FeaturedImage != "" {
		article.FeaturedImage = in.FeaturedImage
	}

	if err := s.localizer.Article(ctx, article); err != nil {
		return nil, err
	}
	article.Slugs = localize.Slugs(article.Title, article.ID)
	if err := s.queries.UpdateArticleLocalization(ctx, article); err != nil {
		return nil, fmt.Errorf("updating article: %w", err)
	}
	return article, nil
}

// SetPublished toggles an article's visibility.
func (s *BlogService) SetPublished(ctx context.Context, id int64, published bool) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.queries.SetArticlePublished(ctx, id, published)
}

// Get returns an article by id, drafts included.
func (s *BlogService) Get(ctx context.Context, id int64) (*model.Article, error) {
	article, err := s.queries.GetArticleByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}

// GetBySlug returns a published article addressed by its slug in the
// given language, rendered for display.
func (s *BlogService) GetBySlug(ctx context.Context, lang langcode.Code, articleSlug string) (*ArticleView, error) {
	article, err := s.queries.GetArticleBySlug(ctx, lang, articleSlug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return s.renderView(article, lang)
}

// List returns a page of articles, optionally drafts included.
func (s *BlogService) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]model.Article, error) {
	return s.queries.ListArticles(ctx, publishedOnly, limit, offset)
}

func (s *BlogService) renderView(article *model.Article, lang langcode.Code) (*ArticleView, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(article.Content.Resolve(lang)), &buf); err != nil {
		return nil, fmt.Errorf("rendering article %d: %w", article.ID, err)
	}

	view := &ArticleView{
		ID:            article.ID,
		Title:         article.Title.Resolve(lang),
		ContentHTML:   buf.String(),
		Description:   article.Description.Resolve(lang),
		Keywords:      article.Keywords.Resolve(lang),
		Slug:          article.Slugs.Resolve(lang),
		FeaturedImage: article.FeaturedImage,
	}
	if article.Published {
		view.PublishedAt = article.UpdatedAt.Format(time.RFC3339)
	}
	return view, nil
}
