// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykovalchuk/maisterni/internal/langcode"
	"github.com/ykovalchuk/maisterni/internal/localize"
)

func newBlogService(t *testing.T) *BlogService {
	t.Helper()
	return NewBlogService(newTestQueries(t), newTestLocalizer())
}

func TestArticleCreateTranslatesAllGroups(t *testing.T) {
	svc := newBlogService(t)
	ctx := context.Background()

	article, err := svc.Create(ctx, ArticleInput{
		Title:       map[string]string{"uk": "Новини ринку"},
		Content:     map[string]string{"uk": "Перший **абзац**."},
		Description: map[string]string{"uk": "Огляд тижня"},
		Keywords:    map[string]string{"uk": "ринок, послуги"},
	})
	require.NoError(t, err)
	require.NotZero(t, article.ID)

	for _, lang := range langcode.All {
		assert.False(t, article.Title.IsBlank(lang), "title %s", lang)
		assert.False(t, article.Content.IsBlank(lang), "content %s", lang)
	}
	// Four groups times four target languages.
	assert.Len(t, article.AutoTranslatedFields, 16)
	assert.Equal(t, "novyny-rynku-1", article.Slugs.Get(langcode.UK))
	assert.False(t, article.Published)
}

func TestArticleRequiresUkrainianTitle(t *testing.T) {
	svc := newBlogService(t)

	_, err := svc.Create(context.Background(), ArticleInput{
		Title: map[string]string{"en": "English only"},
	})
	assert.ErrorIs(t, err, localize.ErrNoPrimaryText)
}

func TestArticleContentSanitized(t *testing.T) {
	svc := newBlogService(t)

	article, err := svc.Create(context.Background(), ArticleInput{
		Title:   map[string]string{"uk": "Безпека"},
		Content: map[string]string{"uk": `Текст<script>alert("x")</script> і <b>жирний</b>`},
	})
	require.NoError(t, err)

	content := article.Content.Get(langcode.UK)
	assert.NotContains(t, content, "<script>")
	assert.Contains(t, content, "<b>жирний</b>")
}

func TestArticlePublishAndGetBySlug(t *testing.T) {
	svc := newBlogService(t)
	ctx := context.Background()

	article, err := svc.Create(ctx, ArticleInput{
		Title:   map[string]string{"uk": "Запуск"},
		Content: map[string]string{"uk": "Ми **запустилися**."},
	})
	require.NoError(t, err)

	// Drafts are not addressable by slug.
	_, err = svc.GetBySlug(ctx, langcode.UK, article.Slugs.Get(langcode.UK))
	assert.ErrorIs(t, err, ErrArticleNotFound)

	require.NoError(t, svc.SetPublished(ctx, article.ID, true))

	view, err := svc.GetBySlug(ctx, langcode.UK, article.Slugs.Get(langcode.UK))
	require.NoError(t, err)
	assert.Equal(t, "Запуск", view.Title)
	assert.Contains(t, view.ContentHTML, "<strong>запустилися</strong>")
	assert.NotEmpty(t, view.PublishedAt)
}

func TestArticleUpdateClearsAutoBadge(t *testing.T) {
	svc := newBlogService(t)
	ctx := context.Background()

	article, err := svc.Create(ctx, ArticleInput{
		Title:   map[string]string{"uk": "Поради"},
		Content: map[string]string{"uk": "Текст"},
	})
	require.NoError(t, err)
	require.Contains(t, article.AutoTranslatedFields, "title_en")

	updated, err := svc.Update(ctx, article.ID, ArticleInput{
		Title: map[string]string{"en": "Tips"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Tips", updated.Title.Get(langcode.EN))
	assert.NotContains(t, updated.AutoTranslatedFields, "title_en")
	assert.Equal(t, "tips-"+strconv.FormatInt(article.ID, 10), updated.Slugs.Get(langcode.EN))
}

func TestArticleListFiltersDrafts(t *testing.T) {
	svc := newBlogService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, ArticleInput{
		Title: map[string]string{"uk": "Перша"}, Content: map[string]string{"uk": "А"},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ArticleInput{
		Title: map[string]string{"uk": "Друга"}, Content: map[string]string{"uk": "Б"},
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetPublished(ctx, first.ID, true))

	published, err := svc.List(ctx, true, 10, 0)
	require.NoError(t, err)
	assert.Len(t, published, 1)

	all, err := svc.List(ctx, false, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
