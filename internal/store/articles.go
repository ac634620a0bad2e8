// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ykovalchuk/maisterni/internal/langcode"
	"github.com/ykovalchuk/maisterni/internal/model"
)

var articleCols = fmt.Sprintf(
	"id, %s, %s, %s, %s, %s, featured_image, published, author_id, "+
		"auto_translated_fields, created_at, updated_at",
	localizedCols("title"), localizedCols("content"), localizedCols("description"),
	localizedCols("keywords"), localizedCols("slug"))

// CreateArticle inserts a blog article and returns the assigned ID.
func (q *Queries) CreateArticle(ctx context.Context, article *model.Article) (int64, error) {
	autoFields, err := jsonText(article.AutoTranslatedFields)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		INSERT INTO articles (%s, %s, %s, %s, %s, featured_image, published,
			author_id, auto_translated_fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		localizedCols("title"), localizedCols("content"), localizedCols("description"),
		localizedCols("keywords"), localizedCols("slug"))

	now := time.Now()
	args := localizedArgs(article.Title)
	args = append(args, localizedArgs(article.Content)...)
	args = append(args, localizedArgs(article.Description)...)
	args = append(args, localizedArgs(article.Keywords)...)
	args = append(args, localizedArgs(article.Slugs)...)
	args = append(args, nullStr(article.FeaturedImage), article.Published,
		article.AuthorID, autoFields, now, now)

	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("creating article: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("creating article: %w", err)
	}
	article.CreatedAt = now
	article.UpdatedAt = now
	return id, nil
}

// GetArticleByID fetches one article.
func (q *Queries) GetArticleByID(ctx context.Context, id int64) (*model.Article, error) {
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM articles WHERE id = ?", articleCols), id)
	return scanArticle(row)
}

// GetArticleBySlug fetches a published article by its slug in the given
// language.
func (q *Queries) GetArticleBySlug(ctx context.Context, lang langcode.Code, slug string) (*model.Article, error) {
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM articles WHERE slug_%s = ? AND published = 1", articleCols, lang),
		slug)
	return scanArticle(row)
}

// ListArticles returns articles newest-first, optionally published only.
func (q *Queries) ListArticles(ctx context.Context, publishedOnly bool, limit, offset int) ([]model.Article, error) {
	query := fmt.Sprintf("SELECT %s FROM articles", articleCols)
	if publishedOnly {
		query += " WHERE published = 1"
	}
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"

	rows, err := q.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var articles []model.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *article)
	}
	return articles, rows.Err()
}

// UpdateArticleLocalization overwrites an article's localized fields,
// slugs and translation bookkeeping by primary key.
func (q *Queries) UpdateArticleLocalization(ctx context.Context, article *model.Article) error {
	autoFields, err := jsonText(article.AutoTranslatedFields)
	if err != nil {
		return err
	}

	query := `
		UPDATE articles SET
			title_uk = ?, title_en = ?, title_pl = ?, title_fr = ?, title_de = ?,
			content_uk = ?, content_en = ?, content_pl = ?, content_fr = ?, content_de = ?,
			description_uk = ?, description_en = ?, description_pl = ?,
			description_fr = ?, description_de = ?,
			keywords_uk = ?, keywords_en = ?, keywords_pl = ?, keywords_fr = ?, keywords_de = ?,
			slug_uk = ?, slug_en = ?, slug_pl = ?, slug_fr = ?, slug_de = ?,
			auto_translated_fields = ?, updated_at = ?
		WHERE id = ?`

	now := time.Now()
	args := localizedArgs(article.Title)
	args = append(args, localizedArgs(article.Content)...)
	args = append(args, localizedArgs(article.Description)...)
	args = append(args, localizedArgs(article.Keywords)...)
	args = append(args, localizedArgs(article.Slugs)...)
	args = append(args, autoFields, now, article.ID)

	if _, err := q.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating article %d localization: %w", article.ID, err)
	}
	article.UpdatedAt = now
	return nil
}

// SetArticlePublished flips an article's published flag.
func (q *Queries) SetArticlePublished(ctx context.Context, id int64, published bool) error {
	if _, err := q.db.ExecContext(ctx,
		"UPDATE articles SET published = ?, updated_at = ? WHERE id = ?",
		published, time.Now(), id); err != nil {
		return fmt.Errorf("publishing article %d: %w", id, err)
	}
	return nil
}

// DeleteArticle removes an article.
func (q *Queries) DeleteArticle(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting article %d: %w", id, err)
	}
	return nil
}

func scanArticle(row rowScanner) (*model.Article, error) {
	var (
		article                                      model.Article
		title, content, description, keywords, slugs localizedScanner
		featuredImage, autoF                         sql.NullString
		authorID                                     sql.NullInt64
	)

	dest := []any{&article.ID}
	dest = append(dest, title.dest()...)
	dest = append(dest, content.dest()...)
	dest = append(dest, description.dest()...)
	dest = append(dest, keywords.dest()...)
	dest = append(dest, slugs.dest()...)
	dest = append(dest, &featuredImage, &article.Published, &authorID,
		&autoF, &article.CreatedAt, &article.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning article: %w", err)
	}

	article.Title = title.text()
	article.Content = content.text()
	article.Description = description.text()
	article.Keywords = keywords.text()
	article.Slugs = slugs.text()
	article.FeaturedImage = strOrEmpty(featuredImage)
	if authorID.Valid {
		article.AuthorID = &authorID.Int64
	}

	var err error
	if article.AutoTranslatedFields, err = jsonSlice[string](autoF); err != nil {
		return nil, err
	}
	return &article, nil
}
