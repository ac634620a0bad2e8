// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

// Package localize adapts marketplace entities onto the generic
// translation pipeline: it maps each entity's field groups, attaches
// per-language slugs after the pipeline merge, and keeps the
// auto-translated bookkeeping monotonic.
package localize

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ykovalchuk/maisterni/internal/langcode"
	"github.com/ykovalchuk/maisterni/internal/model"
	"github.com/ykovalchuk/maisterni/internal/slug"
	"github.com/ykovalchuk/maisterni/internal/translate"
)

// ErrNoPrimaryText is returned when an entity that requires authored
// content has none (e.g. an article without a Ukrainian title).
var ErrNoPrimaryText = errors.New("no primary text to localize from")

// Service localizes entities through the shared pipeline.
type Service struct {
	pipeline *translate.Pipeline

	// articlePipeline may run with a larger concurrency cap: articles
	// batch up to 16 requests (4 groups x 4 languages) per save.
	articlePipeline *translate.Pipeline
}

// NewService creates a localization service. articlePipeline may be nil,
// in which case articles share the default pipeline.
func NewService(pipeline, articlePipeline *translate.Pipeline) *Service {
	if articlePipeline == nil {
		articlePipeline = pipeline
	}
	return &Service{pipeline: pipeline, articlePipeline: articlePipeline}
}

// TextFromMap converts raw request input keyed by language code into a
// langcode.Text, rejecting unsupported codes. This is the fail-fast
// boundary: an unknown language is an error here, never a silent default.
func TextFromMap(raw map[string]string) (langcode.Text, error) {
	text := make(langcode.Text, len(raw))
	for key, value := range raw {
		code, err := langcode.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("field language: %w", err)
		}
		text[code] = value
	}
	return text, nil
}

// Bid fills a bid's missing title and description variants and
// regenerates its slugs. Each group detects its own primary language.
// No-op when the bid has no authored text at all.
func (s *Service) Bid(ctx context.Context, bid *model.Bid) {
	result := s.pipeline.Run(ctx, map[string]langcode.Text{
		"title":       bid.Title,
		"description": bid.Description,
	}, translate.DetectPerGroup)

	bid.Title = result.Groups["title"]
	bid.Description = result.Groups["description"]
	bid.AutoTranslatedFields = mergeAutoFields(bid.AutoTranslatedFields, result.AutoTranslated)
	bid.Slugs = makeSlugs(bid.Title, bid.ID)
}

// BidPrimaryOnly prepares a bid for the fast path: no translation calls,
// just a slug for the primary title language. The remaining variants are
// back-filled later by the background worker.
func (s *Service) BidPrimaryOnly(bid *model.Bid) {
	primary := langcode.Detect(bid.Title, bid.Description)
	if text := bid.Title.Get(primary); text != "" {
		bid.Slugs = langcode.Text{primary: makeSlug(text, primary, bid.ID)}
	}
	bid.TranslationPending = true
}

// Company fills a company's missing name and description variants and
// regenerates its slugs.
func (s *Service) Company(ctx context.Context, company *model.Company) {
	result := s.pipeline.Run(ctx, map[string]langcode.Text{
		"name":        company.Name,
		"description": company.Description,
	}, translate.DetectPerGroup)

	company.Name = result.Groups["name"]
	company.Description = result.Groups["description"]
	company.AutoTranslatedFields = mergeAutoFields(company.AutoTranslatedFields, result.AutoTranslated)
	company.Slugs = makeSlugs(company.Name, company.ID)
}

// Category fills a category's missing names and regenerates its slugs.
// Category slugs carry no ID suffix: the key column already guarantees
// uniqueness.
func (s *Service) Category(ctx context.Context, category *model.Category) {
	result := s.pipeline.Run(ctx, map[string]langcode.Text{
		"name": category.Name,
	}, translate.DetectPerGroup)

	category.Name = result.Groups["name"]
	category.AutoTranslatedFields = mergeAutoFields(category.AutoTranslatedFields, result.AutoTranslated)
	category.Slugs = makeSlugs(category.Name, 0)
}

// UnderCategory fills a subsection's missing names and regenerates its
// slugs with an ID suffix (subsection names repeat across categories).
func (s *Service) UnderCategory(ctx context.Context, uc *model.UnderCategory) {
	result := s.pipeline.Run(ctx, map[string]langcode.Text{
		"name": uc.Name,
	}, translate.DetectPerGroup)

	uc.Name = result.Groups["name"]
	uc.AutoTranslatedFields = mergeAutoFields(uc.AutoTranslatedFields, result.AutoTranslated)
	uc.Slugs = makeSlugs(uc.Name, uc.ID)
}

// Article fills an article's missing variants across all four field
// groups. Articles are always authored in Ukrainian: every group
// translates from uk, and a blank Ukrainian title is an error.
func (s *Service) Article(ctx context.Context, article *model.Article) error {
	if article.Title.IsBlank(langcode.UK) {
		return fmt.Errorf("article title: %w", ErrNoPrimaryText)
	}

	result := s.articlePipeline.Run(ctx, map[string]langcode.Text{
		"title":       article.Title,
		"content":     article.Content,
		"description": article.Description,
		"keywords":    article.Keywords,
	}, translate.FixedPrimary(langcode.UK))

	article.Title = result.Groups["title"]
	article.Content = result.Groups["content"]
	article.Description = result.Groups["description"]
	article.Keywords = result.Groups["keywords"]
	article.AutoTranslatedFields = mergeAutoFields(article.AutoTranslatedFields, result.AutoTranslated)
	article.Slugs = makeSlugs(article.Title, article.ID)
	return nil
}

// UserProfile fills a performer's localized company fields and
// regenerates profile slugs. Languages whose company name is blank slug
// from the account name instead, so every profile stays addressable in
// all five languages.
func (s *Service) UserProfile(ctx context.Context, user *model.User) {
	result := s.pipeline.Run(ctx, map[string]langcode.Text{
		"company_name":        user.CompanyName,
		"company_description": user.CompanyDescription,
	}, translate.DetectPerGroup)

	user.CompanyName = result.Groups["company_name"]
	user.CompanyDescription = result.Groups["company_description"]
	user.AutoTranslatedFields = mergeAutoFields(user.AutoTranslatedFields, result.AutoTranslated)

	slugs := make(langcode.Text, len(langcode.All))
	for _, lang := range langcode.All {
		base := user.CompanyName.Get(lang)
		if base == "" {
			base = user.Name
		}
		if base == "" {
			continue
		}
		slugs[lang] = makeSlug(base, lang, user.ID)
	}
	user.Slugs = slugs
}

// Slugs derives one slug per filled language of source. A positive id is
// appended as a uniqueness suffix. Entities get their real id only after
// the insert, so callers regenerate slugs with Slugs once the row exists.
func Slugs(source langcode.Text, id int64) langcode.Text {
	return makeSlugs(source, id)
}

func makeSlugs(source langcode.Text, id int64) langcode.Text {
	slugs := make(langcode.Text, len(langcode.All))
	for _, lang := range langcode.All {
		text := source.Get(lang)
		if text == "" {
			continue
		}
		slugs[lang] = makeSlug(text, lang, id)
	}
	return slugs
}

func makeSlug(text string, lang langcode.Code, id int64) string {
	base := slug.Make(text, lang)
	if id > 0 {
		return slug.WithID(base, id)
	}
	return base
}

// mergeAutoFields unions the existing auto-translated keys with newly
// filled ones. The set only ever grows.
func mergeAutoFields(existing, added []string) []string {
	if len(added) == 0 {
		return existing
	}
	seen := make(map[string]struct{}, len(existing)+len(added))
	merged := make([]string, 0, len(existing)+len(added))
	for _, lists := range [][]string{existing, added} {
		for _, key := range lists {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, key)
		}
	}
	sort.Strings(merged)
	return merged
}
