// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ykovalchuk/maisterni/internal/langcode"
	"github.com/ykovalchuk/maisterni/internal/localize"
	"github.com/ykovalchuk/maisterni/internal/model"
	"github.com/ykovalchuk/maisterni/internal/slug"
	"github.com/ykovalchuk/maisterni/internal/store"
)

// Catalog errors.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidKey       = errors.New("invalid category key")
)

// CatalogSection is a category or undercategory projected into one
// display language for listing endpoints.
type CatalogSection struct {
	ID       int64            `json:"id"`
	Key      string           `json:"key,omitempty"`
	Name     string           `json:"name"`
	Slug     string           `json:"slug"`
	Children []CatalogSection `json:"children,omitempty"`
}

// CatalogService manages the two-level service catalog.
type CatalogService struct {
	queries   *store.Queries
	localizer *localize.Service
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(queries *store.Queries, localizer *localize.Service) *CatalogService {
	return &CatalogService{queries: queries, localizer: localizer}
}

// CreateCategory translates and persists a top-level category. The key is
// a stable machine identifier and must already be in slug form; category
// slugs carry no id suffix because the key keeps them unique.
func (s *CatalogService) CreateCategory(ctx context.Context, key string, name map[string]string) (*model.Category, error) {
	if !slug.IsValid(key) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	text, err := localize.TextFromMap(name)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}

	category := &model.Category{Key: key, Name: text}
	s.localizer.Category(ctx, category)

	id, err := s.queries.CreateCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	category.ID = id
	return category, nil
}

// UpdateCategory overlays new name variants and retranslates the rest.
func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, name map[string]string) (*model.Category, error) {
	category, err := s.queries.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	text, err := localize.TextFromMap(name)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}

	category.Name = overlay(category.Name, text)
	category.AutoTranslatedFields = dropAutoFields(category.AutoTranslatedFields, "name", text)
	s.localizer.Category(ctx, category)
	if err := s.queries.UpdateCategoryLocalization(ctx, category); err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}
	return category, nil
}

// CreateUnderCategory translates and persists a second-level section.
// Unlike categories, undercategory slugs get an id suffix: nothing else
// keeps sibling names unique.
func (s *CatalogService) CreateUnderCategory(ctx context.Context, categoryID int64, name map[string]string) (*model.UnderCategory, error) {
	if _, err := s.queries.GetCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	text, err := localize.TextFromMap(name)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}

	uc := &model.UnderCategory{CategoryID: categoryID, Name: text}
	s.localizer.UnderCategory(ctx, uc)

	id, err := s.queries.CreateUnderCategory(ctx, uc)
	if err != nil {
		return nil, fmt.Errorf("creating undercategory: %w", err)
	}
	uc.ID = id

	uc.Slugs = localize.Slugs(uc.Name, id)
	if err := s.queries.UpdateUnderCategoryLocalization(ctx, uc); err != nil {
		return nil, fmt.Errorf("attaching undercategory slugs: %w", err)
	}
	return uc, nil
}

// Tree returns the full catalog projected into one display language,
// categories with their undercategories nested.
func (s *CatalogService) Tree(ctx context.Context, lang langcode.Code) ([]CatalogSection, error) {
	categories, err := s.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	sections := make([]CatalogSection, 0, len(categories))
	for _, category := range categories {
		children, err := s.queries.ListUnderCategories(ctx, category.ID)
		if err != nil {
			return nil, fmt.Errorf("listing undercategories of %d: %w", category.ID, err)
		}
		section := CatalogSection{
			ID:   category.ID,
			Key:  category.Key,
			Name: category.Name.Resolve(lang),
			Slug: category.Slugs.Resolve(lang),
		}
		for _, uc := range children {
			section.Children = append(section.Children, CatalogSection{
				ID:   uc.ID,
				Name: uc.Name.Resolve(lang),
				Slug: uc.Slugs.Resolve(lang),
			})
		}
		sections = append(sections, section)
	}
	return sections, nil
}
