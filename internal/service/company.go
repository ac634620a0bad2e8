// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ykovalchuk/maisterni/internal/localize"
	"github.com/ykovalchuk/maisterni/internal/model"
	"github.com/ykovalchuk/maisterni/internal/store"
)

// ErrCompanyNotFound is returned for lookups of missing companies.
var ErrCompanyNotFound = errors.New("company not found")

// CompanyInput is the raw request payload for creating or updating a
// company profile.
type CompanyInput struct {
	Name        map[string]string `json:"name"`
	Description map[string]string `json:"description"`
	Categories  []int64           `json:"categories"`
	OwnerID     *int64            `json:"-"`
}

// CompanyService manages performer company profiles.
type CompanyService struct {
	queries   *store.Queries
	localizer *localize.Service
}

// NewCompanyService creates a CompanyService.
func NewCompanyService(queries *store.Queries, localizer *localize.Service) *CompanyService {
	return &CompanyService{queries: queries, localizer: localizer}
}

// Create translates the missing variants of a new company profile and
// persists it with id-suffixed slugs.
func (s *CompanyService) Create(ctx context.Context, in CompanyInput) (*model.Company, error) {
	name, err := localize.TextFromMap(in.Name)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	description, err := localize.TextFromMap(in.Description)
	if err != nil {
		return nil, fmt.Errorf("description: %w", err)
	}

	company := &model.Company{
		Name:        name,
		Description: description,
		Categories:  in.Categories,
		OwnerID:     in.OwnerID,
	}
	s.localizer.Company(ctx, company)

	id, err := s.queries.CreateCompany(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("creating company: %w", err)
	}
	company.ID = id

	company.Slugs = localize.Slugs(company.Name, id)
	if err := s.queries.UpdateCompanyLocalization(ctx, company); err != nil {
		return nil, fmt.Errorf("attaching company slugs: %w", err)
	}
	return company, nil
}

// Update overlays the provided language variants onto the stored profile
// and retranslates whatever is still missing. Hand-edited variants lose
// their machine-translation badge.
func (s *CompanyService) Update(ctx context.Context, id int64, in CompanyInput) (*model.Company, error) {
	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := localize.TextFromMap(in.Name)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	description, err := localize.TextFromMap(in.Description)
	if err != nil {
		return nil, fmt.Errorf("description: %w", err)
	}

	company.Name = overlay(company.Name, name)
	company.Description = overlay(company.Description, description)
	company.AutoTranslatedFields = dropAutoFields(company.AutoTranslatedFields, "name", name)
	company.AutoTranslatedFields = dropAutoFields(company.AutoTranslatedFields, "description", description)
	if in.Categories != nil {
		company.Categories = in.Categories
	}

	s.localizer.Company(ctx, company)
	if err := s.queries.UpdateCompanyLocalization(ctx, company); err != nil {
		return nil, fmt.Errorf("updating company: %w", err)
	}
	return company, nil
}

// Get returns a company by id.
func (s *CompanyService) Get(ctx context.Context, id int64) (*model.Company, error) {
	company, err := s.queries.GetCompanyByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

// List returns a page of companies, newest first.
func (s *CompanyService) List(ctx context.Context, limit, offset int) ([]model.Company, error) {
	return s.queries.ListCompanies(ctx, limit, offset)
}

// Delete removes a company on behalf of its owner or an admin.
func (s *CompanyService) Delete(ctx context.Context, id int64, actor *model.User) error {
	company, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && (company.OwnerID == nil || *company.OwnerID != actor.ID) {
		return ErrNotAuthorized
	}
	return s.queries.DeleteCompany(ctx, id)
}
