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
	"github.com/ykovalchuk/maisterni/internal/model"
)

func newCompanyService(t *testing.T) *CompanyService {
	t.Helper()
	return NewCompanyService(newTestQueries(t), newTestLocalizer())
}

func TestCompanyCreateTranslatesAndSlugs(t *testing.T) {
	svc := newCompanyService(t)
	ctx := context.Background()

	owner := int64(3)
	company, err := svc.Create(ctx, CompanyInput{
		Name:        map[string]string{"uk": "Майстри дерева"},
		Description: map[string]string{"uk": "Меблі на замовлення"},
		Categories:  []int64{1, 2},
		OwnerID:     &owner,
	})
	require.NoError(t, err)
	require.NotZero(t, company.ID)

	for _, lang := range langcode.All {
		assert.False(t, company.Name.IsBlank(lang), "name %s", lang)
	}
	assert.Contains(t, company.AutoTranslatedFields, "description_fr")
	assert.Equal(t, "maystry-dereva-"+strconv.FormatInt(company.ID, 10), company.Slugs.Get(langcode.UK))

	stored, err := svc.Get(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, company.Slugs, stored.Slugs)
	assert.Equal(t, []int64{1, 2}, stored.Categories)
}

func TestCompanyCrossLanguagePrimaries(t *testing.T) {
	svc := newCompanyService(t)

	// Name is authored in Ukrainian, description in English. Each group
	// translates from its own primary.
	company, err := svc.Create(context.Background(), CompanyInput{
		Name:        map[string]string{"uk": "Студія"},
		Description: map[string]string{"en": "Quality first"},
	})
	require.NoError(t, err)

	assert.Equal(t, "[en]Студія", company.Name.Get(langcode.EN))
	assert.Equal(t, "[uk]Quality first", company.Description.Get(langcode.UK))
}

func TestCompanyUpdateClearsAutoBadge(t *testing.T) {
	svc := newCompanyService(t)
	ctx := context.Background()

	company, err := svc.Create(ctx, CompanyInput{
		Name: map[string]string{"uk": "Ательє"},
	})
	require.NoError(t, err)
	require.Contains(t, company.AutoTranslatedFields, "name_de")

	updated, err := svc.Update(ctx, company.ID, CompanyInput{
		Name: map[string]string{"de": "Atelier"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Atelier", updated.Name.Get(langcode.DE))
	assert.NotContains(t, updated.AutoTranslatedFields, "name_de")
}

func TestCompanyDeleteAuthorization(t *testing.T) {
	svc := newCompanyService(t)
	ctx := context.Background()

	owner := int64(5)
	company, err := svc.Create(ctx, CompanyInput{
		Name:    map[string]string{"uk": "Фірма"},
		OwnerID: &owner,
	})
	require.NoError(t, err)

	stranger := &model.User{ID: 9, Role: model.RoleUser}
	assert.ErrorIs(t, svc.Delete(ctx, company.ID, stranger), ErrNotAuthorized)

	ownerUser := &model.User{ID: owner, Role: model.RoleUser}
	require.NoError(t, svc.Delete(ctx, company.ID, ownerUser))

	_, err = svc.Get(ctx, company.ID)
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}
