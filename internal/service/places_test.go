// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

func TestCountriesLocalized(t *testing.T) {
	svc := NewPlaceService(newTestQueries(t))
	ctx := context.Background()

	countries, err := svc.Countries(ctx, langcode.UK)
	require.NoError(t, err)
	require.Len(t, countries, 5)
	assert.Equal(t, "Україна", countries[0].Name)
	assert.Equal(t, "Інше", countries[4].Name)

	countries, err = svc.Countries(ctx, langcode.PL)
	require.NoError(t, err)
	assert.Equal(t, "Ukraina", countries[0].Name)
	assert.Equal(t, "polska", countries[1].Slug)
}

func TestCountryNestsCities(t *testing.T) {
	svc := NewPlaceService(newTestQueries(t))
	ctx := context.Background()

	germany, err := svc.Country(ctx, langcode.DE, 4)
	require.NoError(t, err)
	assert.Equal(t, "Deutschland", germany.Name)
	require.Len(t, germany.Cities, 5)
	assert.Equal(t, "Berlin", germany.Cities[0].Name)

	_, err = svc.Country(ctx, langcode.DE, 42)
	assert.ErrorIs(t, err, ErrCountryNotFound)
}

func TestCitiesFilterByCountry(t *testing.T) {
	svc := NewPlaceService(newTestQueries(t))
	ctx := context.Background()

	all, err := svc.Cities(ctx, langcode.EN, 0)
	require.NoError(t, err)
	assert.Len(t, all, 25)

	french, err := svc.Cities(ctx, langcode.FR, 3)
	require.NoError(t, err)
	require.Len(t, french, 5)
	assert.Equal(t, "Paris", french[0].Name)
	assert.Equal(t, int64(3), french[0].CountryID)
}
