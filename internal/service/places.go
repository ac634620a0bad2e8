// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ykovalchuk/maisterni/internal/langcode"
	"github.com/ykovalchuk/maisterni/internal/model"
	"github.com/ykovalchuk/maisterni/internal/store"
)

// ErrCountryNotFound is returned for lookups of missing countries.
var ErrCountryNotFound = errors.New("country not found")

// Place is a country or city projected into one display language.
type Place struct {
	ID        int64   `json:"id"`
	CountryID int64   `json:"country_id,omitempty"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Cities    []Place `json:"cities,omitempty"`
}

// PlaceService serves the seeded geographic reference data used to tag
// bids and profiles with a location.
type PlaceService struct {
	queries *store.Queries
}

// NewPlaceService creates a PlaceService.
func NewPlaceService(queries *store.Queries) *PlaceService {
	return &PlaceService{queries: queries}
}

// Countries lists all countries in one display language.
func (s *PlaceService) Countries(ctx context.Context, lang langcode.Code) ([]Place, error) {
	countries, err := s.queries.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	places := make([]Place, 0, len(countries))
	for _, country := range countries {
		places = append(places, Place{
			ID:   country.ID,
			Name: country.Name.Resolve(lang),
			Slug: country.Slugs.Resolve(lang),
		})
	}
	return places, nil
}

// Country returns one country with its cities nested.
func (s *PlaceService) Country(ctx context.Context, lang langcode.Code, id int64) (*Place, error) {
	country, err := s.queries.GetCountryByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCountryNotFound
		}
		return nil, err
	}
	cities, err := s.queries.ListCitiesByCountry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing cities of %d: %w", id, err)
	}

	place := &Place{
		ID:   country.ID,
		Name: country.Name.Resolve(lang),
		Slug: country.Slugs.Resolve(lang),
	}
	for _, city := range cities {
		place.Cities = append(place.Cities, Place{
			ID:   city.ID,
			Name: city.Name.Resolve(lang),
			Slug: city.Slugs.Resolve(lang),
		})
	}
	return place, nil
}

// Cities lists cities in one display language, optionally narrowed to a
// country.
func (s *PlaceService) Cities(ctx context.Context, lang langcode.Code, countryID int64) ([]Place, error) {
	var (
		cities []model.City
		err    error
	)
	if countryID > 0 {
		cities, err = s.queries.ListCitiesByCountry(ctx, countryID)
	} else {
		cities, err = s.queries.ListCities(ctx)
	}
	if err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(cities))
	for _, city := range cities {
		places = append(places, Place{
			ID:        city.ID,
			CountryID: city.CountryID,
			Name:      city.Name.Resolve(lang),
			Slug:      city.Slugs.Resolve(lang),
		})
	}
	return places, nil
}
