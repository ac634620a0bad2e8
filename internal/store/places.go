// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ykovalchuk/maisterni/internal/model"
)

var (
	countryCols = fmt.Sprintf(
		"id, %s, %s, created_at, updated_at",
		localizedCols("name"), localizedCols("slug"))
	cityCols = fmt.Sprintf(
		"id, country_id, %s, %s, created_at, updated_at",
		localizedCols("name"), localizedCols("slug"))
)

// ListCountries returns all countries in their seeded order.
func (q *Queries) ListCountries(ctx context.Context) ([]model.Country, error) {
	rows, err := q.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM countries ORDER BY id", countryCols))
	if err != nil {
		return nil, fmt.Errorf("listing countries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var countries []model.Country
	for rows.Next() {
		country, err := scanCountry(rows)
		if err != nil {
			return nil, err
		}
		countries = append(countries, *country)
	}
	return countries, rows.Err()
}

// GetCountryByID fetches one country.
func (q *Queries) GetCountryByID(ctx context.Context, id int64) (*model.Country, error) {
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM countries WHERE id = ?", countryCols), id)
	return scanCountry(row)
}

// ListCities returns every city, across all countries.
func (q *Queries) ListCities(ctx context.Context) ([]model.City, error) {
	return q.queryCities(ctx,
		fmt.Sprintf("SELECT %s FROM cities ORDER BY country_id, id", cityCols))
}

// ListCitiesByCountry returns a country's cities.
func (q *Queries) ListCitiesByCountry(ctx context.Context, countryID int64) ([]model.City, error) {
	return q.queryCities(ctx,
		fmt.Sprintf("SELECT %s FROM cities WHERE country_id = ? ORDER BY id", cityCols),
		countryID)
}

func (q *Queries) queryCities(ctx context.Context, query string, args ...any) ([]model.City, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cities []model.City
	for rows.Next() {
		city, err := scanCity(rows)
		if err != nil {
			return nil, err
		}
		cities = append(cities, *city)
	}
	return cities, rows.Err()
}

func scanCountry(row rowScanner) (*model.Country, error) {
	var (
		country     model.Country
		name, slugs localizedScanner
	)

	dest := []any{&country.ID}
	dest = append(dest, name.dest()...)
	dest = append(dest, slugs.dest()...)
	dest = append(dest, &country.CreatedAt, &country.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning country: %w", err)
	}

	country.Name = name.text()
	country.Slugs = slugs.text()
	return &country, nil
}

func scanCity(row rowScanner) (*model.City, error) {
	var (
		city        model.City
		name, slugs localizedScanner
	)

	dest := []any{&city.ID, &city.CountryID}
	dest = append(dest, name.dest()...)
	dest = append(dest, slugs.dest()...)
	dest = append(dest, &city.CreatedAt, &city.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning city: %w", err)
	}

	city.Name = name.text()
	city.Slugs = slugs.text()
	return &city, nil
}
