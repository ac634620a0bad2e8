// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"
)

// ListCountries returns all countries in the request language.
func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.places.Countries(r.Context(), langFrom(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, countries, &Meta{Count: len(countries)})
}

// GetCountry returns one country with its cities nested.
func (h *Handler) GetCountry(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid country id", nil)
		return
	}
	country, err := h.places.Country(r.Context(), langFrom(r), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, country, nil)
}

// ListCities returns cities, narrowed by the optional country query
// parameter.
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	var countryID int64
	if raw := r.URL.Query().Get("country"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			WriteBadRequest(w, "invalid country filter", nil)
			return
		}
		countryID = n
	}
	cities, err := h.places.Cities(r.Context(), langFrom(r), countryID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, cities, &Meta{Count: len(cities)})
}
