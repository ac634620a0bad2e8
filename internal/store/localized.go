// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

// localizedCols expands a column prefix into its five per-language column
// names, in langcode priority order ("title" -> "title_uk, title_en, ...").
func localizedCols(prefix string) string {
	names := make([]string, 0, len(langcode.All))
	for _, lang := range langcode.All {
		names = append(names, fmt.Sprintf("%s_%s", prefix, lang))
	}
	return strings.Join(names, ", ")
}

// localizedArgs flattens a Text into per-language SQL arguments matching
// the localizedCols order. Blank variants become NULL.
func localizedArgs(t langcode.Text) []any {
	args := make([]any, 0, len(langcode.All))
	for _, lang := range langcode.All {
		if v := t.Get(lang); v != "" {
			args = append(args, v)
		} else {
			args = append(args, nil)
		}
	}
	return args
}

// localizedDest returns scan destinations that fill t in the
// localizedCols order.
type localizedScanner struct {
	cols [5]sql.NullString
}

func (s *localizedScanner) dest() []any {
	out := make([]any, len(s.cols))
	for i := range s.cols {
		out[i] = &s.cols[i]
	}
	return out
}

func (s *localizedScanner) text() langcode.Text {
	t := make(langcode.Text, len(langcode.All))
	for i, lang := range langcode.All {
		if s.cols[i].Valid && s.cols[i].String != "" {
			t[lang] = s.cols[i].String
		}
	}
	return t
}

// jsonText serializes a slice into a nullable JSON TEXT column.
func jsonText[T any](v []T) (any, error) {
	if len(v) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding json column: %w", err)
	}
	return string(data), nil
}

// jsonSlice decodes a nullable JSON TEXT column back into a slice.
func jsonSlice[T any](raw sql.NullString) ([]T, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil, fmt.Errorf("decoding json column: %w", err)
	}
	return out, nil
}

// nullStr converts an optional string into a nullable argument.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// strOrEmpty unwraps a nullable text column.
func strOrEmpty(s sql.NullString) string {
	if s.Valid {
		return s.String
	}
	return ""
}
