// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

// Package slug generates URL-safe identifiers from localized text.
// Ukrainian input is transliterated through the official KMU romanization
// table; every other supported language goes through generic Unicode
// transliteration. Output is restricted to [a-z0-9-].
package slug

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mozillazg/go-unidecode"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

// MaxLength is the default slug length cap.
const MaxLength = 100

// Fallback is returned when the input reduces to nothing.
const Fallback = "untitled"

var (
	stripPolicy = bluemonday.StrictPolicy()

	// nonSlugChars matches runs of anything outside the slug alphabet.
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen matches runs of two or more hyphens.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// ukTranslit maps lowercase Ukrainian Cyrillic to Latin. Soft sign and
// apostrophe are dropped entirely.
var ukTranslit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "h", 'ґ': "g", 'д': "d",
	'е': "e", 'є': "ie", 'ж': "zh", 'з': "z", 'и': "y", 'і': "i",
	'ї': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ь': "", 'ю': "yu", 'я': "ya",
	'\'': "", '’': "", 'ʼ': "",
}

// Make converts text into a slug for the given language, capped at
// MaxLength bytes. It is a pure function: identical arguments always
// produce identical output.
func Make(text string, lang langcode.Code) string {
	return MakeN(text, lang, MaxLength)
}

// MakeN is Make with an explicit length cap.
func MakeN(text string, lang langcode.Code, maxLength int) string {
	// Drop markup first so tag names never leak into the slug.
	s := html.UnescapeString(stripPolicy.Sanitize(text))
	s = strings.ToLower(strings.TrimSpace(s))

	if lang == langcode.UK {
		s = transliterateUK(s)
	} else {
		s = unidecode.Unidecode(s)
	}

	s = nonSlugChars.ReplaceAllString(s, "-")
	s = multiHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if maxLength > 0 && len(s) > maxLength {
		s = strings.TrimRight(s[:maxLength], "-")
	}

	if s == "" {
		return Fallback
	}
	return s
}

// WithID appends the owning entity's numeric ID, the uniqueness qualifier
// used for every persisted entity.
func WithID(base string, id int64) string {
	return fmt.Sprintf("%s-%d", base, id)
}

// IsValid reports whether s already has canonical slug form.
func IsValid(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	if strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	return true
}

func transliterateUK(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := ukTranslit[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
