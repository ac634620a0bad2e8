// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

// Package langcode defines the closed set of languages the marketplace
// localizes content into, and the primary-language detection rules shared
// by every localized entity type.
package langcode

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Code is a supported content language.
type Code string

const (
	UK Code = "uk"
	EN Code = "en"
	PL Code = "pl"
	FR Code = "fr"
	DE Code = "de"
)

// Default is the fallback language when detection finds nothing.
const Default = UK

// All lists the supported languages in detection priority order.
// The order is load-bearing: primary-language detection scans it front to
// back and returns the first language with non-blank content.
var All = []Code{UK, EN, PL, FR, DE}

// ErrUnsupported is returned when a language code outside the supported
// set reaches the localization boundary. Callers are expected to reject
// the request rather than silently defaulting.
type ErrUnsupported struct {
	Code string
}

func (e ErrUnsupported) Error() string {
	return fmt.Sprintf("unsupported language code %q", e.Code)
}

// Parse validates a raw language code against the supported set.
// The code must also be a well-formed BCP 47 tag; "UK" and "uk-UA" are
// normalized to "uk", anything outside the set is rejected.
func Parse(raw string) (Code, error) {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", ErrUnsupported{Code: raw}
	}
	base, _ := tag.Base()
	code := Code(base.String())
	if !IsSupported(string(code)) {
		return "", ErrUnsupported{Code: raw}
	}
	return code, nil
}

// IsSupported reports whether raw is exactly one of the supported codes.
func IsSupported(raw string) bool {
	for _, c := range All {
		if string(c) == raw {
			return true
		}
	}
	return false
}

// Text is a localized text field: one optional value per language.
// Missing and blank values are equivalent for detection purposes.
type Text map[Code]string

// Get returns the value for lang with surrounding whitespace removed.
func (t Text) Get(lang Code) string {
	return strings.TrimSpace(t[lang])
}

// IsBlank reports whether the value for lang is empty or whitespace-only.
func (t Text) IsBlank(lang Code) bool {
	return t.Get(lang) == ""
}

// IsEmpty reports whether no language has a non-blank value.
func (t Text) IsEmpty() bool {
	for _, lang := range All {
		if !t.IsBlank(lang) {
			return false
		}
	}
	return true
}

// Resolve returns the value for lang, falling back to English and then
// the remaining languages in priority order. Used when projecting an
// entity into one display language.
func (t Text) Resolve(lang Code) string {
	if v := t.Get(lang); v != "" {
		return v
	}
	if v := t.Get(EN); v != "" {
		return v
	}
	for _, c := range All {
		if v := t.Get(c); v != "" {
			return v
		}
	}
	return ""
}

// Clone returns a copy sharing no storage with t.
func (t Text) Clone() Text {
	out := make(Text, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Detect returns the primary language of the given field groups: the first
// language in priority order with a non-blank value. Groups are scanned in
// argument order, so callers that pass (title, description) get title-first
// precedence. Returns Default when every value is blank.
func Detect(groups ...Text) Code {
	for _, group := range groups {
		for _, lang := range All {
			if !group.IsBlank(lang) {
				return lang
			}
		}
	}
	return Default
}
