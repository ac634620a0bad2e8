// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package langcode

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Code
		wantErr bool
	}{
		{name: "ukrainian", raw: "uk", want: UK},
		{name: "english", raw: "en", want: EN},
		{name: "polish", raw: "pl", want: PL},
		{name: "french", raw: "fr", want: FR},
		{name: "german", raw: "de", want: DE},
		{name: "uppercase normalized", raw: "UK", want: UK},
		{name: "region stripped", raw: "uk-UA", want: UK},
		{name: "surrounding whitespace", raw: " en ", want: EN},
		{name: "unsupported russian", raw: "ru", wantErr: true},
		{name: "unsupported spanish", raw: "es", wantErr: true},
		{name: "garbage", raw: "not-a-lang-code!!", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %q, want error", tt.raw, got)
				}
				var unsupported ErrUnsupported
				if !errors.As(err, &unsupported) {
					t.Fatalf("Parse(%q) error = %v, want ErrUnsupported", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		groups []Text
		want   Code
	}{
		{
			name:   "ukrainian first in priority",
			groups: []Text{{UK: "Розробка сайту", EN: "Website development"}},
			want:   UK,
		},
		{
			name:   "english when ukrainian blank",
			groups: []Text{{UK: "   ", EN: "Website development"}},
			want:   EN,
		},
		{
			name:   "german as last resort",
			groups: []Text{{DE: "Webseitenentwicklung"}},
			want:   DE,
		},
		{
			name:   "all blank falls back to default",
			groups: []Text{{}},
			want:   Default,
		},
		{
			name: "title group wins over description group",
			groups: []Text{
				{PL: "Tworzenie stron"},
				{UK: "Розробка сайту"},
			},
			want: PL,
		},
		{
			name: "description group used when title empty",
			groups: []Text{
				{},
				{FR: "Développement de site"},
			},
			want: FR,
		},
		{
			name:   "no groups",
			groups: nil,
			want:   Default,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.groups...); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextHelpers(t *testing.T) {
	txt := Text{UK: " Тест ", EN: ""}

	if got := txt.Get(UK); got != "Тест" {
		t.Errorf("Get(UK) = %q, want %q", got, "Тест")
	}
	if !txt.IsBlank(EN) {
		t.Error("IsBlank(EN) = false, want true")
	}
	if txt.IsBlank(UK) {
		t.Error("IsBlank(UK) = true, want false")
	}
	if txt.IsEmpty() {
		t.Error("IsEmpty() = true, want false")
	}
	if !(Text{}).IsEmpty() {
		t.Error("empty Text IsEmpty() = false, want true")
	}

	clone := txt.Clone()
	clone[EN] = "Test"
	if txt.Get(EN) != "" {
		t.Error("Clone shares storage with original")
	}
}
