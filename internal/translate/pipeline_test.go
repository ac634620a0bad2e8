// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

func newTestPipeline(provider Provider) *Pipeline {
	return NewPipeline(NewOrchestrator(provider, 3, discardLogger()))
}

func TestPipelinePropagatesFromPrimary(t *testing.T) {
	provider := &fakeProvider{}
	p := newTestPipeline(provider)

	result := p.Run(context.Background(), map[string]langcode.Text{
		"title":       {langcode.UK: "Розробка сайту"},
		"description": {},
	}, DetectPerGroup)

	title := result.Groups["title"]
	require.Equal(t, "Розробка сайту", title.Get(langcode.UK))
	for _, lang := range []langcode.Code{langcode.EN, langcode.PL, langcode.FR, langcode.DE} {
		assert.Equal(t, "["+string(lang)+"]Розробка сайту", title.Get(lang), "title_%s", lang)
	}

	// Description had nothing to translate from.
	assert.True(t, result.Groups["description"].IsEmpty())

	assert.ElementsMatch(t,
		[]string{"title_de", "title_en", "title_fr", "title_pl"},
		result.AutoTranslated)
	assert.Equal(t, 4, provider.callCount())
}

func TestPipelineNeverOverwrites(t *testing.T) {
	provider := &fakeProvider{}
	p := newTestPipeline(provider)

	result := p.Run(context.Background(), map[string]langcode.Text{
		"name": {langcode.UK: "Тест", langcode.EN: "Test"},
	}, DetectPerGroup)

	name := result.Groups["name"]
	assert.Equal(t, "Тест", name.Get(langcode.UK))
	assert.Equal(t, "Test", name.Get(langcode.EN), "authored value must survive untouched")
	assert.ElementsMatch(t,
		[]string{"name_de", "name_fr", "name_pl"},
		result.AutoTranslated)
	assert.Equal(t, 3, provider.callCount(), "only pl, fr, de should be queued")
}

func TestPipelineEmptyInputIsNoop(t *testing.T) {
	provider := &fakeProvider{}
	p := newTestPipeline(provider)

	result := p.Run(context.Background(), map[string]langcode.Text{
		"title":       {},
		"description": {langcode.UK: "   "},
	}, DetectPerGroup)

	assert.True(t, result.Groups["title"].IsEmpty())
	assert.True(t, result.Groups["description"].IsEmpty())
	assert.Empty(t, result.AutoTranslated)
	assert.Zero(t, provider.callCount(), "no provider calls for blank input")
}

func TestPipelineIdempotentOnFilledInput(t *testing.T) {
	provider := &fakeProvider{}
	p := newTestPipeline(provider)

	full := langcode.Text{
		langcode.UK: "Тест", langcode.EN: "Test", langcode.PL: "Test",
		langcode.FR: "Essai", langcode.DE: "Test",
	}
	result := p.Run(context.Background(), map[string]langcode.Text{"title": full}, DetectPerGroup)

	assert.Equal(t, full, result.Groups["title"])
	assert.Empty(t, result.AutoTranslated)
	assert.Zero(t, provider.callCount())
}

func TestPipelineDegradesToSourceOnProviderOutage(t *testing.T) {
	provider := &fakeProvider{fail: true}
	p := newTestPipeline(provider)

	result := p.Run(context.Background(), map[string]langcode.Text{
		"title": {langcode.UK: "Розробка сайту"},
	}, DetectPerGroup)

	title := result.Groups["title"]
	for _, lang := range langcode.All {
		assert.Equal(t, "Розробка сайту", title.Get(lang),
			"every language must hold the source text under total outage")
	}
	// Degraded fields count as machine-filled: the retry sweep finds them
	// through this flag.
	assert.ElementsMatch(t,
		[]string{"title_de", "title_en", "title_fr", "title_pl"},
		result.AutoTranslated)
}

func TestPipelineIndependentGroupPrimaries(t *testing.T) {
	provider := &fakeProvider{}
	p := newTestPipeline(provider)

	result := p.Run(context.Background(), map[string]langcode.Text{
		"title":       {langcode.EN: "Website development"},
		"description": {langcode.UK: "Детальний опис"},
	}, DetectPerGroup)

	assert.Equal(t, "[uk]Website development", result.Groups["title"].Get(langcode.UK))
	assert.Equal(t, "[en]Детальний опис", result.Groups["description"].Get(langcode.EN))
}

func TestPipelineFixedPrimaryIgnoresOtherVariants(t *testing.T) {
	provider := &fakeProvider{}
	p := newTestPipeline(provider)

	// English is filled, but the fixed strategy still sources from uk —
	// and uk is blank, so the group is skipped entirely.
	result := p.Run(context.Background(), map[string]langcode.Text{
		"title": {langcode.EN: "English only"},
	}, FixedPrimary(langcode.UK))

	assert.Equal(t, langcode.Text{langcode.EN: "English only"}, result.Groups["title"])
	assert.Empty(t, result.AutoTranslated)
	assert.Zero(t, provider.callCount())
}

func TestPipelineFixedPrimaryTranslatesFromUK(t *testing.T) {
	provider := &fakeProvider{}
	p := newTestPipeline(provider)

	result := p.Run(context.Background(), map[string]langcode.Text{
		"title":    {langcode.UK: "Заголовок", langcode.EN: "Manual title"},
		"keywords": {langcode.UK: "ключові, слова"},
	}, FixedPrimary(langcode.UK))

	assert.Equal(t, "Manual title", result.Groups["title"].Get(langcode.EN))
	assert.Equal(t, "[pl]Заголовок", result.Groups["title"].Get(langcode.PL))
	assert.Equal(t, "[de]ключові, слова", result.Groups["keywords"].Get(langcode.DE))
}

func TestPipelineDoesNotMutateInput(t *testing.T) {
	provider := &fakeProvider{}
	p := newTestPipeline(provider)

	input := map[string]langcode.Text{
		"title": {langcode.UK: "Тест"},
	}
	p.Run(context.Background(), input, DetectPerGroup)

	require.Equal(t, langcode.Text{langcode.UK: "Тест"}, input["title"],
		"pipeline must operate on a copy")
}

func TestFieldKey(t *testing.T) {
	if got := FieldKey("title", langcode.EN); got != "title_en" {
		t.Errorf("FieldKey = %q, want %q", got, "title_en")
	}
	if got := groupOf("company_name_de", langcode.DE); got != "company_name" {
		t.Errorf("groupOf = %q, want %q", got, "company_name")
	}
}
