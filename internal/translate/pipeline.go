// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"fmt"
	"sort"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

// PrimaryStrategy decides the source language for one field group.
type PrimaryStrategy func(group langcode.Text) langcode.Code

// DetectPerGroup infers each group's primary language independently by
// priority-ordered first-non-blank scan. A title authored in English and a
// description authored in Ukrainian keep different source languages.
func DetectPerGroup(group langcode.Text) langcode.Code {
	return langcode.Detect(group)
}

// FixedPrimary always reports the given language regardless of which
// variants are filled. Blog articles use FixedPrimary(langcode.UK).
func FixedPrimary(code langcode.Code) PrimaryStrategy {
	return func(langcode.Text) langcode.Code {
		return code
	}
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Groups holds every input group with missing language variants filled
	// where translation (or its fallback) produced text.
	Groups map[string]langcode.Text

	// AutoTranslated lists the "{group}_{lang}" keys filled by the pipeline
	// rather than supplied by the author, sorted for stable persistence.
	AutoTranslated []string
}

// FieldKey builds the canonical per-language field key.
func FieldKey(group string, lang langcode.Code) string {
	return fmt.Sprintf("%s_%s", group, lang)
}

// Pipeline propagates authored text into every missing language variant.
// It is a pure transformation: the only side effects are the provider
// calls delegated to the orchestrator.
type Pipeline struct {
	orch *Orchestrator
}

// NewPipeline creates a pipeline over the given orchestrator.
func NewPipeline(orch *Orchestrator) *Pipeline {
	return &Pipeline{orch: orch}
}

// Run fills the missing variants of every group.
//
// Per group: the strategy picks the primary language; a group whose
// primary value is blank is returned unchanged; variants that are already
// non-blank are never overwritten. All queued requests across all groups
// go to the orchestrator in a single batch. A provider failure degrades
// the affected variant to the primary-language text, so after a run every
// group with authored content has a non-blank value for all five
// languages.
func (p *Pipeline) Run(ctx context.Context, groups map[string]langcode.Text, strategy PrimaryStrategy) Result {
	if strategy == nil {
		strategy = DetectPerGroup
	}

	out := Result{Groups: make(map[string]langcode.Text, len(groups))}

	var requests []Request
	for name, group := range groups {
		filled := group.Clone()
		out.Groups[name] = filled

		primary := strategy(group)
		primaryText := group.Get(primary)
		if primaryText == "" {
			// Nothing to propagate from.
			continue
		}

		for _, lang := range langcode.All {
			if lang == primary || !group.IsBlank(lang) {
				continue
			}
			requests = append(requests, Request{
				Key:    FieldKey(name, lang),
				Text:   primaryText,
				Source: primary,
				Target: lang,
			})
		}
	}

	if len(requests) == 0 {
		return out
	}

	translated := p.orch.Run(ctx, requests)

	for _, req := range requests {
		text := translated[req.Key]
		if text == "" {
			continue
		}
		group := out.Groups[groupOf(req.Key, req.Target)]
		group[req.Target] = text
		out.AutoTranslated = append(out.AutoTranslated, req.Key)
	}

	sort.Strings(out.AutoTranslated)
	return out
}

// groupOf strips the "_{lang}" suffix from a field key.
func groupOf(key string, lang langcode.Code) string {
	return key[:len(key)-len(lang)-1]
}
