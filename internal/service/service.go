// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the business logic layer: bid and company
// lifecycle, the service catalog, the blog, and user accounts. Services
// own validation and translation orchestration; handlers stay thin.
package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ykovalchuk/maisterni/internal/langcode"
)

// Enqueuer schedules a bid for background translation. The worker
// package provides the production implementation.
type Enqueuer interface {
	Enqueue(bidID int64)
}

// Errors shared by the verification flows.
var (
	ErrCodeMismatch = errors.New("verification code does not match")
	ErrCodeExpired  = errors.New("verification code expired or not requested")
)

const verificationCodeDigits = 6

// newVerificationCode returns a zero-padded random numeric code.
func newVerificationCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < verificationCodeDigits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generating verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", verificationCodeDigits, n), nil
}

// dropAutoFields removes the "{group}_{lang}" keys for every language the
// user just provided by hand. A manual edit makes the value human text,
// so the machine-translation badge must come off.
func dropAutoFields(existing []string, group string, provided langcode.Text) []string {
	if len(existing) == 0 || len(provided) == 0 {
		return existing
	}
	kept := make([]string, 0, len(existing))
	for _, key := range existing {
		drop := false
		for lang := range provided {
			if key == group+"_"+string(lang) {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, key)
		}
	}
	return kept
}

// overlay writes every provided language variant over base, returning a
// fresh map. Blank provided values clear the variant so it can be
// retranslated.
func overlay(base, provided langcode.Text) langcode.Text {
	merged := base.Clone()
	for lang, value := range provided {
		if strings.TrimSpace(value) == "" {
			delete(merged, lang)
			continue
		}
		merged[lang] = value
	}
	return merged
}
