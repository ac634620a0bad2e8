// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykovalchuk/maisterni/internal/langcode"
	"github.com/ykovalchuk/maisterni/internal/model"
)

type stubEnqueuer struct {
	ids []int64
}

func (s *stubEnqueuer) Enqueue(bidID int64) {
	s.ids = append(s.ids, bidID)
}

func newBidService(t *testing.T, enqueue Enqueuer) *BidService {
	t.Helper()
	return NewBidService(newTestQueries(t), newTestLocalizer(), newTestCache(t), time.Minute, enqueue, nil)
}

func TestBidCreateTranslatesAndSlugs(t *testing.T) {
	svc := newBidService(t, &stubEnqueuer{})
	ctx := context.Background()

	bid, err := svc.Create(ctx, BidInput{
		Title:       map[string]string{"uk": "Розробка сайту"},
		Description: map[string]string{"uk": "Потрібен сайт"},
		Budget:      "500",
		BudgetType:  model.BudgetFixed,
	})
	require.NoError(t, err)
	require.NotZero(t, bid.ID)

	// Every language is filled and the machine-filled ones are flagged.
	for _, lang := range langcode.All {
		assert.False(t, bid.Title.IsBlank(lang), "title %s", lang)
	}
	assert.Contains(t, bid.AutoTranslatedFields, "title_en")
	assert.NotContains(t, bid.AutoTranslatedFields, "title_uk")

	// Slugs carry the row id as a uniqueness suffix.
	assert.Equal(t, "rozrobka-saytu-1", bid.Slugs.Get(langcode.UK))
	assert.False(t, bid.TranslationPending)

	// Guest bids get a delete token.
	assert.NotEmpty(t, bid.DeleteToken)

	stored, err := svc.Get(ctx, bid.ID)
	require.NoError(t, err)
	assert.Equal(t, bid.Slugs, stored.Slugs)
	assert.Equal(t, bid.AutoTranslatedFields, stored.AutoTranslatedFields)
}

func TestBidCreateRejectsUnsupportedLanguage(t *testing.T) {
	svc := newBidService(t, &stubEnqueuer{})

	_, err := svc.Create(context.Background(), BidInput{
		Title: map[string]string{"ru": "Сайт"},
	})
	require.Error(t, err)

	var unsupported langcode.ErrUnsupported
	assert.ErrorAs(t, err, &unsupported)
}

func TestBidCreateRejectsBadBudgetType(t *testing.T) {
	svc := newBidService(t, &stubEnqueuer{})

	_, err := svc.Create(context.Background(), BidInput{
		Title:      map[string]string{"uk": "Сайт"},
		BudgetType: "monthly",
	})
	assert.ErrorIs(t, err, ErrInvalidBudget)
}

func TestBidFastPathDefersTranslation(t *testing.T) {
	enqueuer := &stubEnqueuer{}
	svc := newBidService(t, enqueuer)
	ctx := context.Background()

	bid, err := svc.CreateFast(ctx, BidInput{
		Title:       map[string]string{"uk": "Дизайн логотипу"},
		Description: map[string]string{"uk": "Логотип для кафе"},
	})
	require.NoError(t, err)

	assert.True(t, bid.TranslationPending)
	assert.True(t, bid.Title.IsBlank(langcode.EN))
	assert.Equal(t, "dyzayn-lohotypu-1", bid.Slugs.Get(langcode.UK))
	require.Equal(t, []int64{bid.ID}, enqueuer.ids)

	// The worker completes the translation later.
	require.NoError(t, svc.Backfill(ctx, bid.ID))

	done, err := svc.Get(ctx, bid.ID)
	require.NoError(t, err)
	assert.False(t, done.TranslationPending)
	for _, lang := range langcode.All {
		assert.False(t, done.Title.IsBlank(lang), "title %s", lang)
		assert.False(t, done.Description.IsBlank(lang), "description %s", lang)
	}
	assert.Contains(t, done.AutoTranslatedFields, "description_de")
}

func TestBidBackfillMissing(t *testing.T) {
	svc := newBidService(t, &stubEnqueuer{})
	assert.ErrorIs(t, svc.Backfill(context.Background(), 42), ErrBidNotFound)
}

func TestGuestBidVerification(t *testing.T) {
	svc := newBidService(t, &stubEnqueuer{})
	ctx := context.Background()
	input := BidInput{Title: map[string]string{"uk": "Ремонт"}}

	code, err := svc.RequestGuestBid(ctx, "guest@example.com", input, false)
	require.NoError(t, err)
	require.Len(t, code, verificationCodeDigits)

	// Wrong code is rejected and the entry survives.
	_, err = svc.ConfirmGuestBid(ctx, "guest@example.com", "000000x")
	assert.ErrorIs(t, err, ErrCodeMismatch)

	bid, err := svc.ConfirmGuestBid(ctx, "guest@example.com", code)
	require.NoError(t, err)
	assert.NotZero(t, bid.ID)
	assert.NotEmpty(t, bid.DeleteToken)

	// The code is single-use.
	_, err = svc.ConfirmGuestBid(ctx, "guest@example.com", code)
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestGuestBidUnknownEmail(t *testing.T) {
	svc := newBidService(t, &stubEnqueuer{})

	_, err := svc.ConfirmGuestBid(context.Background(), "nobody@example.com", "123456")
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestBidDeleteByToken(t *testing.T) {
	svc := newBidService(t, &stubEnqueuer{})
	ctx := context.Background()

	bid, err := svc.Create(ctx, BidInput{Title: map[string]string{"uk": "Проєкт"}})
	require.NoError(t, err)
	require.NotEmpty(t, bid.DeleteToken)

	require.NoError(t, svc.DeleteByToken(ctx, bid.DeleteToken))
	_, err = svc.Get(ctx, bid.ID)
	assert.ErrorIs(t, err, ErrBidNotFound)

	assert.ErrorIs(t, svc.DeleteByToken(ctx, bid.DeleteToken), ErrBidNotFound)
}

func TestBidDeleteAuthorization(t *testing.T) {
	svc := newBidService(t, &stubEnqueuer{})
	ctx := context.Background()

	author := int64(7)
	bid, err := svc.Create(ctx, BidInput{
		Title:    map[string]string{"uk": "Переклад"},
		AuthorID: &author,
	})
	require.NoError(t, err)

	// Authored bids carry no guest delete token.
	assert.Empty(t, bid.DeleteToken)

	stranger := &model.User{ID: 99, Role: model.RoleUser}
	assert.ErrorIs(t, svc.Delete(ctx, bid.ID, stranger), ErrNotAuthorized)

	admin := &model.User{ID: 1, Role: model.RoleAdmin}
	require.NoError(t, svc.Delete(ctx, bid.ID, admin))
}

func TestBidListPaging(t *testing.T) {
	svc := newBidService(t, &stubEnqueuer{})
	ctx := context.Background()

	for _, title := range []string{"Перший", "Другий", "Третій"} {
		_, err := svc.Create(ctx, BidInput{Title: map[string]string{"uk": title}})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := svc.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
