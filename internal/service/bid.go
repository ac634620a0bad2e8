// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ykovalchuk/maisterni/internal/cache"
	"github.com/ykovalchuk/maisterni/internal/langcode"
	"github.com/ykovalchuk/maisterni/internal/localize"
	"github.com/ykovalchuk/maisterni/internal/model"
	"github.com/ykovalchuk/maisterni/internal/store"
)

// Bid lifecycle errors.
var (
	ErrBidNotFound   = errors.New("bid not found")
	ErrNotAuthorized = errors.New("not authorized")
	ErrInvalidBudget = errors.New("invalid budget type")
)

// BidInput is the raw request payload for creating a bid. Localized
// fields arrive keyed by language code and are validated at this
// boundary.
type BidInput struct {
	Title           map[string]string `json:"title"`
	Description     map[string]string `json:"description"`
	Categories      []int64           `json:"categories"`
	UnderCategories []int64           `json:"under_categories"`
	Budget          string            `json:"budget"`
	BudgetType      string            `json:"budget_type"`
	AuthorID        *int64            `json:"-"`
	Files           []string          `json:"files"`
}

func (in BidInput) toBid() (*model.Bid, error) {
	title, err := localize.TextFromMap(in.Title)
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	description, err := localize.TextFromMap(in.Description)
	if err != nil {
		return nil, fmt.Errorf("description: %w", err)
	}
	switch in.BudgetType {
	case "", model.BudgetFixed, model.BudgetHourly:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidBudget, in.BudgetType)
	}
	return &model.Bid{
		Title:           title,
		Description:     description,
		Categories:      in.Categories,
		UnderCategories: in.UnderCategories,
		Budget:          in.Budget,
		BudgetType:      in.BudgetType,
		AuthorID:        in.AuthorID,
		Files:           in.Files,
	}, nil
}

// PendingBid is a guest submission parked in the cache until its email
// verification code comes back.
type PendingBid struct {
	Input BidInput `json:"input"`
	Code  string   `json:"code"`
	Fast  bool     `json:"fast"`
}

// BidService creates, translates and deletes bids.
type BidService struct {
	queries   *store.Queries
	localizer *localize.Service
	pending   *cache.Typed[PendingBid]
	enqueue   Enqueuer
	logger    *slog.Logger
}

// NewBidService creates a BidService. pendingCache holds guest
// submissions awaiting email verification; enqueue feeds the background
// translation worker and may be nil, in which case the fast path
// translates inline in a detached goroutine.
func NewBidService(queries *store.Queries, localizer *localize.Service, pendingCache cache.Cache, codeTTL time.Duration, enqueue Enqueuer, logger *slog.Logger) *BidService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BidService{
		queries:   queries,
		localizer: localizer,
		pending:   cache.NewTyped[PendingBid](pendingCache, "pending_bid", codeTTL),
		enqueue:   enqueue,
		logger:    logger,
	}
}

// SetEnqueuer attaches the background translation queue. The worker is
// built around this service, so the queue is wired in after both exist.
func (s *BidService) SetEnqueuer(e Enqueuer) {
	s.enqueue = e
}

// Create runs the full synchronous path: translate every missing variant,
// persist, and attach id-suffixed slugs. The caller waits for the
// translation provider.
func (s *BidService) Create(ctx context.Context, in BidInput) (*model.Bid, error) {
	bid, err := in.toBid()
	if err != nil {
		return nil, err
	}
	s.localizer.Bid(ctx, bid)
	return s.insert(ctx, bid)
}

// CreateFast persists the bid immediately with only its primary language
// filled and hands translation to the background worker. The response
// returns in provider-independent time.
func (s *BidService) CreateFast(ctx context.Context, in BidInput) (*model.Bid, error) {
	bid, err := in.toBid()
	if err != nil {
		return nil, err
	}
	s.localizer.BidPrimaryOnly(bid)
	bid, err = s.insert(ctx, bid)
	if err != nil {
		return nil, err
	}
	if s.enqueue != nil {
		s.enqueue.Enqueue(bid.ID)
	} else {
		go func(id int64) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if err := s.Backfill(ctx, id); err != nil {
				s.logger.Error("inline bid backfill failed", "bid_id", id, "error", err)
			}
		}(bid.ID)
	}
	return bid, nil
}

func (s *BidService) insert(ctx context.Context, bid *model.Bid) (*model.Bid, error) {
	if bid.AuthorID == nil {
		bid.DeleteToken = uuid.NewString()
	}

	id, err := s.queries.CreateBid(ctx, bid)
	if err != nil {
		return nil, fmt.Errorf("creating bid: %w", err)
	}
	bid.ID = id

	// Slugs need the row id as a uniqueness suffix, so they are
	// regenerated and written back after the insert.
	bid.Slugs = localize.Slugs(bid.Title, id)
	if err := s.queries.UpdateBidLocalization(ctx, bid); err != nil {
		return nil, fmt.Errorf("attaching bid slugs: %w", err)
	}
	return bid, nil
}

// RequestGuestBid parks an unauthenticated submission and returns the
// verification code to send to the given email. The bid is not persisted
// until ConfirmGuestBid sees the matching code.
func (s *BidService) RequestGuestBid(ctx context.Context, email string, in BidInput, fast bool) (string, error) {
	if _, err := in.toBid(); err != nil {
		return "", err
	}
	code, err := newVerificationCode()
	if err != nil {
		return "", err
	}
	entry := &PendingBid{Input: in, Code: code, Fast: fast}
	if err := s.pending.Set(ctx, email, entry); err != nil {
		return "", fmt.Errorf("storing pending bid: %w", err)
	}
	return code, nil
}

// ConfirmGuestBid checks the verification code and creates the parked
// bid. The code is single-use: the pending entry is dropped on success.
func (s *BidService) ConfirmGuestBid(ctx context.Context, email, code string) (*model.Bid, error) {
	entry, err := s.pending.Get(ctx, email)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, ErrCodeExpired
		}
		return nil, fmt.Errorf("loading pending bid: %w", err)
	}
	if entry.Code != code {
		return nil, ErrCodeMismatch
	}
	if err := s.pending.Delete(ctx, email); err != nil {
		s.logger.Warn("dropping pending bid failed", "error", err)
	}
	if entry.Fast {
		return s.CreateFast(ctx, entry.Input)
	}
	return s.Create(ctx, entry.Input)
}

// Backfill completes the translation of a fast-path bid. It also
// retranslates variants that previously degraded to source text, so the
// periodic sweep converges bids after provider outages.
func (s *BidService) Backfill(ctx context.Context, bidID int64) error {
	bid, err := s.queries.GetBidByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrBidNotFound
		}
		return fmt.Errorf("loading bid %d: %w", bidID, err)
	}

	bid.Title = clearDegraded(bid.Title, "title", bid.AutoTranslatedFields)
	bid.Description = clearDegraded(bid.Description, "description", bid.AutoTranslatedFields)

	s.localizer.Bid(ctx, bid)
	bid.TranslationPending = false
	if err := s.queries.UpdateBidLocalization(ctx, bid); err != nil {
		return fmt.Errorf("saving bid translations: %w", err)
	}
	return nil
}

// clearDegraded blanks machine-filled variants that still hold the
// untranslated source text, so the next pipeline run retries them. A
// translation that legitimately equals the source is retried too, which
// is harmless: the pipeline is idempotent.
func clearDegraded(t langcode.Text, group string, autoFields []string) langcode.Text {
	primary := langcode.Detect(t)
	source := t.Get(primary)
	if source == "" {
		return t
	}
	out := t.Clone()
	for _, key := range autoFields {
		for _, lang := range langcode.All {
			if lang == primary || key != group+"_"+string(lang) {
				continue
			}
			if out.Get(lang) == source {
				delete(out, lang)
			}
		}
	}
	return out
}

// Get returns a bid by id.
func (s *BidService) Get(ctx context.Context, id int64) (*model.Bid, error) {
	bid, err := s.queries.GetBidByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return bid, nil
}

// List returns a page of bids, newest first.
func (s *BidService) List(ctx context.Context, limit, offset int) ([]model.Bid, error) {
	return s.queries.ListBids(ctx, limit, offset)
}

// Delete removes a bid on behalf of its author or an admin.
func (s *BidService) Delete(ctx context.Context, id int64, actor *model.User) error {
	bid, err := s.queries.GetBidByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrBidNotFound
		}
		return err
	}
	if !actor.IsAdmin() && (bid.AuthorID == nil || *bid.AuthorID != actor.ID) {
		return ErrNotAuthorized
	}
	return s.queries.DeleteBid(ctx, id)
}

// DeleteByToken removes a guest bid using the secret token issued at
// creation time.
func (s *BidService) DeleteByToken(ctx context.Context, token string) error {
	bid, err := s.queries.GetBidByDeleteToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrBidNotFound
		}
		return err
	}
	return s.queries.DeleteBid(ctx, bid.ID)
}
