// Copyright (c) 2025-2026 Yurii Kovalchuk
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ykovalchuk/maisterni/internal/cache"
	"github.com/ykovalchuk/maisterni/internal/langcode"
	"github.com/ykovalchuk/maisterni/internal/localize"
	"github.com/ykovalchuk/maisterni/internal/model"
	"github.com/ykovalchuk/maisterni/internal/store"
)

// Account errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password too short")
)

const minPasswordLength = 8

// RegisterInput is the raw payload of a registration request.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Kind     string `json:"kind"`
	Language string `json:"language"`
	Nickname string `json:"nickname"`
}

// pendingRegistration parks a registration in the cache until its email
// verification code comes back. The password is already hashed here; the
// plaintext never leaves the request scope.
type pendingRegistration struct {
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"password_hash"`
	Kind         string        `json:"kind"`
	Language     langcode.Code `json:"language"`
	Nickname     string        `json:"nickname"`
	Code         string        `json:"code"`
}

// pendingReset parks a password-reset code in the cache until the owner
// of the mailbox confirms it.
type pendingReset struct {
	Code string `json:"code"`
}

// ProfileInput is the raw payload for updating a performer's localized
// company profile.
type ProfileInput struct {
	CompanyName        map[string]string `json:"company_name"`
	CompanyDescription map[string]string `json:"company_description"`
	Nickname           string            `json:"nickname"`
	Avatar             string            `json:"avatar"`
}

// UserService manages accounts: registration with email verification,
// authentication, and the localized performer profile.
type UserService struct {
	queries   *store.Queries
	localizer *localize.Service
	pending   *cache.Typed[pendingRegistration]
	resets    *cache.Typed[pendingReset]
	logger    *slog.Logger
}

// NewUserService creates a UserService. pendingCache holds registrations
// awaiting email verification for codeTTL.
func NewUserService(queries *store.Queries, localizer *localize.Service, pendingCache cache.Cache, codeTTL time.Duration, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		queries:   queries,
		localizer: localizer,
		pending:   cache.NewTyped[pendingRegistration](pendingCache, "pending_user", codeTTL),
		resets:    cache.NewTyped[pendingReset](pendingCache, "pending_reset", codeTTL),
		logger:    logger,
	}
}

// Register validates the input, hashes the password and parks the
// registration until ConfirmRegistration sees the emailed code. Returns
// the code for the mailer.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("invalid email %q", in.Email)
	}
	if len(in.Password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	switch in.Kind {
	case model.UserKindCustomer, model.UserKindPerformer:
	default:
		return "", fmt.Errorf("invalid user kind %q", in.Kind)
	}
	lang := langcode.Default
	if in.Language != "" {
		parsed, err := langcode.Parse(in.Language)
		if err != nil {
			return "", err
		}
		lang = parsed
	}

	if _, err := s.queries.GetUserByEmail(ctx, email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	code, err := newVerificationCode()
	if err != nil {
		return "", err
	}

	entry := &pendingRegistration{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Kind:         in.Kind,
		Language:     lang,
		Nickname:     strings.TrimSpace(in.Nickname),
		Code:         code,
	}
	if err := s.pending.Set(ctx, email, entry); err != nil {
		return "", fmt.Errorf("storing pending registration: %w", err)
	}
	return code, nil
}

// ConfirmRegistration checks the verification code and creates the
// account. The code is single-use.
func (s *UserService) ConfirmRegistration(ctx context.Context, email, code string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	entry, err := s.pending.Get(ctx, email)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, ErrCodeExpired
		}
		return nil, fmt.Errorf("loading pending registration: %w", err)
	}
	if entry.Code != code {
		return nil, ErrCodeMismatch
	}
	if err := s.pending.Delete(ctx, email); err != nil {
		s.logger.Warn("dropping pending registration failed", "error", err)
	}

	user := &model.User{
		Name:         entry.Name,
		Email:        entry.Email,
		PasswordHash: entry.PasswordHash,
		Role:         model.RoleUser,
		Kind:         entry.Kind,
		Language:     entry.Language,
		Nickname:     entry.Nickname,
	}
	id, err := s.queries.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	user.ID = id
	return user, nil
}

// RequestPasswordReset issues a reset code for the account owning the
// email and returns it for the mailer. Unknown addresses return an empty
// code with no error: the endpoint must not reveal which emails have
// accounts.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.queries.GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Info("password reset requested for unknown email", "email", email)
			return "", nil
		}
		return "", fmt.Errorf("looking up account: %w", err)
	}
	code, err := newVerificationCode()
	if err != nil {
		return "", err
	}
	if err := s.resets.Set(ctx, email, &pendingReset{Code: code}); err != nil {
		return "", fmt.Errorf("storing reset code: %w", err)
	}
	return code, nil
}

// ConfirmPasswordReset checks the emailed code and replaces the
// account's password. The code is single-use.
func (s *UserService) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}
	entry, err := s.resets.Get(ctx, email)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return ErrCodeExpired
		}
		return fmt.Errorf("loading reset code: %w", err)
	}
	if entry.Code != code {
		return ErrCodeMismatch
	}
	if err := s.resets.Delete(ctx, email); err != nil {
		s.logger.Warn("dropping reset code failed", "error", err)
	}

	user, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.queries.UpdateUserPassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	return nil
}

// Authenticate verifies credentials and returns the account.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// authTokenTTL bounds how long an issued bearer token stays valid.
const authTokenTTL = 30 * 24 * time.Hour

// Login authenticates and issues a bearer token. The plaintext token is
// returned once; the database only sees its hash.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token := uuid.NewString()
	if err := s.queries.CreateAuthToken(ctx, model.HashAuthToken(token), user.ID, time.Now().Add(authTokenTTL)); err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}
	return user, token, nil
}

// Logout revokes a bearer token.
func (s *UserService) Logout(ctx context.Context, token string) error {
	return s.queries.DeleteAuthToken(ctx, model.HashAuthToken(token))
}

// ResolveToken returns the user owning an unexpired bearer token.
func (s *UserService) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	userID, err := s.queries.GetUserIDByAuthToken(ctx, model.HashAuthToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return s.Get(ctx, userID)
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.queries.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile overlays the provided company fields onto the account and
// runs them through the translation pipeline, the same way standalone
// companies are localized.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, in ProfileInput) (*model.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	name, err := localize.TextFromMap(in.CompanyName)
	if err != nil {
		return nil, fmt.Errorf("company name: %w", err)
	}
	description, err := localize.TextFromMap(in.CompanyDescription)
	if err != nil {
		return nil, fmt.Errorf("company description: %w", err)
	}

	user.CompanyName = overlay(user.CompanyName, name)
	user.CompanyDescription = overlay(user.CompanyDescription, description)
	user.AutoTranslatedFields = dropAutoFields(user.AutoTranslatedFields, "company_name", name)
	user.AutoTranslatedFields = dropAutoFields(user.AutoTranslatedFields, "company_description", description)
	if in.Nickname != "" {
		user.Nickname = strings.TrimSpace(in.Nickname)
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	s.localizer.UserProfile(ctx, user)
	if err := s.queries.UpdateUserProfileLocalization(ctx, user); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return user, nil
}
