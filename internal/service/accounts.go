// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/blogicum/internal/auth"
	"github.com/olegiv/blogicum/internal/model"
	"github.com/olegiv/blogicum/internal/store"
)

// dummyHash is verified against when the username is unknown so that
// both failure paths cost the same.
var dummyHash, _ = auth.HashPassword("blogicum-timing-equalizer")

// AccountService registers and authenticates users.
type AccountService struct {
	queries *store.Queries
	now     func() time.Time
}

// NewAccountService creates an account service.
func NewAccountService(db *sql.DB) *AccountService {
	return &AccountService{queries: store.New(db), now: store.Now}
}

// Register creates a user with a hashed password. Password rules are
// checked by the caller's form validation.
func (s *AccountService) Register(ctx context.Context, username, password string) (store.User, error) {
	if n, err := s.queries.UsernameTaken(ctx, store.UsernameTakenParams{Username: username}); err != nil {
		return store.User{}, fmt.Errorf("checking username: %w", err)
	} else if n > 0 {
		return store.User{}, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return store.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.queries.CreateUser(ctx, store.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
		DateJoined:   s.now(),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return store.User{}, ErrUsernameTaken
		}
		return store.User{}, fmt.Errorf("creating user: %w", err)
	}

	slog.InfoContext(ctx, "user registered", "category", model.EventCategoryAuth, "user_id", user.ID)
	return user, nil
}

// Authenticate checks credentials and records the login time. Hashes made
// with outdated parameters are upgraded on success.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (store.User, error) {
	user, err := s.queries.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_, _ = auth.CheckPassword(password, dummyHash)
			return store.User{}, ErrInvalidCredentials
		}
		return store.User{}, fmt.Errorf("loading user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return store.User{}, fmt.Errorf("checking password: %w", err)
	}
	if !ok {
		return store.User{}, ErrInvalidCredentials
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if hash, err := auth.HashPassword(password); err == nil {
			if err := s.queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{PasswordHash: hash, ID: user.ID}); err != nil {
				slog.ErrorContext(ctx, "password rehash failed", "category", model.EventCategoryAuth, "user_id", user.ID, "error", err)
			}
		}
	}

	now := s.now()
	if err := s.queries.UpdateUserLastLogin(ctx, store.UpdateUserLastLoginParams{
		LastLoginAt: sql.NullTime{Time: now, Valid: true},
		ID:          user.ID,
	}); err != nil {
		return store.User{}, fmt.Errorf("recording login: %w", err)
	}
	user.LastLoginAt = sql.NullTime{Time: now, Valid: true}

	return user, nil
}

// ChangePassword replaces the actor's password after checking the
// current one. New password rules are checked by the caller's form
// validation.
func (s *AccountService) ChangePassword(ctx context.Context, actor Viewer, oldPassword, newPassword string) error {
	if !actor.IsAuthenticated() {
		return ErrUnauthenticated
	}

	user, err := s.queries.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return notFound(err)
	}

	ok, err := auth.CheckPassword(oldPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("checking password: %w", err)
	}
	if !ok {
		slog.WarnContext(ctx, "password change refused", "category", model.EventCategoryAuth, "user_id", user.ID)
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{PasswordHash: hash, ID: user.ID}); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	slog.InfoContext(ctx, "password changed", "category", model.EventCategoryAuth, "user_id", user.ID)
	return nil
}

// User loads a user by id.
func (s *AccountService) User(ctx context.Context, id int64) (store.User, error) {
	u, err := s.queries.GetUserByID(ctx, id)
	if err != nil {
		return store.User{}, notFound(err)
	}
	return u, nil
}
